// Package events publishes diary lifecycle notifications.
//
// Events carry identifiers and flags only. Titles, bodies, ciphertext and
// tokens never leave the diary service through this package.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/MKhiriev/go-diary-keeper/internal/config"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/models"
)

// Publisher delivers diary events.
type Publisher interface {
	Publish(ctx context.Context, event models.DiaryEvent) error
	Close()
}

// NewPublisher returns a NATS publisher, or a no-op one when cfg.NATSURL is empty.
func NewPublisher(cfg config.Events, log *logger.Logger) (Publisher, error) {
	if cfg.NATSURL == "" {
		log.Info().Msg("events: no NATS url configured, publishing disabled")
		return NopPublisher{}, nil
	}
	return NewNATSPublisher(cfg, log)
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, models.DiaryEvent) error { return nil }
func (NopPublisher) Close()                                           {}

// natsConn is the subset of *nats.Conn the publisher uses.
type natsConn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// NATSPublisher publishes events as JSON on "<prefix>.<kind>" subjects.
type NATSPublisher struct {
	conn   natsConn
	prefix string
	now    func() time.Time
	logger *logger.Logger
}

// NewNATSPublisher connects to cfg.NATSURL.
func NewNATSPublisher(cfg config.Events, log *logger.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(cfg.NATSURL,
		nats.Name("go-diary-keeper"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return newNATSPublisher(conn, cfg.SubjectPrefix, log), nil
}

func newNATSPublisher(conn natsConn, prefix string, log *logger.Logger) *NATSPublisher {
	if prefix == "" {
		prefix = "diary.entry"
	}
	return &NATSPublisher{conn: conn, prefix: prefix, now: time.Now, logger: log}
}

// Subject returns the subject an event of kind is published on.
func (p *NATSPublisher) Subject(kind models.DiaryEventKind) string {
	return p.prefix + "." + string(kind)
}

// Publish implements [Publisher].
func (p *NATSPublisher) Publish(ctx context.Context, event models.DiaryEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if event.At.IsZero() {
		event.At = p.now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal diary event: %w", err)
	}

	if err = p.conn.Publish(p.Subject(event.Kind), payload); err != nil {
		return fmt.Errorf("publish diary event: %w", err)
	}
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Err(err).Msg("draining NATS connection")
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package keylifecycle owns the derived diary key on the holder's device.
//
// A [Manager] is the only place the key lives. It moves through
//
//	Locked --Unlock--> Unlocking --> Unlocked --Remember--> Persisted
//	Locked --Restore--> Unlocked
//	any    --Lock-----> Locked
//
// Persisted only describes the process that wrote the durable copy. A later
// process that restores it starts out Unlocked, and Lock still deletes the
// durable copy from there.
// Sealing and opening entries go through the manager so that the key never
// has to leave it. Lock wipes the in-memory key and the durable copy before
// it returns.
package keylifecycle

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/MKhiriev/go-diary-keeper/internal/crypto"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/models"
)

var (
	ErrLocked            = errors.New("diary is locked")
	ErrNothingPersisted  = errors.New("no remembered key on this device")
	ErrInvalidTransition = errors.New("invalid key lifecycle transition")
)

// State is a KeyLifecycle state.
type State int

const (
	Locked State = iota
	Unlocking
	Unlocked
	Persisted
)

func (s State) String() string {
	switch s {
	case Locked:
		return "locked"
	case Unlocking:
		return "unlocking"
	case Unlocked:
		return "unlocked"
	case Persisted:
		return "persisted"
	default:
		return "unknown"
	}
}

// DurableKeyStore keeps remembered key material on the holder's device.
type DurableKeyStore interface {
	SaveKey(ctx context.Context, key models.RememberedKey) error
	// LoadKey reports found=false when nothing is stored for userID.
	LoadKey(ctx context.Context, userID int64) (key models.RememberedKey, found bool, err error)
	DeleteKey(ctx context.Context, userID int64) error
}

// OpenResult is the outcome of opening one entry in [Manager.OpenAll].
type OpenResult struct {
	Title string
	Body  string
	// Public is true when the entry was stored in plaintext.
	Public bool
	// Err is crypto.ErrAuthenticationFailure for an entry that cannot be
	// opened with the held key.
	Err error
}

// Manager is the KeyLifecycle state machine. It is safe for concurrent use.
type Manager struct {
	mu sync.Mutex

	state  State
	userID int64
	key    crypto.DerivedKey
	token  crypto.PossessionToken

	deriver crypto.KeyDeriver
	sealer  crypto.EnvelopeSealer
	store   DurableKeyStore
	now     func() time.Time
	logger  *logger.Logger
}

// Option configures a [Manager].
type Option func(*Manager)

// WithKeyDeriver replaces the default PBKDF2 deriver.
func WithKeyDeriver(d crypto.KeyDeriver) Option {
	return func(m *Manager) { m.deriver = d }
}

// WithLogger sets the manager's logger. The default discards output.
func WithLogger(l *logger.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithClock overrides time.Now for remembered-key timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager returns a Locked manager. random supplies every nonce and entry
// salt; store may be nil, in which case Remember and Restore are unavailable.
func NewManager(random crypto.SecureRandom, store DurableKeyStore, opts ...Option) *Manager {
	m := &Manager{
		state:   Locked,
		deriver: crypto.NewKeyDeriver(),
		sealer:  crypto.NewEnvelopeCodec(crypto.NewCipher(), random),
		store:   store,
		now:     time.Now,
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// UserID returns the account whose key is held, or 0 when locked.
func (m *Manager) UserID() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userID
}

// Unlock derives the key and the possession token for userID.
// A wrong secret is not detected here; it surfaces on the first failed Open.
func (m *Manager) Unlock(ctx context.Context, secret crypto.Secret, salt []byte, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Locked {
		return fmt.Errorf("%w: unlock from %s", ErrInvalidTransition, m.state)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.state = Unlocking
	key, err := m.deriver.DeriveKey(secret, salt)
	if err != nil {
		m.state = Locked
		m.logger.Err(err).Int64("user_id", userID).Msg("key derivation failed")
		return fmt.Errorf("derive key: %w", err)
	}

	m.key = key
	m.token = crypto.DeriveToken(secret, strconv.FormatInt(userID, 10))
	m.userID = userID
	m.state = Unlocked
	m.logger.Debug().Int64("user_id", userID).Msg("diary unlocked")

	return nil
}

// Remember writes the held key to the durable store.
func (m *Manager) Remember(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case Locked, Unlocking:
		return ErrLocked
	case Persisted:
		return nil
	}
	if m.store == nil {
		return fmt.Errorf("%w: no durable store", ErrInvalidTransition)
	}

	err := m.store.SaveKey(ctx, models.RememberedKey{
		UserID:          m.userID,
		DerivedKey:      append([]byte(nil), m.key...),
		PossessionToken: m.token.Reveal(),
		SavedAt:         m.now(),
	})
	if err != nil {
		m.logger.Err(err).Int64("user_id", m.userID).Msg("saving remembered key failed")
		return fmt.Errorf("remember key: %w", err)
	}

	m.state = Persisted
	return nil
}

// Restore loads a remembered key for userID without prompting. The manager
// ends up Unlocked.
func (m *Manager) Restore(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Locked {
		return fmt.Errorf("%w: restore from %s", ErrInvalidTransition, m.state)
	}
	if m.store == nil {
		return ErrNothingPersisted
	}

	remembered, found, err := m.store.LoadKey(ctx, userID)
	if err != nil {
		return fmt.Errorf("restore key: %w", err)
	}
	if !found {
		return ErrNothingPersisted
	}
	if len(remembered.DerivedKey) != crypto.KeyLength || remembered.PossessionToken == "" {
		return fmt.Errorf("restore key: %w", crypto.ErrMalformedInput)
	}

	m.key = crypto.DerivedKey(remembered.DerivedKey)
	m.token = crypto.PossessionToken(remembered.PossessionToken)
	m.userID = userID
	m.state = Unlocked
	m.logger.Debug().Int64("user_id", userID).Msg("remembered key restored")

	return nil
}

// Lock wipes the held key and deletes any durable copy of it. Memory is
// wiped even when the durable delete fails.
func (m *Manager) Lock(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	userID := m.userID
	m.wipe()

	if m.store == nil || userID == 0 {
		return nil
	}
	if err := m.store.DeleteKey(ctx, userID); err != nil {
		m.logger.Err(err).Int64("user_id", userID).Msg("deleting remembered key failed")
		return fmt.Errorf("lock: %w", err)
	}
	return nil
}

// Forget locks and deletes the durable key of userID even when the manager
// holds nothing, as on sign-out from a locked client.
func (m *Manager) Forget(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.wipe()
	if m.store == nil {
		return nil
	}
	if err := m.store.DeleteKey(ctx, userID); err != nil {
		return fmt.Errorf("forget: %w", err)
	}
	return nil
}

func (m *Manager) wipe() {
	m.key.Wipe()
	m.key = nil
	m.token = ""
	m.userID = 0
	m.state = Locked
}

// Token returns the possession token of the unlocked account.
func (m *Manager) Token() (crypto.PossessionToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.holdsKey() {
		return "", ErrLocked
	}
	return m.token, nil
}

// Seal encrypts an entry under the held key.
func (m *Manager) Seal(title, body string) (crypto.SealedEnvelope, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.holdsKey() {
		return crypto.SealedEnvelope{}, ErrLocked
	}
	return m.sealer.Seal(title, body, m.key)
}

// Open decrypts one entry. A failure does not change the state.
func (m *Manager) Open(envelope crypto.SealedEnvelope) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.holdsKey() {
		return "", "", ErrLocked
	}
	return m.sealer.Open(envelope, m.key)
}

// OpenAll opens envelopes in parallel and returns one result per envelope
// in input order. Public envelopes pass through without the key.
func (m *Manager) OpenAll(envelopes []crypto.Envelope) ([]OpenResult, error) {
	m.mu.Lock()
	if !m.holdsKey() {
		m.mu.Unlock()
		return nil, ErrLocked
	}
	key := crypto.DerivedKey(append([]byte(nil), m.key...))
	m.mu.Unlock()
	defer key.Wipe()

	results := make([]OpenResult, len(envelopes))
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup

	for i, envelope := range envelopes {
		switch e := envelope.(type) {
		case crypto.PublicEnvelope:
			results[i] = OpenResult{Title: e.Title, Body: e.Body, Public: true}
		case crypto.SealedEnvelope:
			wg.Add(1)
			sem <- struct{}{}
			go func(i int, e crypto.SealedEnvelope) {
				defer func() { <-sem; wg.Done() }()
				title, body, err := m.sealer.Open(e, key)
				results[i] = OpenResult{Title: title, Body: body, Err: err}
			}(i, e)
		default:
			results[i] = OpenResult{Err: crypto.ErrMalformedInput}
		}
	}
	wg.Wait()

	return results, nil
}

func (m *Manager) holdsKey() bool {
	return m.state == Unlocked || m.state == Persisted
}

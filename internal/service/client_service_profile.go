package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-diary-keeper/internal/adapter"
	"github.com/MKhiriev/go-diary-keeper/internal/validators"
	"github.com/MKhiriev/go-diary-keeper/models"
)

type clientProfileService struct {
	auth      ClientAuthService
	adapter   adapter.ServerAdapter
	validator validators.Validator
}

func NewClientProfileService(auth ClientAuthService, serverAdapter adapter.ServerAdapter) ClientProfileService {
	return &clientProfileService{
		auth:      auth,
		adapter:   serverAdapter,
		validator: validators.NewUserValidator(),
	}
}

func (p *clientProfileService) SetUsername(ctx context.Context, username string) error {
	if err := p.validator.Validate(ctx, models.UsernameRequest{Username: username}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if _, err := p.auth.Session(ctx); err != nil {
		return err
	}

	return mapAdapterError(p.adapter.UpdateUsername(ctx, username))
}

// PublicProfile needs no session.
func (p *clientProfileService) PublicProfile(ctx context.Context, username string, page int) (models.PublicProfile, error) {
	profile, err := p.adapter.PublicProfile(ctx, username, page)
	if err != nil {
		return models.PublicProfile{}, mapAdapterError(err)
	}
	return profile, nil
}

func (p *clientProfileService) PublicEntry(ctx context.Context, username string, entryID int64) (models.PublicEntry, error) {
	entry, err := p.adapter.PublicEntry(ctx, username, entryID)
	if err != nil {
		return models.PublicEntry{}, mapAdapterError(err)
	}
	return entry, nil
}

package service

import (
	"context"
	"errors"

	"imacms/api/internal/models"
	"imacms/api/internal/store"
)

const settingsID = "default"

func strptr(s string) *string { return &s }

// DefaultSettings is the view served before anything has been written.
func DefaultSettings() models.Settings {
	return models.Settings{
		ID:           settingsID,
		SiteName:     "IMA",
		LogoURL:      strptr("https://customer-assets.emergentagent.com/job_ee8839b2-9350-41a5-9777-cc145839fd61/artifacts/dh6cyvhn_3.png"),
		FaviconURL:   strptr("https://customer-assets.emergentagent.com/job_ee8839b2-9350-41a5-9777-cc145839fd61/artifacts/dh6cyvhn_3.png"),
		PrimaryColor: "#E10600",
		FooterText:   strptr("© 2025 IMA. All rights reserved."),
	}
}

// SettingsService manages the lazily-materialized singleton: reads fall back
// to defaults without persisting, writes materialize the defaults first and
// then apply the patch.
type SettingsService struct {
	settings store.Collection[models.Settings]
}

func NewSettingsService(settings store.Collection[models.Settings]) *SettingsService {
	return &SettingsService{settings: settings}
}

func (s *SettingsService) Get(ctx context.Context) (models.Settings, error) {
	settings, err := s.settings.Get(ctx, "id", settingsID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return DefaultSettings(), nil
		}
		return models.Settings{}, err
	}
	return settings, nil
}

func (s *SettingsService) Update(ctx context.Context, patch store.Patch) (models.Settings, error) {
	if _, err := s.settings.Get(ctx, "id", settingsID); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return models.Settings{}, err
		}
		if err := s.settings.Insert(ctx, DefaultSettings()); err != nil {
			return models.Settings{}, err
		}
	}

	if len(patch) == 0 {
		return s.settings.Get(ctx, "id", settingsID)
	}
	return s.settings.Update(ctx, "id", settingsID, patch)
}

package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/25260173/crema-cafe-demo/internal/domain"
	"github.com/redis/go-redis/v9"
)

type PreferencesRepository struct {
	client *redis.Client
}

func NewPreferencesRepository(s *Storage) *PreferencesRepository {
	return &PreferencesRepository{
		client: s.Client(),
	}
}

func (r *PreferencesRepository) Get(ctx context.Context, sessionID string) (domain.CustomerPreferences, error) {
	data, err := r.client.Get(ctx, preferencesKey(sessionID)).Bytes()
	if err == redis.Nil {
		return domain.CustomerPreferences{}, nil
	}
	if err != nil {
		return domain.CustomerPreferences{}, fmt.Errorf("failed to read preferences: %w", err)
	}

	var prefs domain.CustomerPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return domain.CustomerPreferences{}, fmt.Errorf("failed to decode preferences: %w", err)
	}

	return prefs, nil
}

func (r *PreferencesRepository) Save(ctx context.Context, sessionID string, prefs domain.CustomerPreferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	if err := r.client.Set(ctx, preferencesKey(sessionID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	return nil
}

type BackupRepository struct {
	client *redis.Client
}

func NewBackupRepository(s *Storage) *BackupRepository {
	return &BackupRepository{
		client: s.Client(),
	}
}

func (r *BackupRepository) Get(ctx context.Context, sessionID string) (*domain.OrderBackup, error) {
	data, err := r.client.Get(ctx, backupKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}

	var backup domain.OrderBackup
	if err := json.Unmarshal(data, &backup); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}

	return &backup, nil
}

func (r *BackupRepository) Save(ctx context.Context, sessionID string, backup domain.OrderBackup) error {
	data, err := json.Marshal(backup)
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	if err := r.client.Set(ctx, backupKey(sessionID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save backup: %w", err)
	}

	return nil
}

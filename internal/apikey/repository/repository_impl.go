package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	apikeydomain "github.com/enervue/enervue/internal/apikey/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() apikeydomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, key *apikeydomain.APIKey) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO api_keys (id, user_id, key_id, name, scopes, key_hash, is_active, created_at, updated_at, last_used_at, expires_at, rotated_from_key_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		key.ID,
		key.UserID,
		key.KeyID,
		key.Name,
		key.Scopes,
		key.KeyHash,
		key.IsActive,
		key.CreatedAt,
		key.UpdatedAt,
		key.LastUsedAt,
		key.ExpiresAt,
		key.RotatedFromKeyID,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, key *apikeydomain.APIKey) error {
	return db.WithContext(ctx).Exec(
		`UPDATE api_keys
		 SET name = ?, scopes = ?, key_hash = ?, is_active = ?, updated_at = ?, last_used_at = ?, expires_at = ?, rotated_from_key_id = ?
		 WHERE user_id = ? AND key_id = ?`,
		key.Name,
		key.Scopes,
		key.KeyHash,
		key.IsActive,
		key.UpdatedAt,
		key.LastUsedAt,
		key.ExpiresAt,
		key.RotatedFromKeyID,
		key.UserID,
		key.KeyID,
	).Error
}

func (r *repo) FindByKeyID(ctx context.Context, db *gorm.DB, userID snowflake.ID, keyID string) (*apikeydomain.APIKey, error) {
	var key apikeydomain.APIKey
	err := db.WithContext(ctx).
		Where("user_id = ? AND key_id = ?", userID, keyID).
		Limit(1).
		Find(&key).Error
	if err != nil {
		return nil, err
	}
	if key.ID == 0 {
		return nil, nil
	}
	return &key, nil
}

func (r *repo) FindActiveByHash(ctx context.Context, db *gorm.DB, hash string) (*apikeydomain.APIKey, error) {
	var key apikeydomain.APIKey
	err := db.WithContext(ctx).
		Where("key_hash = ? AND is_active = ? AND (expires_at IS NULL OR expires_at > ?)", hash, true, time.Now().UTC()).
		Limit(1).
		Find(&key).Error
	if err != nil {
		return nil, err
	}
	if key.ID == 0 {
		return nil, nil
	}
	return &key, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]apikeydomain.APIKey, error) {
	var keys []apikeydomain.APIKey
	err := db.WithContext(ctx).
		Model(&apikeydomain.APIKey{}).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *repo) TouchLastUsed(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE api_keys SET last_used_at = ? WHERE id = ?`,
		time.Now().UTC(),
		id,
	).Error
}

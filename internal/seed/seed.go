package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	apikeydomain "github.com/enervue/enervue/internal/apikey/domain"
	userdomain "github.com/enervue/enervue/internal/user/domain"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	demoUserEmail   = "demo@enervue.local"
	demoUserDisplay = "Enervue Demo"
	demoKeyID       = "key_DEMO"
	demoKeyName     = "Demo key"

	// DemoAPIKey is the plaintext key seeded for local development. Pass it
	// as a bearer token to authenticate as the demo user.
	DemoAPIKey = "ev_live_key_DEMO_0000000000000000000000000000000000000000000000000000000000000000"
)

// EnsureDemoData seeds a demo user with a well-known API key so a fresh
// local install can exercise the API without a provisioning step.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := ensureDemoUserTx(ctx, tx, node)
		if err != nil {
			return err
		}
		return ensureDemoAPIKeyTx(ctx, tx, node, user.ID)
	})
}

func ensureDemoUserTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) (userdomain.User, error) {
	var user userdomain.User
	err := tx.WithContext(ctx).Where("email = ?", demoUserEmail).First(&user).Error
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return user, err
	}
	now := time.Now().UTC()
	user = userdomain.User{
		ID:          node.Generate(),
		Email:       strings.ToLower(demoUserEmail),
		DisplayName: demoUserDisplay,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := tx.WithContext(ctx).Create(&user).Error; err != nil {
		return user, err
	}
	return user, nil
}

func ensureDemoAPIKeyTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, userID snowflake.ID) error {
	var key apikeydomain.APIKey
	err := tx.WithContext(ctx).
		Where("user_id = ? AND key_id = ?", userID, demoKeyID).
		First(&key).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now().UTC()
	key = apikeydomain.APIKey{
		ID:        node.Generate(),
		UserID:    userID,
		KeyID:     demoKeyID,
		Name:      demoKeyName,
		Scopes:    pq.StringArray{apikeydomain.ScopeFull},
		KeyHash:   apikeydomain.HashAPIKey(DemoAPIKey),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return tx.WithContext(ctx).Create(&key).Error
}

package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	devicedomain "github.com/enervue/enervue/internal/device/domain"
	devicerepository "github.com/enervue/enervue/internal/device/repository"
	propertydomain "github.com/enervue/enervue/internal/property/domain"
	propertyrepository "github.com/enervue/enervue/internal/property/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDeviceService(t *testing.T, node *snowflake.Node) (devicedomain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(
		&propertydomain.Property{},
		&devicedomain.Device{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        node,
		Repo:         devicerepository.Provide(),
		PropertyRepo: propertyrepository.Provide(),
	})

	return svc, db
}

func seedProperty(t *testing.T, db *gorm.DB, node *snowflake.Node, ownerID snowflake.ID, active bool) snowflake.ID {
	t.Helper()
	property := propertydomain.Property{
		ID:           node.Generate(),
		OwnerUserID:  ownerID,
		Name:         "Zavel 3",
		PropertyType: "home",
		Address:      "Zavel 3",
		City:         "Brussels",
		Region:       "brussels",
		Active:       true,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, db.Create(&property).Error)
	if !active {
		require.NoError(t, db.Model(&propertydomain.Property{}).Where("id = ?", property.ID).Update("active", false).Error)
	}
	return property.ID
}

func validDeviceRequest(ownerID, propertyID snowflake.ID) devicedomain.CreateRequest {
	return devicedomain.CreateRequest{
		OwnerUserID:       ownerID.String(),
		PropertyID:        propertyID.String(),
		Name:              "Tumble Dryer",
		DeviceType:        "dryer",
		Category:          "major_appliances",
		EstimatedWattage:  3000,
		DailyRuntimeHours: 0.5,
		StandbyWattage:    2,
	}
}

func TestCreateDeviceSuccess(t *testing.T) {
	node := mustNode(t)
	svc, db := setupDeviceService(t, node)
	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID, true)

	created, err := svc.Create(context.Background(), validDeviceRequest(ownerID, propertyID))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Tumble Dryer", created.Name)
	require.True(t, created.Active)

	listed, err := svc.ListByProperty(context.Background(), ownerID.String(), propertyID.String())
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestCreateDeviceValidation(t *testing.T) {
	node := mustNode(t)
	svc, db := setupDeviceService(t, node)
	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID, true)

	tests := []struct {
		name    string
		mutate  func(*devicedomain.CreateRequest)
		wantErr error
	}{
		{"missing name", func(r *devicedomain.CreateRequest) { r.Name = " " }, devicedomain.ErrInvalidName},
		{"unknown category", func(r *devicedomain.CreateRequest) { r.Category = "garden" }, devicedomain.ErrInvalidCategory},
		{"negative wattage", func(r *devicedomain.CreateRequest) { r.EstimatedWattage = -1 }, devicedomain.ErrInvalidWattage},
		{"daily hours beyond a day", func(r *devicedomain.CreateRequest) { r.DailyRuntimeHours = 25 }, devicedomain.ErrInvalidDailyRuntime},
		{"weekly hours beyond a week", func(r *devicedomain.CreateRequest) { r.WeeklyRuntimeHours = 169 }, devicedomain.ErrInvalidWeeklyRuntime},
		{"negative standby", func(r *devicedomain.CreateRequest) { r.StandbyWattage = -0.5 }, devicedomain.ErrInvalidStandby},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validDeviceRequest(ownerID, propertyID)
			tc.mutate(&req)
			_, err := svc.Create(context.Background(), req)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCreateDeviceDefaultsCategory(t *testing.T) {
	node := mustNode(t)
	svc, db := setupDeviceService(t, node)
	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID, true)

	req := validDeviceRequest(ownerID, propertyID)
	req.Category = ""
	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "other", created.Category)
}

func TestCreateDeviceOnInactiveProperty(t *testing.T) {
	node := mustNode(t)
	svc, db := setupDeviceService(t, node)
	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID, false)

	_, err := svc.Create(context.Background(), validDeviceRequest(ownerID, propertyID))
	require.ErrorIs(t, err, devicedomain.ErrPropertyNotFound)
}

func TestCreateDeviceWrongOwner(t *testing.T) {
	node := mustNode(t)
	svc, db := setupDeviceService(t, node)
	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID, true)

	req := validDeviceRequest(node.Generate(), propertyID)
	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, devicedomain.ErrPropertyNotFound)
}

func TestUpdateDevicePartial(t *testing.T) {
	node := mustNode(t)
	svc, db := setupDeviceService(t, node)
	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID, true)

	created, err := svc.Create(context.Background(), validDeviceRequest(ownerID, propertyID))
	require.NoError(t, err)

	name := "Heat Pump Dryer"
	wattage := 800.0
	updated, err := svc.Update(context.Background(), devicedomain.UpdateRequest{
		OwnerUserID:      ownerID.String(),
		PropertyID:       propertyID.String(),
		ID:               created.ID,
		Name:             &name,
		EstimatedWattage: &wattage,
	})
	require.NoError(t, err)
	require.Equal(t, "Heat Pump Dryer", updated.Name)
	require.InDelta(t, 800.0, updated.EstimatedWattage, 1e-9)
	// Untouched fields survive a partial update.
	require.InDelta(t, 0.5, updated.DailyRuntimeHours, 1e-9)
	require.Equal(t, "dryer", updated.DeviceType)
}

func TestUpdateDeviceValidation(t *testing.T) {
	node := mustNode(t)
	svc, db := setupDeviceService(t, node)
	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID, true)

	created, err := svc.Create(context.Background(), validDeviceRequest(ownerID, propertyID))
	require.NoError(t, err)

	bad := -5.0
	_, err = svc.Update(context.Background(), devicedomain.UpdateRequest{
		OwnerUserID:      ownerID.String(),
		PropertyID:       propertyID.String(),
		ID:               created.ID,
		EstimatedWattage: &bad,
	})
	require.ErrorIs(t, err, devicedomain.ErrInvalidWattage)
}

func TestUpdateUnknownDevice(t *testing.T) {
	node := mustNode(t)
	svc, db := setupDeviceService(t, node)
	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID, true)

	name := "Ghost"
	_, err := svc.Update(context.Background(), devicedomain.UpdateRequest{
		OwnerUserID: ownerID.String(),
		PropertyID:  propertyID.String(),
		ID:          node.Generate().String(),
		Name:        &name,
	})
	require.ErrorIs(t, err, devicedomain.ErrNotFound)
}

func TestDeleteDeviceSoftAndIdempotent(t *testing.T) {
	node := mustNode(t)
	svc, db := setupDeviceService(t, node)
	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID, true)

	created, err := svc.Create(context.Background(), validDeviceRequest(ownerID, propertyID))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), ownerID.String(), propertyID.String(), created.ID))

	var device devicedomain.Device
	require.NoError(t, db.Where("id = ?", created.ID).First(&device).Error)
	require.False(t, device.Active)

	listed, err := svc.ListByProperty(context.Background(), ownerID.String(), propertyID.String())
	require.NoError(t, err)
	require.Empty(t, listed)

	// Second delete is a no-op success.
	require.NoError(t, svc.Delete(context.Background(), ownerID.String(), propertyID.String(), created.ID))

	// Updating a soft-deleted device fails.
	name := "Revived"
	_, err = svc.Update(context.Background(), devicedomain.UpdateRequest{
		OwnerUserID: ownerID.String(),
		PropertyID:  propertyID.String(),
		ID:          created.ID,
		Name:        &name,
	})
	require.ErrorIs(t, err, devicedomain.ErrNotFound)
}

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	return node
}

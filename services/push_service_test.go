package services

import (
	"os"
	"testing"

	"github.com/kthiza/protein-tracking-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func testDeviceDB(t *testing.T) *gorm.DB {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set, skipping integration test")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UserDevice{}))
	return db
}

func TestUpsertDevice_ReusesRowForKnownToken(t *testing.T) {
	db := testDeviceDB(t)
	require.NoError(t, db.Where("user_id = ?", 4242).Delete(&models.UserDevice{}).Error)
	p := &PushService{db: db}

	first, err := p.upsertDevice(&models.UserDevice{
		UserID: 4242, Platform: "android", TokenHash: "hash-1",
		EndpointARN: "arn:aws:sns:1", Enabled: true,
	})
	require.NoError(t, err)

	second, err := p.upsertDevice(&models.UserDevice{
		UserID: 4242, Platform: "android", TokenHash: "hash-1",
		EndpointARN: "arn:aws:sns:2", Enabled: true,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same token must reuse the row")
	assert.Equal(t, "arn:aws:sns:2", second.EndpointARN)

	var count int64
	require.NoError(t, db.Model(&models.UserDevice{}).Where("user_id = ?", 4242).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpsertDevice_SurfacesPersistenceErrors(t *testing.T) {
	db := testDeviceDB(t)
	require.NoError(t, db.Migrator().DropTable(&models.UserDevice{}))
	p := &PushService{db: db}

	_, err := p.upsertDevice(&models.UserDevice{
		UserID: 4242, Platform: "android", TokenHash: "hash-1",
		EndpointARN: "arn:aws:sns:1", Enabled: true,
	})
	assert.Error(t, err, "a device that was not stored is not registered")
}

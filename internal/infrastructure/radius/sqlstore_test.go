package radius

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	domainradius "netbill/internal/domain/radius"
	"netbill/internal/infrastructure/persistence/models"
	"netbill/internal/shared/logger"
)

func setupStore(t *testing.T) (domainradius.Store, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.RadCheckModel{},
		&models.RadUserGroupModel{},
		&models.RadReplyModel{},
	)
	require.NoError(t, err)

	log := logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewSQLStore(db, log), db
}

func TestSQLStore_UpsertCheckAttribute(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()

	err := store.UpsertCheckAttribute(ctx, "budi01", domainradius.AttrCleartextPassword, "old-secret")
	require.NoError(t, err)

	// Second upsert for the same attribute replaces, never duplicates.
	err = store.UpsertCheckAttribute(ctx, "budi01", domainradius.AttrCleartextPassword, "new-secret")
	require.NoError(t, err)

	var rows []models.RadCheckModel
	require.NoError(t, db.Where("username = ?", "budi01").Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, domainradius.AttrCleartextPassword, rows[0].Attribute)
	assert.Equal(t, domainradius.OpAssign, rows[0].Op)
	assert.Equal(t, "new-secret", rows[0].Value)
}

func TestSQLStore_ReplaceUserGroup(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()

	// Stale memberships from earlier plan changes.
	require.NoError(t, db.Create(&models.RadUserGroupModel{Username: "budi01", GroupName: "isolated", Priority: 1}).Error)
	require.NoError(t, db.Create(&models.RadUserGroupModel{Username: "budi01", GroupName: "home-5m", Priority: 2}).Error)

	err := store.ReplaceUserGroup(ctx, "budi01", "home-10m", domainradius.ActiveGroupPriority)
	require.NoError(t, err)

	var rows []models.RadUserGroupModel
	require.NoError(t, db.Where("username = ?", "budi01").Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "home-10m", rows[0].GroupName)
	assert.Equal(t, 1, rows[0].Priority)
}

func TestSQLStore_ReplaceUserGroupLeavesOthersAlone(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.RadUserGroupModel{Username: "siti02", GroupName: "home-20m", Priority: 1}).Error)

	require.NoError(t, store.ReplaceUserGroup(ctx, "budi01", "home-10m", 1))

	var count int64
	require.NoError(t, db.Model(&models.RadUserGroupModel{}).Where("username = ?", "siti02").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSQLStore_ReplyAttributeLifecycle(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()

	err := store.UpsertReplyAttribute(ctx, "budi01", domainradius.AttrFramedIPAddress, "10.5.0.42")
	require.NoError(t, err)
	err = store.UpsertReplyAttribute(ctx, "budi01", domainradius.AttrFramedIPAddress, "10.5.0.43")
	require.NoError(t, err)

	var rows []models.RadReplyModel
	require.NoError(t, db.Where("username = ?", "budi01").Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "10.5.0.43", rows[0].Value)

	err = store.RemoveReplyAttribute(ctx, "budi01", domainradius.AttrFramedIPAddress)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.RadReplyModel{}).Where("username = ?", "budi01").Count(&count).Error)
	assert.Zero(t, count)
}

func TestSQLStore_RemoveAbsentReplyAttributeIsNoError(t *testing.T) {
	store, _ := setupStore(t)

	err := store.RemoveReplyAttribute(context.Background(), "ghost", domainradius.AttrReplyMessage)

	assert.NoError(t, err)
}

package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type noteModel struct {
	ID   uint   `gorm:"primaryKey"`
	Body string `gorm:"size:255"`
}

func (noteModel) TableName() string { return "notes" }

func setupTestDB(t *testing.T) *gorm.DB {
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&noteModel{}))
	return conn
}

func countNotes(t *testing.T, conn *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, conn.Model(&noteModel{}).Count(&count).Error)
	return count
}

func TestRunInTransaction_Commits(t *testing.T) {
	conn := setupTestDB(t)
	tm := NewTransactionManager(conn)

	err := tm.RunInTransaction(context.Background(), func(txCtx context.Context) error {
		return GetTxFromContext(txCtx, conn).Create(&noteModel{Body: "kept"}).Error
	})

	require.NoError(t, err)
	assert.EqualValues(t, 1, countNotes(t, conn))
}

func TestRunInTransaction_RollsBackOnError(t *testing.T) {
	conn := setupTestDB(t)
	tm := NewTransactionManager(conn)
	boom := errors.New("step two failed")

	err := tm.RunInTransaction(context.Background(), func(txCtx context.Context) error {
		if err := GetTxFromContext(txCtx, conn).Create(&noteModel{Body: "discarded"}).Error; err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 0, countNotes(t, conn), "write before the error must be rolled back")
}

func TestGetTxFromContext_FallsBackToDefault(t *testing.T) {
	conn := setupTestDB(t)

	handle := GetTxFromContext(context.Background(), conn)

	require.NoError(t, handle.Create(&noteModel{Body: "outside any transaction"}).Error)
	assert.EqualValues(t, 1, countNotes(t, conn))
}

package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(sqlite.Open(filepath.Join(t.TempDir(), "usage.db")), nil)
	require.NoError(t, err)
	return db
}

func TestRecordUsage_Upserts(t *testing.T) {
	db := openTestDB(t)
	key := APIKey{Key: "k.sig", Name: "k", RateLimit: 5}
	require.NoError(t, db.Create(&key).Error)

	day := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	require.NoError(t, RecordUsage(db, key.ID, day, UsageDelta{People: 2, Records: 6, Days: 5}))
	require.NoError(t, RecordUsage(db, key.ID, day.Add(time.Hour), UsageDelta{People: 3, Records: 1, Days: 1}))
	require.NoError(t, RecordUsage(db, key.ID, day.AddDate(0, 0, 1), UsageDelta{People: 1}))

	usage, err := RecentUsage(db, key.ID, 30)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, "2025-03-04", usage[0].Date)
	assert.Equal(t, 2, usage[1].RequestCount)
	assert.Equal(t, 5, usage[1].TotalPeople)
	assert.Equal(t, 7, usage[1].TotalRecords)
	assert.Equal(t, 6, usage[1].TotalDays)

	n, err := RequestsOn(db, key.ID, day)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = RequestsOn(db, key.ID, day.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Zero(t, n)
}

package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"-"`
	Name       string     `gorm:"not null" json:"name"`
	KeyPreview string     `json:"key_preview"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table. One row per key and day.
type APIUsage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	KeyID        uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date         string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount int    `gorm:"default:0" json:"request_count"`
	TotalPeople  int    `gorm:"default:0" json:"total_people"`
	TotalRecords int    `gorm:"default:0" json:"total_records"`
	TotalDays    int    `gorm:"default:0" json:"total_days"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// InitDB connects to Postgres when dsn is set, otherwise to the SQLite file
// at dataPath, and migrates the schema.
func InitDB(dsn, dataPath string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	if dsn != "" {
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		})
		cfg.PrepareStmt = false
	} else {
		dialector = sqlite.Open(dataPath)
	}
	return Open(dialector, cfg)
}

// Open connects with an explicit dialector and migrates the schema.
func Open(dialector gorm.Dialector, cfg *gorm.Config) (*gorm.DB, error) {
	if cfg == nil {
		cfg = &gorm.Config{}
	}
	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.AutoMigrate(&APIKey{}, &APIUsage{}, &MasterUser{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return db, nil
}

// UsageDelta is what one request adds to a key's daily usage row.
type UsageDelta struct {
	People  int
	Records int
	Days    int
}

// RecordUsage upserts the usage row for key and the day of at.
func RecordUsage(db *gorm.DB, keyID uint, at time.Time, d UsageDelta) error {
	// OnConflict works for both Postgres and SQLite
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count": gorm.Expr("request_count + ?", 1),
			"total_people":  gorm.Expr("total_people + ?", d.People),
			"total_records": gorm.Expr("total_records + ?", d.Records),
			"total_days":    gorm.Expr("total_days + ?", d.Days),
		}),
	}).Create(&APIUsage{
		KeyID:        keyID,
		Date:         at.Format("2006-01-02"),
		RequestCount: 1,
		TotalPeople:  d.People,
		TotalRecords: d.Records,
		TotalDays:    d.Days,
	}).Error
}

// RecentUsage returns up to limit usage rows for a key, newest first.
func RecentUsage(db *gorm.DB, keyID uint, limit int) ([]APIUsage, error) {
	var usage []APIUsage
	err := db.Where("key_id = ?", keyID).Order("date desc").Limit(limit).Find(&usage).Error
	return usage, err
}

// RequestsOn returns how many requests a key made on the day of at.
func RequestsOn(db *gorm.DB, keyID uint, at time.Time) (int, error) {
	var usage APIUsage
	err := db.Where("key_id = ? AND date = ?", keyID, at.Format("2006-01-02")).Limit(1).Find(&usage).Error
	return usage.RequestCount, err
}

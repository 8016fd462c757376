package dao

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	ErrCredentialNotFound = errors.New("credential not found")
	ErrEventNotRegistered = errors.New("event not registered")
)

// credentialID pins the credential table to a single row: there is
// exactly one persisted bearer token per state file.
const credentialID = 1

type Credential struct {
	ID          uint   `gorm:"primaryKey"`
	AccessToken string `gorm:"not null"`

	UpdatedAt time.Time `gorm:"not null"`
}

type Registration struct {
	EventID uint `gorm:"primaryKey"`

	RegisteredAt time.Time `gorm:"not null"`
}

type CachedEvent struct {
	ID                uint   `gorm:"primaryKey"`
	Title             string `gorm:"not null"`
	StartDate         time.Time
	EndDate           time.Time
	Location          string
	Description       string
	IsTimeSlotEnabled bool

	CachedAt time.Time `gorm:"not null"`
}

type StateDAO struct {
	db *gorm.DB
}

func NewStateDAO(db *gorm.DB) *StateDAO {
	return &StateDAO{
		db: db,
	}
}

// Open opens (creating if needed) the sqlite state file and migrates
// its tables.
func Open(path string) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("dao.Open -> os.MkdirAll -> %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("dao.Open -> gorm.Open -> %w", err)
	}

	if err := InitTables(db); err != nil {
		return nil, fmt.Errorf("dao.Open -> %w", err)
	}

	return db, nil
}

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Credential{},
		&Registration{},
		&CachedEvent{},
	)
}

func (d *StateDAO) UpsertCredential(ctx context.Context, token string) error {
	cred := Credential{ID: credentialID, AccessToken: token}

	result := d.db.WithContext(ctx).Save(&cred)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

func (d *StateDAO) FindCredential(ctx context.Context) (Credential, error) {
	var cred Credential

	result := d.db.WithContext(ctx).First(&cred, credentialID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Credential{}, ErrCredentialNotFound
		}

		return Credential{}, result.Error
	}

	return cred, nil
}

// DeleteCredential is idempotent: deleting an absent row is not an error.
func (d *StateDAO) DeleteCredential(ctx context.Context) error {
	result := d.db.WithContext(ctx).Delete(&Credential{}, credentialID)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

func (d *StateDAO) UpsertRegistration(ctx context.Context, eventID uint) error {
	reg := Registration{EventID: eventID, RegisteredAt: time.Now()}

	result := d.db.WithContext(ctx).Save(&reg)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

func (d *StateDAO) FindRegistration(ctx context.Context, eventID uint) (Registration, error) {
	var reg Registration

	result := d.db.WithContext(ctx).First(&reg, eventID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Registration{}, ErrEventNotRegistered
		}

		return Registration{}, result.Error
	}

	return reg, nil
}

// ReplaceCachedEvents swaps the whole event cache for the given rows.
func (d *StateDAO) ReplaceCachedEvents(ctx context.Context, events []CachedEvent) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&CachedEvent{}).Error; err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}

		return tx.Create(&events).Error
	})
}

func (d *StateDAO) FindCachedEvents(ctx context.Context) ([]CachedEvent, error) {
	var events []CachedEvent

	result := d.db.WithContext(ctx).Order("start_date").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

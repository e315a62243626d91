package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"healthbuddy/database"
	"healthbuddy/internal/models"
)

// GormStore is the relational backend. The same implementation serves
// Postgres (server deployment) and SQLite (on-device deployment); the
// driver is the only difference.
type GormStore struct {
	cfg GormConfig
	db  *gorm.DB
}

type GormConfig struct {
	Driver string
	DSN    string
}

type userRecord struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"not null"`
	Email      string `gorm:"uniqueIndex;not null"`
	Password   string `gorm:"not null"`
	Height     *float64
	Weight     *float64
	Age        *int
	BloodGroup *string
	Allergies  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (userRecord) TableName() string { return "users" }

type sessionRecord struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index;not null"`
	IsActive  bool `gorm:"index"`
	CreatedAt time.Time
}

func (sessionRecord) TableName() string { return "sessions" }

type readingRecord struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index;not null"`
	Systolic  int
	Diastolic int
	HeartRate int
	Timestamp time.Time `gorm:"index"`
}

func (readingRecord) TableName() string { return "blood_pressure_readings" }

func NewGormStore(cfg GormConfig) *GormStore {
	return &GormStore{cfg: cfg}
}

// NewGormStoreWithDB wraps an already-open handle. Used by tests.
func NewGormStoreWithDB(db *gorm.DB) (*GormStore, error) {
	s := &GormStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *GormStore) Init(ctx context.Context) error {
	db, err := database.Connect(s.cfg.Driver, s.cfg.DSN)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	s.db = db
	if err := s.migrate(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *GormStore) migrate() error {
	return s.db.AutoMigrate(&userRecord{}, &sessionRecord{}, &readingRecord{})
}

func (s *GormStore) Close(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) CreateUser(ctx context.Context, name, email, password string) (*models.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	record := userRecord{
		Name:     name,
		Email:    email,
		Password: hash,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return userFromRecord(&record), nil
}

func (s *GormStore) FindUserByCredentials(ctx context.Context, email, password string) (*models.User, error) {
	var record userRecord
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !checkPassword(record.Password, password) {
		return nil, nil
	}
	return userFromRecord(&record), nil
}

func (s *GormStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	numericID, err := parseRecordID(id)
	if err != nil {
		return nil, err
	}
	var record userRecord
	err = s.db.WithContext(ctx).First(&record, numericID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return userFromRecord(&record), nil
}

func (s *GormStore) UpdateUserProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	numericID, err := parseRecordID(id)
	if err != nil {
		return nil, err
	}

	var record userRecord
	if err := s.db.WithContext(ctx).First(&record, numericID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Write all profile columns, nil included, so clearing a field sticks.
	updates := map[string]interface{}{
		"height":      update.Height,
		"weight":      update.Weight,
		"age":         update.Age,
		"blood_group": update.BloodGroup,
		"allergies":   update.Allergies,
		"updated_at":  time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Model(&record).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).First(&record, numericID).Error; err != nil {
		return nil, err
	}
	return userFromRecord(&record), nil
}

func (s *GormStore) CreateSession(ctx context.Context, userID string) error {
	numericID, err := parseRecordID(userID)
	if err != nil {
		return err
	}

	// Deactivate-then-insert runs in one transaction so no reader can ever
	// observe two active sessions.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&sessionRecord{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(&sessionRecord{
			UserID:    numericID,
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
		}).Error
	})
}

func (s *GormStore) GetActiveSession(ctx context.Context) (*models.User, error) {
	var session sessionRecord
	err := s.db.WithContext(ctx).Where("is_active = ?", true).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record userRecord
	if err := s.db.WithContext(ctx).First(&record, session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return userFromRecord(&record), nil
}

func (s *GormStore) ClearSession(ctx context.Context) error {
	// Session rows are kept as history; only the flag is dropped.
	return s.db.WithContext(ctx).Model(&sessionRecord{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}

func (s *GormStore) AddReading(ctx context.Context, userID string, systolic, diastolic, heartRate int) (*models.BloodPressureReading, error) {
	numericID, err := parseRecordID(userID)
	if err != nil {
		return nil, err
	}

	record := readingRecord{
		UserID:    numericID,
		Systolic:  systolic,
		Diastolic: diastolic,
		HeartRate: heartRate,
		Timestamp: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return readingFromRecord(&record), nil
}

func (s *GormStore) GetReadings(ctx context.Context, userID string) ([]models.BloodPressureReading, error) {
	numericID, err := parseRecordID(userID)
	if err != nil {
		return []models.BloodPressureReading{}, nil
	}

	var records []readingRecord
	err = s.db.WithContext(ctx).
		Where("user_id = ?", numericID).
		Order("timestamp DESC").
		Find(&records).Error
	if err != nil {
		return []models.BloodPressureReading{}, nil
	}

	readings := make([]models.BloodPressureReading, 0, len(records))
	for i := range records {
		readings = append(readings, *readingFromRecord(&records[i]))
	}
	return readings, nil
}

func (s *GormStore) DeleteReading(ctx context.Context, id string) error {
	numericID, err := parseRecordID(id)
	if err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Delete(&readingRecord{}, numericID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func parseRecordID(id string) (uint, error) {
	numericID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return 0, ErrInvalidID
	}
	return uint(numericID), nil
}

func formatRecordID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func userFromRecord(record *userRecord) *models.User {
	return &models.User{
		ID:         formatRecordID(record.ID),
		Name:       record.Name,
		Email:      record.Email,
		Password:   record.Password,
		Height:     record.Height,
		Weight:     record.Weight,
		Age:        record.Age,
		BloodGroup: record.BloodGroup,
		Allergies:  record.Allergies,
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}
}

func readingFromRecord(record *readingRecord) *models.BloodPressureReading {
	return &models.BloodPressureReading{
		ID:        formatRecordID(record.ID),
		UserID:    formatRecordID(record.UserID),
		Systolic:  record.Systolic,
		Diastolic: record.Diastolic,
		HeartRate: record.HeartRate,
		Timestamp: record.Timestamp,
	}
}

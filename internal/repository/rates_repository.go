package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bookingDomain "github.com/turfmanager/service-booking/internal/domain/booking"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ratesRowID pins the rate policy to a single row: the policy is
// facility-wide and always overwritten in full.
const ratesRowID = 1

// RatesModel is the GORM model for the rates_config table.
type RatesModel struct {
	ID                   int             `gorm:"primaryKey"`
	BaseRate             int64           `gorm:"not null"`
	WeekendRate          int64           `gorm:"not null"`
	HolidayRate          int64           `gorm:"not null"`
	HolidayDates         json.RawMessage `gorm:"type:jsonb;not null"`
	NotificationEndpoint string          `gorm:"size:500"`
	UpdatedAt            time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (RatesModel) TableName() string {
	return "rates_config"
}

// GormRatesRepository is the GORM-based implementation of the rates repository.
type GormRatesRepository struct {
	db *gorm.DB
}

// NewGormRatesRepository creates a new GormRatesRepository.
func NewGormRatesRepository(db *gorm.DB) *GormRatesRepository {
	return &GormRatesRepository{db: db}
}

// Load retrieves the rate policy, falling back to the documented default
// when no policy has been saved yet.
func (r *GormRatesRepository) Load(ctx context.Context) (bookingDomain.RatesConfig, error) {
	var model RatesModel
	if err := r.db.WithContext(ctx).Where("id = ?", ratesRowID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return bookingDomain.DefaultRatesConfig(), nil
		}
		return bookingDomain.RatesConfig{}, fmt.Errorf("failed to load rates: %w", err)
	}

	var holidays []string
	if len(model.HolidayDates) > 0 {
		if err := json.Unmarshal(model.HolidayDates, &holidays); err != nil {
			return bookingDomain.RatesConfig{}, fmt.Errorf("corrupt holiday dates: %w", err)
		}
	}

	return bookingDomain.RatesConfig{
		BaseRate:             model.BaseRate,
		WeekendRate:          model.WeekendRate,
		HolidayRate:          model.HolidayRate,
		HolidayDates:         holidays,
		NotificationEndpoint: model.NotificationEndpoint,
	}, nil
}

// Save overwrites the rate policy in full.
func (r *GormRatesRepository) Save(ctx context.Context, rates bookingDomain.RatesConfig) error {
	holidays, err := json.Marshal(rates.HolidayDates)
	if err != nil {
		return fmt.Errorf("failed to marshal holiday dates: %w", err)
	}

	model := RatesModel{
		ID:                   ratesRowID,
		BaseRate:             rates.BaseRate,
		WeekendRate:          rates.WeekendRate,
		HolidayRate:          rates.HolidayRate,
		HolidayDates:         holidays,
		NotificationEndpoint: rates.NotificationEndpoint,
		UpdatedAt:            time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save rates: %w", err)
	}
	return nil
}

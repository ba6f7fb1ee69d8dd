package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/turfmanager/service-booking/internal/domain"
	bookingDomain "github.com/turfmanager/service-booking/internal/domain/booking"
	"gorm.io/gorm"
)

// BookingModel is the GORM model for the bookings table. The date is stored
// in its YYYY-MM-DD wire form so lookups never pass through a timestamp.
type BookingModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Date            string    `gorm:"size:10;index;not null"`
	CustomerName    string    `gorm:"size:200;not null"`
	Phone           string    `gorm:"size:30"`
	StartTime       int       `gorm:"not null"`
	EndTime         int       `gorm:"not null"`
	TotalHours      int       `gorm:"not null"`
	Amount          float64   `gorm:"not null"`
	RateType        string    `gorm:"size:10;not null"`
	DiscountApplied float64   `gorm:"not null;default:0"`
	CreatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of the booking repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByDate retrieves all bookings on a calendar date, ordered by start hour.
func (r *GormBookingRepository) FindByDate(ctx context.Context, date bookingDomain.Date) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("date = ?", date.String()).
		Order("start_time ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by date: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		b, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = b
	}
	return bookings, nil
}

// ListAll retrieves all bookings with pagination, newest first.
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		b, err := toDomainBooking(&m)
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = b
	}
	return bookings, total, nil
}

// CountByRateType returns booking counts grouped by pricing tier.
func (r *GormBookingRepository) CountByRateType(ctx context.Context) (map[string]int64, error) {
	type tierCount struct {
		RateType string
		Count    int64
	}
	var results []tierCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("rate_type, count(*) as count").
		Group("rate_type").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by rate type: %w", err)
	}

	counts := make(map[string]int64)
	for _, tc := range results {
		counts[tc.RateType] = tc.Count
	}
	return counts, nil
}

// SaveIfFree persists a new booking unless its slot overlaps a committed
// booking on the same date. The overlap re-check and the insert share one
// transaction, serialized per date by an advisory lock: a row lock cannot
// guard a slot that has no rows yet, so without it two writers racing for a
// free slot would both count zero clashes and both insert.
func (r *GormBookingRepository) SaveIfFree(ctx context.Context, b *bookingDomain.Booking) error {
	model := toBookingModel(b)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", model.Date).Error; err != nil {
			return fmt.Errorf("failed to lock date %s: %w", model.Date, err)
		}

		var clashes int64
		if err := clashQuery(tx, model.Date, model.StartTime, model.EndTime).Count(&clashes).Error; err != nil {
			return fmt.Errorf("failed to check slot availability: %w", err)
		}
		if clashes > 0 {
			return domain.NewConflictError(fmt.Sprintf("slot %d-%d on %s is already booked", model.StartTime, model.EndTime, model.Date))
		}

		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to save booking: %w", err)
		}
		return nil
	})
}

// Delete removes a booking by its identifier.
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BookingModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("booking", id.String())
	}
	return nil
}

// clashQuery narrows to the bookings whose slot overlaps [start,end) on the
// given date. It must stay a plain filter: adding a locking clause would make
// the aggregate Count invalid SQL on PostgreSQL.
func clashQuery(tx *gorm.DB, date string, start, end int) *gorm.DB {
	return tx.Model(&BookingModel{}).
		Where("date = ? AND start_time < ? AND end_time > ?", date, end, start)
}

// --- Conversion helpers ---

func toBookingModel(b *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:              b.ID(),
		Date:            b.Date().String(),
		CustomerName:    b.CustomerName(),
		Phone:           b.Phone(),
		StartTime:       b.StartTime(),
		EndTime:         b.EndTime(),
		TotalHours:      b.TotalHours(),
		Amount:          b.Amount(),
		RateType:        b.RateType().String(),
		DiscountApplied: b.DiscountApplied(),
		CreatedAt:       b.CreatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	date, err := bookingDomain.ParseDate(m.Date)
	if err != nil {
		return nil, fmt.Errorf("corrupt booking date %q: %w", m.Date, err)
	}
	rateType, err := bookingDomain.ParseRateType(m.RateType)
	if err != nil {
		return nil, fmt.Errorf("corrupt booking rate type %q: %w", m.RateType, err)
	}

	return bookingDomain.ReconstructBooking(
		m.ID,
		date,
		m.CustomerName,
		m.Phone,
		m.StartTime,
		m.EndTime,
		m.TotalHours,
		m.Amount,
		rateType,
		m.DiscountApplied,
		m.CreatedAt,
	), nil
}

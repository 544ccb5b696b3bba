// services/booking_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rent-backend/models"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// Overlaps is the admission test for two date ranges, inclusive on both
// ends: a booking ending on day X and one starting on day X collide, so a
// same-day turnover is rejected. Symmetric in its arguments.
func Overlaps(aFrom, aTo, bFrom, bTo time.Time) bool {
	return !aFrom.After(bTo) && !bFrom.After(aTo)
}

// NightCount is the whole-day difference between the two dates.
func NightCount(from, to time.Time) int {
	f := from.UTC().Truncate(24 * time.Hour)
	t := to.UTC().Truncate(24 * time.Hour)
	return int(t.Sub(f).Hours() / 24)
}

type CreateBookingInput struct {
	PropertyID uint
	UserID     uint
	Guests     int
	Price      float64
	FromDate   time.Time
	ToDate     time.Time
}

// Create admits and records a booking. The overlap check and both ledger
// writes (booking insert + embedded summary append) run in one transaction
// holding a row lock on the property, so two concurrent requests for
// overlapping ranges serialize and the second sees the first's summary.
func (s *BookingService) Create(in CreateBookingInput) (*models.Booking, *models.Property, error) {
	if in.PropertyID == 0 || in.UserID == 0 {
		return nil, nil, fmt.Errorf("%w: property and user are required", ErrValidation)
	}
	if in.FromDate.IsZero() || in.ToDate.IsZero() {
		return nil, nil, fmt.Errorf("%w: fromDate and toDate are required", ErrValidation)
	}

	nights := NightCount(in.FromDate, in.ToDate)
	if nights < 1 {
		return nil, nil, fmt.Errorf("%w: booking must span at least one night", ErrValidation)
	}

	var booking models.Booking
	var property models.Property

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&property, in.PropertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: property %d", ErrNotFound, in.PropertyID)
			}
			return fmt.Errorf("lock property: %w", err)
		}

		for _, b := range property.BookingSummaries() {
			if Overlaps(in.FromDate, in.ToDate, b.FromDate, b.ToDate) {
				return fmt.Errorf("%w: the property is already booked for the requested dates", ErrConflict)
			}
		}

		booking = models.Booking{
			PropertyID:    in.PropertyID,
			UserID:        in.UserID,
			ReferenceCode: uuid.NewString(),
			Guests:        in.Guests,
			Price:         in.Price,
			FromDate:      in.FromDate,
			ToDate:        in.ToDate,
			Nights:        nights,
			Status:        models.BookingStatusConfirmed,
		}
		if err := tx.Create(&booking).Error; err != nil {
			if isDuplicateEntry(err) {
				return fmt.Errorf("%w: duplicate booking reference", ErrConflict)
			}
			return fmt.Errorf("create booking: %w", err)
		}

		if err := property.AppendBookingSummary(models.BookingSummary{
			BookingID: booking.ID,
			FromDate:  in.FromDate,
			ToDate:    in.ToDate,
			UserID:    in.UserID,
		}); err != nil {
			return fmt.Errorf("encode booking summary: %w", err)
		}
		if err := tx.Model(&property).Update("current_bookings", property.CurrentBookings).Error; err != nil {
			return fmt.Errorf("append booking summary: %w", err)
		}

		return nil
	})
	if txErr != nil {
		return nil, nil, txErr
	}

	log.WithFields(log.Fields{
		"booking_id":  booking.ID,
		"property_id": property.ID,
		"nights":      booking.Nights,
	}).Info("booking confirmed")

	return &booking, &property, nil
}

func (s *BookingService) ListByUser(userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.DB.Where("user_id = ?", userID).Order("id DESC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// GetByID returns a booking only to its owner; anything else reads as
// not-found.
func (s *BookingService) GetByID(id, userID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking.UserID != userID {
		return nil, fmt.Errorf("%w: booking %d", ErrNotFound, id)
	}
	return &booking, nil
}

// lockForUpdate takes a row lock where the dialect supports it. sqlite has
// no FOR UPDATE; its writes serialize on the file lock anyway.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// isDuplicateEntry detects a unique key violation (MySQL errno 1062, plus
// the message forms sqlite and older drivers report).
func isDuplicateEntry(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return true
	}
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

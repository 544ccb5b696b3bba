package services

import (
	"fmt"
	"testing"
	"time"

	"rent-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory store with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Property{}, &models.Booking{}))
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Test User", Email: email, Password: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

type propertySpec struct {
	name      string
	price     float64
	ptype     string
	rtype     string
	city      string
	state     string
	area      string
	maxGuests int
	amenities []string
	bookings  []models.BookingSummary
}

func seedProperty(t *testing.T, db *gorm.DB, ownerID uint, spec propertySpec) *models.Property {
	t.Helper()

	if spec.ptype == "" {
		spec.ptype = "House"
	}
	if spec.rtype == "" {
		spec.rtype = "Anytype"
	}
	if spec.maxGuests == 0 {
		spec.maxGuests = 4
	}

	p := &models.Property{
		PropertyName: spec.name,
		Description:  "a place to stay",
		PropertyType: spec.ptype,
		RoomType:     spec.rtype,
		MaximumGuest: spec.maxGuests,
		Price:        spec.price,
		UserID:       ownerID,
		Address: models.Address{
			City:  spec.city,
			State: spec.state,
			Area:  spec.area,
		},
	}

	amenities := make([]models.Amenity, 0, len(spec.amenities))
	for _, name := range spec.amenities {
		amenities = append(amenities, models.Amenity{Name: name, Icon: models.AmenityIcons[name]})
	}
	require.NoError(t, p.SetAmenities(amenities))

	images := make([]models.PropertyImage, 0, 5)
	for i := 0; i < 5; i++ {
		images = append(images, models.PropertyImage{URL: fmt.Sprintf("https://img.example/%s-%d.jpg", spec.name, i)})
	}
	require.NoError(t, p.SetImages(images))

	for _, b := range spec.bookings {
		require.NoError(t, p.AppendBookingSummary(b))
	}

	require.NoError(t, db.Create(p).Error)
	return p
}

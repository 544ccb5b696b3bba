package services

import (
	"math/rand"
	"net/url"
	"testing"
	"time"

	"rent-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps_InclusiveBoundaries(t *testing.T) {
	jun := func(d int) time.Time { return date(2024, time.June, d) }

	cases := []struct {
		name                   string
		aFrom, aTo, bFrom, bTo int
		want                   bool
	}{
		{"disjoint before", 1, 3, 5, 10, false},
		{"disjoint after", 12, 15, 5, 10, false},
		{"contained", 6, 8, 5, 10, true},
		{"containing", 1, 20, 5, 10, true},
		{"partial overlap", 3, 7, 5, 10, true},
		// a booking ending on day X blocks one starting on day X
		{"shared end boundary", 1, 5, 5, 10, true},
		{"shared start boundary", 10, 12, 5, 10, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(jun(tc.aFrom), jun(tc.aTo), jun(tc.bFrom), jun(tc.bTo))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOverlaps_Symmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := date(2024, time.January, 1)

	for i := 0; i < 200; i++ {
		a1 := base.AddDate(0, 0, rng.Intn(60))
		a2 := a1.AddDate(0, 0, rng.Intn(14))
		b1 := base.AddDate(0, 0, rng.Intn(60))
		b2 := b1.AddDate(0, 0, rng.Intn(14))

		assert.Equal(t, Overlaps(a1, a2, b1, b2), Overlaps(b1, b2, a1, a2))
	}
}

func TestNightCount(t *testing.T) {
	assert.Equal(t, 4, NightCount(date(2024, time.June, 1), date(2024, time.June, 5)))
	assert.Equal(t, 0, NightCount(date(2024, time.June, 5), date(2024, time.June, 5)))
	assert.Equal(t, -2, NightCount(date(2024, time.June, 5), date(2024, time.June, 3)))
	// time-of-day is irrelevant, only whole days count
	assert.Equal(t, 1, NightCount(
		time.Date(2024, time.June, 1, 23, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, 2, 1, 0, 0, 0, time.UTC),
	))
}

func TestCreateBooking_Succeeds(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	owner := seedUser(t, db, "owner@example.com")
	guest := seedUser(t, db, "guest@example.com")
	prop := seedProperty(t, db, owner.ID, propertySpec{name: "villa", price: 1500})

	booking, property, err := svc.Create(CreateBookingInput{
		PropertyID: prop.ID,
		UserID:     guest.ID,
		Guests:     2,
		Price:      6000,
		FromDate:   date(2024, time.June, 1),
		ToDate:     date(2024, time.June, 5),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, booking.Nights)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.NotEmpty(t, booking.ReferenceCode)

	// the embedded summary was appended in the same transaction
	summaries := property.BookingSummaries()
	require.Len(t, summaries, 1)
	assert.Equal(t, booking.ID, summaries[0].BookingID)
	assert.Equal(t, guest.ID, summaries[0].UserID)

	// and it is persisted, not just in-memory
	var stored models.Property
	require.NoError(t, db.First(&stored, prop.ID).Error)
	require.Len(t, stored.BookingSummaries(), 1)
}

func TestCreateBooking_SharedBoundaryDayRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	owner := seedUser(t, db, "owner@example.com")
	guest := seedUser(t, db, "guest@example.com")

	prop := seedProperty(t, db, owner.ID, propertySpec{
		name:  "villa",
		price: 1500,
		bookings: []models.BookingSummary{
			{BookingID: 99, FromDate: date(2024, time.June, 5), ToDate: date(2024, time.June, 10), UserID: 7},
		},
	})

	_, _, err := svc.Create(CreateBookingInput{
		PropertyID: prop.ID,
		UserID:     guest.ID,
		Guests:     2,
		Price:      6000,
		FromDate:   date(2024, time.June, 1),
		ToDate:     date(2024, time.June, 5),
	})
	require.ErrorIs(t, err, ErrConflict)

	// no booking row was written
	var count int64
	db.Model(&models.Booking{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateBooking_SequentialDoubleBookingRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	owner := seedUser(t, db, "owner@example.com")
	guest := seedUser(t, db, "guest@example.com")
	prop := seedProperty(t, db, owner.ID, propertySpec{name: "villa", price: 1500})

	_, _, err := svc.Create(CreateBookingInput{
		PropertyID: prop.ID, UserID: guest.ID, Guests: 2, Price: 6000,
		FromDate: date(2024, time.June, 1), ToDate: date(2024, time.June, 7),
	})
	require.NoError(t, err)

	_, _, err = svc.Create(CreateBookingInput{
		PropertyID: prop.ID, UserID: guest.ID, Guests: 2, Price: 6000,
		FromDate: date(2024, time.June, 6), ToDate: date(2024, time.June, 9),
	})
	require.ErrorIs(t, err, ErrConflict)

	// disjoint dates still admit
	_, _, err = svc.Create(CreateBookingInput{
		PropertyID: prop.ID, UserID: guest.ID, Guests: 2, Price: 6000,
		FromDate: date(2024, time.June, 10), ToDate: date(2024, time.June, 12),
	})
	require.NoError(t, err)
}

func TestCreateBooking_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	owner := seedUser(t, db, "owner@example.com")
	guest := seedUser(t, db, "guest@example.com")
	prop := seedProperty(t, db, owner.ID, propertySpec{name: "villa", price: 1500})

	// zero-night stay
	_, _, err := svc.Create(CreateBookingInput{
		PropertyID: prop.ID, UserID: guest.ID, Guests: 1, Price: 1500,
		FromDate: date(2024, time.June, 5), ToDate: date(2024, time.June, 5),
	})
	require.ErrorIs(t, err, ErrValidation)

	// negative-night stay
	_, _, err = svc.Create(CreateBookingInput{
		PropertyID: prop.ID, UserID: guest.ID, Guests: 1, Price: 1500,
		FromDate: date(2024, time.June, 5), ToDate: date(2024, time.June, 1),
	})
	require.ErrorIs(t, err, ErrValidation)

	// unknown property
	_, _, err = svc.Create(CreateBookingInput{
		PropertyID: 9999, UserID: guest.ID, Guests: 1, Price: 1500,
		FromDate: date(2024, time.June, 1), ToDate: date(2024, time.June, 3),
	})
	require.ErrorIs(t, err, ErrNotFound)
}

// Round-trip: once a booking is admitted, availability search must exclude
// the property for any overlapping window.
func TestCreateBooking_ExcludedFromAvailabilitySearch(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db)
	properties := NewPropertyService(db)
	owner := seedUser(t, db, "owner@example.com")
	guest := seedUser(t, db, "guest@example.com")
	prop := seedProperty(t, db, owner.ID, propertySpec{name: "villa", price: 1500})

	res, err := properties.List(url.Values{"dateIn": {"2024-06-02"}, "dateOut": {"2024-06-04"}})
	require.NoError(t, err)
	require.Equal(t, 1, res.Filtered)

	_, _, err = bookings.Create(CreateBookingInput{
		PropertyID: prop.ID, UserID: guest.ID, Guests: 2, Price: 6000,
		FromDate: date(2024, time.June, 1), ToDate: date(2024, time.June, 5),
	})
	require.NoError(t, err)
	properties.InvalidateCache()

	res, err = properties.List(url.Values{"dateIn": {"2024-06-02"}, "dateOut": {"2024-06-04"}})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Filtered)

	// a window after checkout is open again
	res, err = properties.List(url.Values{"dateIn": {"2024-06-20"}, "dateOut": {"2024-06-25"}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Filtered)
}

func TestListByUserAndDetails(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	owner := seedUser(t, db, "owner@example.com")
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	prop := seedProperty(t, db, owner.ID, propertySpec{name: "villa", price: 1500})
	prop2 := seedProperty(t, db, owner.ID, propertySpec{name: "flat", price: 900})

	b1, _, err := svc.Create(CreateBookingInput{
		PropertyID: prop.ID, UserID: alice.ID, Guests: 2, Price: 3000,
		FromDate: date(2024, time.June, 1), ToDate: date(2024, time.June, 3),
	})
	require.NoError(t, err)

	_, _, err = svc.Create(CreateBookingInput{
		PropertyID: prop2.ID, UserID: bob.ID, Guests: 1, Price: 900,
		FromDate: date(2024, time.June, 1), ToDate: date(2024, time.June, 2),
	})
	require.NoError(t, err)

	mine, err := svc.ListByUser(alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, b1.ID, mine[0].ID)

	got, err := svc.GetByID(b1.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, b1.ReferenceCode, got.ReferenceCode)

	// someone else's booking reads as not-found
	_, err = svc.GetByID(b1.ID, bob.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

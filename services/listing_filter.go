package services

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"rent-backend/models"

	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 12
)

// ListingFilter is the parsed form of the listing query string. Stages are
// independent: the SQL-expressible ones become a gorm scope, amenity and
// date-availability checks run over the decoded JSON columns, and
// pagination always applies last.
type ListingFilter struct {
	MinPrice     *float64
	MaxPrice     *float64
	PriceOpenEnd bool

	PropertyTypes []string
	RoomType      string
	Amenities     []string

	City   string
	Guests int

	DateIn  *time.Time
	DateOut *time.Time

	Page  int
	Limit int
}

// ParseListingFilter never fails: absent or unparseable parameters simply
// deactivate their stage, and page/limit fall back to 1/12.
func ParseListingFilter(q url.Values) ListingFilter {
	f := ListingFilter{Page: defaultPage, Limit: defaultLimit}

	// Price applies only when both bounds are present. A ">" marker on
	// maxPrice means "this much and up" — only the lower bound is kept.
	minRaw := strings.TrimSpace(q.Get("minPrice"))
	maxRaw := strings.TrimSpace(q.Get("maxPrice"))
	if minRaw != "" && maxRaw != "" {
		openEnd := strings.Contains(maxRaw, ">")
		min, minErr := strconv.ParseFloat(minRaw, 64)
		max, maxErr := strconv.ParseFloat(strings.TrimRight(maxRaw, ">"), 64)
		if minErr == nil && (openEnd || maxErr == nil) {
			f.MinPrice = &min
			f.PriceOpenEnd = openEnd
			if !openEnd {
				f.MaxPrice = &max
			}
		}
	}

	// propertyType accepts comma-separated alternatives (OR).
	if raw := strings.TrimSpace(q.Get("propertyType")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if t := strings.TrimSpace(part); t != "" {
				f.PropertyTypes = append(f.PropertyTypes, t)
			}
		}
	}

	f.RoomType = strings.TrimSpace(q.Get("roomType"))

	// amenities may arrive repeated and/or comma-separated.
	for _, raw := range q["amenities"] {
		for _, part := range strings.Split(raw, ",") {
			if a := strings.TrimSpace(part); a != "" {
				f.Amenities = append(f.Amenities, a)
			}
		}
	}

	f.City = strings.TrimSpace(q.Get("city"))

	if raw := strings.TrimSpace(q.Get("guests")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			f.Guests = n
		}
	}

	// Availability activates only when both ends parse.
	in, inOK := parseListingDate(q.Get("dateIn"))
	out, outOK := parseListingDate(q.Get("dateOut"))
	if inOK && outOK {
		f.DateIn = &in
		f.DateOut = &out
	}

	if n, err := strconv.Atoi(strings.TrimSpace(q.Get("page"))); err == nil && n > 0 {
		f.Page = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(q.Get("limit"))); err == nil && n > 0 {
		f.Limit = n
	}

	return f
}

func parseListingDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Scope covers the stages the store can evaluate directly.
func (f ListingFilter) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.MinPrice != nil {
			if f.PriceOpenEnd || f.MaxPrice == nil {
				db = db.Where("price >= ?", *f.MinPrice)
			} else {
				db = db.Where("price >= ? AND price <= ?", *f.MinPrice, *f.MaxPrice)
			}
		}

		if len(f.PropertyTypes) > 0 {
			lowered := make([]string, 0, len(f.PropertyTypes))
			for _, t := range f.PropertyTypes {
				lowered = append(lowered, strings.ToLower(t))
			}
			db = db.Where("LOWER(property_type) IN ?", lowered)
		}

		if f.RoomType != "" {
			db = db.Where("LOWER(room_type) = ?", strings.ToLower(f.RoomType))
		}

		if f.City != "" {
			term := models.NormalizeLocation(f.City)
			db = db.Where("address_city = ? OR address_state = ? OR address_area = ?", term, term, term)
		}

		if f.Guests > 0 {
			db = db.Where("maximum_guest >= ?", f.Guests)
		}

		return db
	}
}

// MatchesAmenities requires every requested amenity name to be present among
// the property's tags (AND, not OR).
func (f ListingFilter) MatchesAmenities(p *models.Property) bool {
	if len(f.Amenities) == 0 {
		return true
	}

	have := make(map[string]bool, len(f.Amenities))
	for _, a := range p.AmenityList() {
		have[a.Name] = true
	}
	for _, want := range f.Amenities {
		if !have[want] {
			return false
		}
	}
	return true
}

// Available reports whether no embedded booking summary overlaps the
// requested stay. Search uses a half-open test — distinct from the inclusive
// test booking admission applies.
func (f ListingFilter) Available(p *models.Property) bool {
	if f.DateIn == nil || f.DateOut == nil {
		return true
	}
	for _, b := range p.BookingSummaries() {
		if b.FromDate.Before(*f.DateOut) && b.ToDate.After(*f.DateIn) {
			return false
		}
	}
	return true
}

func (f ListingFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Paginate is the final stage; it never reorders or refilters.
func (f ListingFilter) Paginate(props []models.Property) []models.Property {
	start := f.Offset()
	if start >= len(props) {
		return []models.Property{}
	}
	end := start + f.Limit
	if end > len(props) {
		end = len(props)
	}
	return props[start:end]
}

package models

import (
	"encoding/json"
	"strings"
	"time"
	"unicode"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Closed sets — the frontend only ever sends these values.
var (
	PropertyTypes = []string{"House", "Flat", "Guest House", "Hotel"}
	RoomTypes     = []string{"Anytype", "Room", "Entire Home"}

	// AmenityIcons maps every allowed amenity name to its default icon
	// reference. Also serves as the closed set for validation.
	AmenityIcons = map[string]string{
		"Wifi":            "wifi",
		"Kitchen":         "kitchen",
		"Ac":              "ac_unit",
		"Free Parking":    "local_parking",
		"Tv":              "tv",
		"Pool":            "pool",
		"Washing Machine": "local_laundry_service",
	}
)

const MinPropertyImages = 5

// AmenityCatalogEntry is one row of the seeded amenity catalog. The source
// of truth is AmenityIcons; the table makes the catalog queryable.
type AmenityCatalogEntry struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:64;uniqueIndex" json:"name"`
	Icon string `gorm:"size:64" json:"icon"`
}

// DefaultExtraInfo is the filler description applied when a host leaves the
// extra-info field empty on submission.
const DefaultExtraInfo = "Nestled in a tranquil neighborhood, the house exudes an aura of charm and elegance. The exterior is adorned with a harmonious blend of classic and contemporary architectural elements, featuring a beautiful brick facade and a welcoming front porch. As you step inside, you are greeted by a spacious, sunlit living room with high ceilings and large windows that invite an abundance of natural light. The hardwood floors add a touch of warmth to the space, complementing the neutral color palette. The kitchen is a chef's dream, equipped with modern appliances, sleek countertops, and ample storage space. It opens up to a cozy dining area, creating a perfect setting for family meals and gatherings."

type Amenity struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type PropertyImage struct {
	PublicID string `json:"public_id,omitempty"`
	URL      string `json:"url"`
}

// BookingSummary is the denormalized copy of a booking kept on the property
// row so availability search never has to join the bookings table.
type BookingSummary struct {
	BookingID uint      `json:"bookingId"`
	FromDate  time.Time `json:"fromDate"`
	ToDate    time.Time `json:"toDate"`
	UserID    uint      `json:"userId"`
}

type Address struct {
	Area    string `gorm:"size:191" json:"area"`
	City    string `gorm:"size:191;index" json:"city"`
	State   string `gorm:"size:191" json:"state"`
	Pincode int    `json:"pincode"`
}

type Property struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PropertyName string `gorm:"size:191;not null" json:"propertyName"`
	Description  string `gorm:"type:text" json:"description"`
	ExtraInfo    string `gorm:"type:text" json:"extraInfo"`

	PropertyType string `gorm:"size:32;default:House" json:"propertyType"`
	RoomType     string `gorm:"size:32;default:Anytype" json:"roomType"`

	MaximumGuest int     `gorm:"column:maximum_guest" json:"maximumGuest"`
	Price        float64 `gorm:"default:500" json:"price"`

	Amenities       datatypes.JSON `gorm:"column:amenities" json:"amenities,omitempty"`
	Images          datatypes.JSON `gorm:"column:images" json:"images,omitempty"`
	CurrentBookings datatypes.JSON `gorm:"column:current_bookings" json:"currentBookings,omitempty"`

	Address Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`

	UserID uint   `gorm:"index;column:user_id" json:"userId"`
	Slug   string `gorm:"size:191;index" json:"slug"`

	CheckInTime  string `gorm:"size:8;default:'11:00'" json:"checkInTime"`
	CheckOutTime string `gorm:"size:8;default:'13:00'" json:"checkOutTime"`
}

// NormalizeLocation lower-cases a place name and strips all whitespace.
// Applied both at write time and to incoming search terms, so equality
// matching works without fuzzy search.
func NormalizeLocation(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// BeforeSave normalizes address fields and derives the slug.
func (p *Property) BeforeSave(tx *gorm.DB) error {
	p.Address.Area = NormalizeLocation(p.Address.Area)
	p.Address.City = NormalizeLocation(p.Address.City)
	p.Address.State = NormalizeLocation(p.Address.State)
	if p.Slug == "" && p.PropertyName != "" {
		p.Slug = Slugify(p.PropertyName)
	}
	return nil
}

// Slugify folds a property name into a url-safe slug.
func Slugify(s string) string {
	var sb strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

// ---------------------------
// JSON column decode helpers (best-effort: malformed data decodes to empty)
// ---------------------------

func (p *Property) AmenityList() []Amenity {
	var out []Amenity
	if len(p.Amenities) == 0 {
		return out
	}
	_ = json.Unmarshal(p.Amenities, &out)
	return out
}

func (p *Property) ImageList() []PropertyImage {
	var out []PropertyImage
	if len(p.Images) == 0 {
		return out
	}
	_ = json.Unmarshal(p.Images, &out)
	return out
}

func (p *Property) BookingSummaries() []BookingSummary {
	var out []BookingSummary
	if len(p.CurrentBookings) == 0 {
		return out
	}
	_ = json.Unmarshal(p.CurrentBookings, &out)
	return out
}

// AppendBookingSummary re-encodes the embedded list with one more entry.
func (p *Property) AppendBookingSummary(s BookingSummary) error {
	list := append(p.BookingSummaries(), s)
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	p.CurrentBookings = datatypes.JSON(raw)
	return nil
}

func (p *Property) SetAmenities(list []Amenity) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	p.Amenities = datatypes.JSON(raw)
	return nil
}

func (p *Property) SetImages(list []PropertyImage) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	p.Images = datatypes.JSON(raw)
	return nil
}

// ValidPropertyType reports whether t matches the closed set, ignoring case.
func ValidPropertyType(t string) bool {
	for _, v := range PropertyTypes {
		if strings.EqualFold(v, t) {
			return true
		}
	}
	return false
}

func ValidRoomType(t string) bool {
	for _, v := range RoomTypes {
		if strings.EqualFold(v, t) {
			return true
		}
	}
	return false
}

func ValidAmenityName(name string) bool {
	_, ok := AmenityIcons[name]
	return ok
}

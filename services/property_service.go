package services

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"rent-backend/models"

	"github.com/karlseguin/ccache/v3"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const listingCacheTTL = 30 * time.Second

// ListingResult is one page of search output plus the counts the frontend
// renders ("N of M properties").
type ListingResult struct {
	Properties []models.Property
	Filtered   int
	Total      int64
}

type PropertyService struct {
	DB    *gorm.DB
	cache *ccache.Cache[ListingResult]
}

func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{
		DB:    db,
		cache: ccache.New(ccache.Configure[ListingResult]().MaxSize(512)),
	}
}

// List runs filter -> search -> paginate over the listing collection.
// Results are cached per raw query string for a short window; any write that
// changes availability clears the cache.
func (s *PropertyService) List(q url.Values) (ListingResult, error) {
	key := q.Encode()
	if item := s.cache.Get(key); item != nil && !item.Expired() {
		return item.Value(), nil
	}

	f := ParseListingFilter(q)

	var props []models.Property
	if err := s.DB.Scopes(f.Scope()).Find(&props).Error; err != nil {
		return ListingResult{}, fmt.Errorf("list properties: %w", err)
	}

	// Amenity and availability stages read JSON columns, so they run here
	// rather than in SQL. Order relative to the scope does not matter —
	// every stage only ever narrows the set.
	matched := make([]models.Property, 0, len(props))
	for i := range props {
		if !f.MatchesAmenities(&props[i]) {
			continue
		}
		if !f.Available(&props[i]) {
			continue
		}
		matched = append(matched, props[i])
	}

	var total int64
	if err := s.DB.Model(&models.Property{}).Count(&total).Error; err != nil {
		return ListingResult{}, fmt.Errorf("count properties: %w", err)
	}

	res := ListingResult{
		Properties: f.Paginate(matched),
		Filtered:   len(matched),
		Total:      total,
	}
	s.cache.Set(key, res, listingCacheTTL)
	return res, nil
}

func (s *PropertyService) GetByID(id uint) (*models.Property, error) {
	var p models.Property
	if err := s.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: property %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get property: %w", err)
	}
	return &p, nil
}

// GetBySlug resolves a listing by its url slug.
func (s *PropertyService) GetBySlug(slug string) (*models.Property, error) {
	var p models.Property
	if err := s.DB.Where("slug = ?", slug).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: property %q", ErrNotFound, slug)
		}
		return nil, fmt.Errorf("get property: %w", err)
	}
	return &p, nil
}

// Create validates a submission and stores it for the given owner.
func (s *PropertyService) Create(p *models.Property, ownerID uint) error {
	if p.PropertyName == "" {
		return fmt.Errorf("%w: please enter your property name", ErrValidation)
	}
	if p.Description == "" {
		return fmt.Errorf("%w: please add information about your property", ErrValidation)
	}
	if p.MaximumGuest <= 0 {
		return fmt.Errorf("%w: please give the maximum no of guest that can occupy", ErrValidation)
	}
	if p.PropertyType != "" && !models.ValidPropertyType(p.PropertyType) {
		return fmt.Errorf("%w: unknown property type %q", ErrValidation, p.PropertyType)
	}
	if p.RoomType != "" && !models.ValidRoomType(p.RoomType) {
		return fmt.Errorf("%w: unknown room type %q", ErrValidation, p.RoomType)
	}
	if len(p.ImageList()) < models.MinPropertyImages {
		return fmt.Errorf("%w: the images array must contain at least %d images", ErrValidation, models.MinPropertyImages)
	}

	amenities := p.AmenityList()
	for i, a := range amenities {
		if !models.ValidAmenityName(a.Name) {
			return fmt.Errorf("%w: unknown amenity %q", ErrValidation, a.Name)
		}
		if a.Icon == "" {
			amenities[i].Icon = models.AmenityIcons[a.Name]
		}
	}
	if len(amenities) > 0 {
		if err := p.SetAmenities(amenities); err != nil {
			return fmt.Errorf("encode amenities: %w", err)
		}
	}

	if p.ExtraInfo == "" {
		p.ExtraInfo = models.DefaultExtraInfo
	}
	p.UserID = ownerID

	if err := s.DB.Create(p).Error; err != nil {
		return fmt.Errorf("create property: %w", err)
	}

	log.WithFields(log.Fields{"property_id": p.ID, "owner_id": ownerID}).Info("property listed")
	s.InvalidateCache()
	return nil
}

func (s *PropertyService) ListByOwner(ownerID uint) ([]models.Property, error) {
	var props []models.Property
	if err := s.DB.Where("user_id = ?", ownerID).Order("id DESC").Find(&props).Error; err != nil {
		return nil, fmt.Errorf("list owner properties: %w", err)
	}
	return props, nil
}

// InvalidateCache drops cached listing pages. Called after any write that
// can change what a search returns.
func (s *PropertyService) InvalidateCache() {
	s.cache.Clear()
}

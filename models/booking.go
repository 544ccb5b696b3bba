package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingStatusConfirmed = "confirmed"
)

type Booking struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PropertyID uint `gorm:"index;column:property_id" json:"property"`
	UserID     uint `gorm:"index;column:user_id" json:"user"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"referenceCode"`

	Guests   int       `json:"guests"`
	Price    float64   `json:"price"`
	FromDate time.Time `gorm:"column:from_date" json:"fromDate"`
	ToDate   time.Time `gorm:"column:to_date" json:"toDate"`
	Nights   int       `gorm:"column:nights" json:"numberOfNights"`
	Status   string    `gorm:"size:32;default:confirmed" json:"status"`
}

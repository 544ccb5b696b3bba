package models

import (
	"time"
)

// DefaultAvatarURL is used when a signup carries no avatar.
const DefaultAvatarURL = "https://t3.ftcdn.net/jpg/01/18/01/98/360_F_118019822_6CKXP6rXmVhDOzbXZlLqEM2ya4HhYzSV.jpg"

type Avatar struct {
	PublicID string `gorm:"size:191" json:"public_id,omitempty"`
	URL      string `gorm:"size:512" json:"url"`
}

type User struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name        string `gorm:"size:191;not null" json:"name"`
	Email       string `gorm:"size:191;uniqueIndex;not null" json:"email"`
	PhoneNumber string `gorm:"size:32" json:"phoneNumber"`

	// bcrypt hash, never serialized
	Password string `gorm:"size:191;not null" json:"-"`

	Avatar Avatar `gorm:"embedded;embeddedPrefix:avatar_" json:"avatar"`

	// transient reset state: sha256 digest of the mailed token + expiry
	PasswordResetToken   string     `gorm:"size:128;index" json:"-"`
	PasswordResetExpires *time.Time `json:"-"`

	// tokens issued before this instant are rejected by the auth middleware
	PasswordChangedAt *time.Time `json:"-"`
}

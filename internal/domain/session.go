package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Session is a server-side record of an authenticated principal, keyed by
// the opaque token handed to the client. AuthUser holds a snapshot of the
// user document captured at login; it is not kept in sync with the users
// table afterwards.
type Session struct {
	Token     string         `json:"-" gorm:"primaryKey"`
	AuthUser  datatypes.JSON `json:"-" gorm:"not null"`
	ExpiresAt time.Time      `json:"expiresAt" gorm:"not null;index"`
	CreatedAt time.Time      `json:"createdAt"`
}

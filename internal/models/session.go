package models

import (
	"time"

	"github.com/google/uuid"
)

// Session to lokalna sesja UI. Wiersz sesji jest jedynym właścicielem
// poświadczenia upstream danego użytkownika.
type Session struct {
	ID                uuid.UUID `json:"id" example:"a1b2c3d4-e5f6-7890-1234-567890abcdef"`
	UserID            int64     `json:"user_id"`
	RefreshToken      string    `json:"-"`
	UserAgent         string    `json:"user_agent"`
	ClientIP          string    `json:"client_ip"`
	UpstreamToken     string    `json:"-"`
	UpstreamExpiresAt time.Time `json:"upstream_expires_at"`
	ExpiresAt         time.Time `json:"expires_at"`
	CreatedAt         time.Time `json:"created_at"`
}

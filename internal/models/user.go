package models

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account identity. Rows are hard-deleted so a freed email can be
// registered again; email uniqueness is enforced by the index at write time.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Avatar    string    `gorm:"size:512" json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GravatarURL derives the avatar reference for an email address: 200px,
// PG-rated, "mystery man" fallback. Gravatar hashes the trimmed lowercased
// address regardless of how the email is stored.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://gravatar.com/avatar/%x?s=200&r=pg&d=mm", hash)
}

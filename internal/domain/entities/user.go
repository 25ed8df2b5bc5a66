package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents an account that can sign in and act on meetings
type User struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email    string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name     string    `json:"name" gorm:"type:varchar(255);not null"`
	IsActive bool      `json:"is_active" gorm:"default:true;not null"`

	// Profile
	Timezone string `json:"timezone" gorm:"type:varchar(50);default:'Europe/Berlin';not null"`
	Language string `json:"language" gorm:"type:varchar(10);default:'de';not null"`

	// Status
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`

	// Preferences (stored as JSONB in PostgreSQL)
	Preferences datatypes.JSON `json:"preferences" gorm:"type:jsonb"`

	// Timestamps
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the primary key
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// NewUser creates a new user with default values
func NewUser(email, name string) *User {
	now := time.Now()

	prefs, _ := json.Marshal(map[string]interface{}{
		"protocol_language": "de",
	})

	return &User{
		ID:          uuid.New(),
		Email:       email,
		Name:        name,
		IsActive:    true,
		Timezone:    "Europe/Berlin",
		Language:    "de",
		Preferences: prefs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate validates user data
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrInvalidEmail
	}
	if u.Name == "" {
		return ErrInvalidName
	}
	return nil
}

package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// User owns properties and API keys. Account management (signup, OAuth,
// sessions) lives outside this service; rows here come from seeding or an
// external provisioning flow.
type User struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	Email       string       `json:"email" gorm:"type:text;not null;uniqueIndex:ux_users_email"`
	DisplayName string       `json:"display_name" gorm:"type:text"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

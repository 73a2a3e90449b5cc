package entity

import (
	"time"

	"github.com/battlezone-labs/backend/pkg/enum"
)

type GlobalRole string

var (
	RoleAdmin     = enum.New(GlobalRole("admin"))
	RoleModerator = enum.New(GlobalRole("moderator"))
	RoleUser      = enum.New(GlobalRole("user"))
)

// UserRole is the role-assignment relation. Privileges are always resolved
// from this table, never cached in-process.
type UserRole struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	Role GlobalRole `gorm:"primaryKey"`

	CreatedAt time.Time
}

package entity

import "database/sql"

// User is created on first authentication and never hard-deleted; a banned
// account keeps its rows but is refused by every operation.
type User struct {
	Base

	ExternalUID  string `gorm:"unique"`
	Email        string
	Username     string
	ReferralCode string `gorm:"unique"`
	ReferredBy   sql.NullString
	IsBanned     bool
}

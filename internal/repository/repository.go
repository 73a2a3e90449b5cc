package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNegativeBalance is returned by WalletRepository.ApplyDelta when the
// requested delta would drive credits or cash below zero. Callers are
// expected to pre-validate; the store is the final guard.
var ErrNegativeBalance = errors.New("delta would drive balance negative")

// IsUniqueViolation reports whether err is a duplicate-key error. The mysql
// and sqlite drivers translate to gorm.ErrDuplicatedKey at different
// versions, so the message is checked as well.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// Package domain contains entities without logic, just meta-data
package domain

import "errors"

const (
	MaxUserNameLen = 36
	MaxMessageLen  = 2000
)

var (
	ErrUserNameEmpty   = errors.New("user name empty")
	ErrUserNameTooLong = errors.New("user name too long")
	ErrMessageEmpty    = errors.New("message empty")
	ErrMessageTooLong  = errors.New("message too long")
)

// ValidateUserName keeps display names inside wire limits.
func ValidateUserName(name string) error {
	if len(name) == 0 {
		return ErrUserNameEmpty
	}
	if len(name) > MaxUserNameLen {
		return ErrUserNameTooLong
	}
	return nil
}

// ValidateMessage bounds chat message bodies.
func ValidateMessage(text string) error {
	if len(text) == 0 {
		return ErrMessageEmpty
	}
	if len(text) > MaxMessageLen {
		return ErrMessageTooLong
	}
	return nil
}

package model

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when an account with the email already exists.
	ErrDuplicateEmail = errors.New("account already exists")
	// ErrInvalidCredentials covers both unknown accounts and wrong passwords,
	// so callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDeactivated is returned when login is attempted on a deactivated account.
	ErrAccountDeactivated = errors.New("account deactivated")
	// ErrPasswordMismatch is returned when a new password and its confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrInvalidResetToken is returned when a reset token is unknown, consumed or expired.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	// ErrMissingFields is returned when mandatory account fields are blank.
	ErrMissingFields = errors.New("name and email are mandatory")
	// ErrSourceUnreadable is returned when an import source cannot be opened or parsed.
	ErrSourceUnreadable = errors.New("import source unreadable")
)

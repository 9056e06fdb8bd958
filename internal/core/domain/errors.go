package domain

import "errors"

// Sentinel errors shared across the core. Two disjoint classes: denials are
// reported to the caller in full, failures are operational and surface only
// as a generic reason while the real cause is logged server-side.

// Login denials.
var (
	// ErrUnknownLogin: the username does not exist. Username enumeration is
	// an accepted trade-off; email enumeration is not (see
	// ErrInvalidCredentials).
	ErrUnknownLogin = errors.New("unknown login")
	// ErrInvalidPassword: the username exists but the password is wrong.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrInvalidCredentials: the email/password pair is wrong, without
	// revealing whether the email exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Operational failures.
var (
	ErrPasswordHashing   = errors.New("password hashing failed")
	ErrDatabaseInsertion = errors.New("database insertion failed")
	ErrTokenCreation     = errors.New("token creation failed")
	ErrDatabase          = errors.New("database failure")
)

// Storage outcomes recoded at the repository boundary.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrJokeNotFound = errors.New("joke not found")
)

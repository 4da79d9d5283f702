package users

import "time"

// User is the stored identity record. Email uniqueness is enforced by the
// store; the password hash never leaves this package and is never logged.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	DateOfBirth  time.Time
	CreatedAt    time.Time
}

// RegisterRequest carries the registration input. The raw password exists
// only for the duration of the call and must not outlive hashing.
type RegisterRequest struct {
	Email       string
	Password    string
	FullName    string
	DateOfBirth time.Time
}

// Credentials carries the login input.
type Credentials struct {
	Email    string
	Password string
}

// AuthResult is the success payload of Register and Login. Registration
// deliberately leaves Token empty and ExpiresAt zero: a subsequent explicit
// login is required to obtain a session token.
type AuthResult struct {
	Email     string
	FullName  string
	Token     string
	ExpiresAt time.Time
}

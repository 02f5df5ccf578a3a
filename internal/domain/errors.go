package domain

import "errors"

// Auth errors
var (
	ErrEmailTaken         = errors.New("a user with that email already exists")
	ErrInvalidCredentials = errors.New("login credentials are invalid")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrSessionNotFound    = errors.New("session not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("forbidden")
)

// Book errors
var (
	ErrTitleTaken   = errors.New("a book with that title already exists")
	ErrBookNotFound = errors.New("book not found")
	ErrValidation   = errors.New("required field must not be empty")
)

// errors/directory_errors.go
package errors

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidUserData   = errors.New("invalid user data")
	ErrDatabaseOperation = errors.New("database operation failed")
)

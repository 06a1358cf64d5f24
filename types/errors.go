package types

const (
	ErrInvalidInput     = "Invalid input"
	ErrDatabaseError    = "Database error"
	ErrUnauthorized     = "Unauthorized access"
	ErrNotFound         = "Record not found"
	ErrEntryLocked      = "Time entry is locked"
	ErrInvalidDateRange = "Invalid date range"
	ErrInternalError    = "internal server error"
)

package table

import "errors"

// Common errors returned by the table package.
var (
	// ErrInvalidColumn is returned when a column index is out of range.
	ErrInvalidColumn = errors.New("invalid column index")

	// ErrInvalidRow is returned when a row index is out of range.
	ErrInvalidRow = errors.New("invalid row index")

	// ErrColumnNotFound is returned when a column name is not found.
	ErrColumnNotFound = errors.New("column not found")

	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrLengthMismatch is returned when columns have unequal lengths.
	ErrLengthMismatch = errors.New("column length mismatch")

	// ErrTypeMismatch is returned when a column's type cannot serve an operation.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrEmptyData is returned when data is empty where it shouldn't be.
	ErrEmptyData = errors.New("data is empty")
)

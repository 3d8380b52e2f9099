package book

import "errors"

var (
	ErrInvalidTitle = errors.New("book title must have a minimum length of 2")

	// ErrDuplicateTitle covers both the fast-path check and the unique
	// index losing a concurrent race: titles are globally unique.
	ErrDuplicateTitle = errors.New("a book with this title is already saved")

	ErrBookNotFound = errors.New("book not found")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidTitle):
		return "INVALID_TITLE"
	case errors.Is(err, ErrDuplicateTitle):
		return "DUPLICATE_TITLE"
	case errors.Is(err, ErrBookNotFound):
		return "BOOK_NOT_FOUND"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidTitle):
		return 400
	case errors.Is(err, ErrDuplicateTitle):
		return 409
	case errors.Is(err, ErrBookNotFound):
		return 404
	default:
		return 500
	}
}

package author

import "errors"

var (
	// ErrInvalidName rejects implicit creation of an author whose name is
	// shorter than MinNameLength.
	ErrInvalidName = errors.New("author name must have a minimum length of 4")

	// ErrAuthorNotFound is returned by lookups. Note that the edit-author
	// operation deliberately maps it to an empty result instead.
	ErrAuthorNotFound = errors.New("author not found")

	// ErrNameTaken is the storage-level uniqueness conflict on the name,
	// surfaced when a concurrent insert wins the race.
	ErrNameTaken = errors.New("author with this name already exists")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidName):
		return "INVALID_AUTHOR_NAME"
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, ErrNameTaken):
		return "CONFLICT"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidName):
		return 400
	case errors.Is(err, ErrAuthorNotFound):
		return 404
	case errors.Is(err, ErrNameTaken):
		return 409
	default:
		return 500
	}
}

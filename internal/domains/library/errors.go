package library

import "errors"

// ErrUnauthenticated is a hard failure: an operation requiring identity was
// attempted with no, an invalid, or an expired credential. It is never
// downgraded to an anonymous "guest" context.
var ErrUnauthenticated = errors.New("not authenticated")

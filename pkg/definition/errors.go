package definition

import "errors"

// ErrFormNotFound is returned when a catalog holds no form with the requested
// id.
var ErrFormNotFound = errors.New("definition: form not found")

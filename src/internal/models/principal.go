package models

// Principal is the authenticated identity bound to a request. It is an
// immutable snapshot taken at authentication time and is not refreshed
// during request handling.
type Principal struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Admin     bool
}

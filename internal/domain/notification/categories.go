// internal/domain/notification/categories.go
package notification

// Category identifies a class of error for duplicate suppression. It is a
// label, distinct from the message text sent for it.
type Category string

const (
	CategoryRequestError      Category = "request error"
	CategoryAPICode           Category = "api code"
	CategoryJSON              Category = "json"
	CategoryMalformedResponse Category = "malformed response"
	CategoryDate              Category = "date"
	CategoryUnexpectedVerdict Category = "unexpected verdict"
	CategoryMissingField      Category = "missing field"
)

// NoError is the neutral message that marks a category's error condition as
// cleared. Notifying it resets the ledger entry without sending anything.
const NoError = "No errors"

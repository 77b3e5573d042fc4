// internal/domain/homework/submission.go
package homework

// Field names of a submission record in the homework API payload.
const (
	FieldName   = "homework_name"
	FieldStatus = "status"
)

// Snapshot is a validated homework API response. Homeworks holds the raw
// decoded submission records, newest first; CurrentDate is left undecoded
// until the poller checks it is a plausible timestamp.
type Snapshot struct {
	Homeworks   []any
	CurrentDate any
}

// Submission is the part of one homework record the bot cares about.
type Submission struct {
	Name   string
	Status Verdict
}

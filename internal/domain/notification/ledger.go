// internal/domain/notification/ledger.go
package notification

// Ledger remembers, per category, the last error message that was notified.
// It is not safe for concurrent use; the poll loop owns it exclusively.
type Ledger struct {
	last map[Category]string
}

func NewLedger() *Ledger {
	return &Ledger{last: make(map[Category]string)}
}

// Seen reports whether message is the last one notified for category.
func (l *Ledger) Seen(category Category, message string) bool {
	last, ok := l.last[category]
	return ok && last == message
}

// Record stores message as the last one notified for category.
func (l *Ledger) Record(category Category, message string) {
	l.last[category] = message
}

// Clear resets category to the NoError sentinel.
func (l *Ledger) Clear(category Category) {
	l.last[category] = NoError
}

// Last returns the ledger entry for category, or "" if there is none.
func (l *Ledger) Last(category Category) string {
	return l.last[category]
}

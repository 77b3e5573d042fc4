// internal/domain/homework/verdict.go
package homework

// Verdict is the review outcome code reported for a homework submission.
type Verdict string

const (
	VerdictApproved  Verdict = "approved"
	VerdictReviewing Verdict = "reviewing"
	VerdictRejected  Verdict = "rejected"
)

// verdictTexts is the catalog of display texts. It is never mutated.
var verdictTexts = map[Verdict]string{
	VerdictApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	VerdictReviewing: "Работа взята на проверку ревьюером.",
	VerdictRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Text returns the display text for v and whether v is in the catalog.
func (v Verdict) Text() (string, bool) {
	text, ok := verdictTexts[v]
	return text, ok
}

// Verdicts lists every catalog verdict in a stable order.
func Verdicts() []Verdict {
	return []Verdict{VerdictApproved, VerdictReviewing, VerdictRejected}
}

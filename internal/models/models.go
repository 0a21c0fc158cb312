package models

// Passage is a bounded-length span of crawled text, the unit of
// embedding and retrieval.
type Passage struct {
	ID    string
	Text  string
	Seq   int
	Start int
	End   int
}

// ConversationTurn is one (question, answer) pair in a session's history.
type ConversationTurn struct {
	Question string
	Answer   string
}

// Readiness reports whether a prepared site index is available for chat.
type Readiness int

const (
	NotReady Readiness = iota
	Preparing
	Ready
	Failed
)

func (r Readiness) String() string {
	switch r {
	case Preparing:
		return "preparing"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "not_ready"
	}
}

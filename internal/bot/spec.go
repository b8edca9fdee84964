package bot

// Type selects which conversation mode the worker runs.
type Type string

const (
	TypeGeneral Type = "general"
	TypeCoding  Type = "coding"
	TypeQuiz    Type = "quiz"
	TypeScroll  Type = "scroll"
)

// Spec describes what a bot worker should do. It is passed through to the
// worker program unvalidated; only an empty Type is defaulted.
type Spec struct {
	Type    Type   `json:"bot_type"`
	Topic   string `json:"topic"`
	Concept string `json:"concept"`
}

// Normalize fills in defaults. An empty Type becomes TypeGeneral; Topic and
// Concept are never touched.
func (s Spec) Normalize() Spec {
	if s.Type == "" {
		s.Type = TypeGeneral
	}
	return s
}

package course

import "fmt"

// Phase is the lifecycle stage of an exam session.
type Phase int

const (
	// NotStarted is a fresh or reset session; no question is shown.
	NotStarted Phase = iota
	// InProgress means a question is awaiting an answer.
	InProgress
	// Completed means every question was answered and the score is final.
	Completed
)

// String returns the phase name used in views and logs.
func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Answer is the outcome of submitting one option.
type Answer struct {
	WasCorrect bool `json:"was_correct"`
	IsComplete bool `json:"is_complete"`
}

// Progress is the learner's position in the exam. Current is 1-based once
// the exam has started and 0 before.
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// Session is one run through a bank. It references the bank read-only.
type Session struct {
	bank    *Bank
	ordinal int
	score   int
	phase   Phase
}

// NewSession creates a session in the NotStarted phase.
func NewSession(bank *Bank) *Session {
	return &Session{bank: bank}
}

// Start begins the exam at the first question with a zero score.
func (s *Session) Start() error {
	if s.phase != NotStarted {
		return fmt.Errorf("start exam in phase %s: %w", s.phase, ErrIllegalTransition)
	}
	s.ordinal = 0
	s.score = 0
	s.phase = InProgress
	return nil
}

// Submit grades option against the current question, then advances to the
// next question or completes the exam after the last one.
func (s *Session) Submit(option int) (Answer, error) {
	if s.phase != InProgress {
		return Answer{}, fmt.Errorf("submit answer in phase %s: %w", s.phase, ErrIllegalTransition)
	}
	if option < 0 || option >= OptionCount {
		return Answer{}, fmt.Errorf("option %d: %w", option, ErrIndexOutOfRange)
	}
	q, err := s.bank.QuestionAt(s.ordinal)
	if err != nil {
		return Answer{}, err
	}

	ans := Answer{WasCorrect: option == q.Correct}
	if ans.WasCorrect {
		s.score++
	}
	// The ordinal stays on the last question; the phase signals completion.
	if s.ordinal == s.bank.Size()-1 {
		s.phase = Completed
		ans.IsComplete = true
	} else {
		s.ordinal++
	}
	return ans, nil
}

// Reset returns the session to NotStarted with both counters zeroed.
func (s *Session) Reset() {
	s.ordinal = 0
	s.score = 0
	s.phase = NotStarted
}

// PercentScore returns the final score as a percentage rounded half up.
func (s *Session) PercentScore() (int, error) {
	if s.phase != Completed {
		return 0, fmt.Errorf("score in phase %s: %w", s.phase, ErrIllegalTransition)
	}
	return percent(s.score, s.bank.Size()), nil
}

// percent computes round-half-up(correct/total*100) in integers so exact
// halves never depend on float representation.
func percent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return (correct*200 + total) / (2 * total)
}

// Current returns the question awaiting an answer while the exam is in progress.
func (s *Session) Current() (Question, bool) {
	if s.phase != InProgress {
		return Question{}, false
	}
	q, err := s.bank.QuestionAt(s.ordinal)
	if err != nil {
		return Question{}, false
	}
	return q, true
}

// Progress reports the learner's position.
func (s *Session) Progress() Progress {
	p := Progress{Total: s.bank.Size()}
	if s.phase != NotStarted {
		p.Current = s.ordinal + 1
	}
	return p
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Score returns the number of correct answers so far.
func (s *Session) Score() int {
	return s.score
}

// Ordinal returns the zero-based position of the current question.
func (s *Session) Ordinal() int {
	return s.ordinal
}

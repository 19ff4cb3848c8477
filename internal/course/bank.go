package course

import (
	"errors"
	"fmt"
	"strings"
)

// Bank is a fixed, ordered sequence of exam questions. It is never mutated
// after construction and may be shared by any number of sessions.
type Bank struct {
	questions []Question
}

// NewBank validates and copies questions into a bank.
func NewBank(questions []Question) (*Bank, error) {
	if len(questions) == 0 {
		return nil, errors.New("question bank is empty")
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Prompt) == "" {
			return nil, fmt.Errorf("question %d: prompt is empty", i)
		}
		for j, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return nil, fmt.Errorf("question %d: option %d is empty", i, j)
			}
		}
		if q.Correct < 0 || q.Correct >= OptionCount {
			return nil, fmt.Errorf("question %d: correct option %d: %w", i, q.Correct, ErrIndexOutOfRange)
		}
	}
	return &Bank{questions: append([]Question(nil), questions...)}, nil
}

// Size returns the number of questions.
func (b *Bank) Size() int {
	return len(b.questions)
}

// QuestionAt returns the question at ordinal.
func (b *Bank) QuestionAt(ordinal int) (Question, error) {
	if ordinal < 0 || ordinal >= len(b.questions) {
		return Question{}, fmt.Errorf("question %d of %d: %w", ordinal, len(b.questions), ErrIndexOutOfRange)
	}
	return b.questions[ordinal], nil
}

// Questions returns a copy of the bank contents in order.
func (b *Bank) Questions() []Question {
	return append([]Question(nil), b.questions...)
}

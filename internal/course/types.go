// Package course implements the free-course engine: curriculum modules with
// single-open accordion state, fixed question banks, exam sessions and the
// navigator that ties them together for one learner.
package course

import "errors"

var (
	// ErrIllegalTransition is returned when an operation is not valid in the
	// current exam phase.
	ErrIllegalTransition = errors.New("illegal state transition")
	// ErrIndexOutOfRange is returned for module, question or option indexes
	// outside the configured bounds.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrUnknownCourse is returned when selecting a course that is not registered.
	ErrUnknownCourse = errors.New("unknown course")
	// ErrNoActiveCourse is returned by course-scoped operations while no course is selected.
	ErrNoActiveCourse = errors.New("no active course")
	// ErrNoExam is returned when starting the exam of a course without a question bank.
	ErrNoExam = errors.New("course has no exam")
)

// OptionCount is the number of options every question carries.
const OptionCount = 4

// CourseID identifies a top-level learning track.
type CourseID string

// Module is one lesson within a course.
type Module struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	Ordinal int    `json:"ordinal"`
}

// Question is a single multiple-choice exam question.
type Question struct {
	Prompt  string              `json:"prompt"`
	Options [OptionCount]string `json:"options"`
	Correct int                 `json:"-"`
}

// Technology is one entry of a course's technology grid.
type Technology struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
}

// Course bundles a module list with an optional exam bank.
type Course struct {
	ID           CourseID
	Modules      *ModuleIndex
	Bank         *Bank // nil when the course has no exam
	Technologies []Technology
}

// HasExam reports whether the course carries a question bank.
func (c Course) HasExam() bool {
	return c.Bank != nil
}

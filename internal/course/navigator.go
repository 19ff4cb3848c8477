package course

import (
	"errors"
	"fmt"
)

// Registry holds the configured courses in display order.
type Registry struct {
	order []CourseID
	byID  map[CourseID]Course
}

// NewRegistry builds a registry; course IDs must be unique and non-empty.
func NewRegistry(courses ...Course) (*Registry, error) {
	r := &Registry{byID: make(map[CourseID]Course, len(courses))}
	for _, c := range courses {
		if c.ID == "" {
			return nil, errors.New("course id is empty")
		}
		if _, dup := r.byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate course %q", c.ID)
		}
		if c.Modules == nil {
			c.Modules = NewModuleIndex(nil)
		}
		r.order = append(r.order, c.ID)
		r.byID[c.ID] = c
	}
	return r, nil
}

// Get returns a course by ID.
func (r *Registry) Get(id CourseID) (Course, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// All returns every course in registration order.
func (r *Registry) All() []Course {
	out := make([]Course, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Screen is the top-level view the navigator is on.
type Screen string

const (
	ScreenCatalog Screen = "catalog"
	ScreenModules Screen = "modules"
	ScreenExam    Screen = "exam"
	ScreenResult  Screen = "result"
)

// Navigator is one learner's walk through the catalog: which course is
// open, which module is expanded and the state of the exam.
type Navigator struct {
	registry *Registry

	active  *Course
	modules *ModuleIndexState
	session *Session
}

// NewNavigator starts on the course catalog with nothing selected.
func NewNavigator(registry *Registry) *Navigator {
	return &Navigator{registry: registry}
}

// SelectCourse opens a course with every module collapsed and a fresh exam.
func (n *Navigator) SelectCourse(id CourseID) error {
	c, ok := n.registry.Get(id)
	if !ok {
		return fmt.Errorf("select %q: %w", id, ErrUnknownCourse)
	}
	n.active = &c
	n.modules = &ModuleIndexState{}
	n.session = nil
	if c.HasExam() {
		n.session = NewSession(c.Bank)
	}
	return nil
}

// LeaveCourse returns to the catalog and discards all course state.
func (n *Navigator) LeaveCourse() {
	n.active = nil
	n.modules = nil
	n.session = nil
}

// ActiveCourse returns the selected course, if any.
func (n *Navigator) ActiveCourse() (CourseID, bool) {
	if n.active == nil {
		return "", false
	}
	return n.active.ID, true
}

// Course returns the selected course definition.
func (n *Navigator) Course() (Course, bool) {
	if n.active == nil {
		return Course{}, false
	}
	return *n.active, true
}

// ToggleModule expands or collapses a module of the active course.
func (n *Navigator) ToggleModule(ordinal int) error {
	if n.active == nil {
		return ErrNoActiveCourse
	}
	return n.modules.Toggle(n.active.Modules, ordinal)
}

// IsModuleOpen reports whether ordinal is expanded in the active course.
func (n *Navigator) IsModuleOpen(ordinal int) bool {
	if n.active == nil {
		return false
	}
	return n.modules.IsOpen(ordinal)
}

func (n *Navigator) exam() (*Session, error) {
	if n.active == nil {
		return nil, ErrNoActiveCourse
	}
	if n.session == nil {
		return nil, fmt.Errorf("course %q: %w", n.active.ID, ErrNoExam)
	}
	return n.session, nil
}

// StartExam starts the active course's exam. A running exam is left untouched.
func (n *Navigator) StartExam() error {
	s, err := n.exam()
	if err != nil {
		return err
	}
	return s.Start()
}

// SubmitAnswer grades the selected option and moves the exam forward.
func (n *Navigator) SubmitAnswer(option int) (Answer, error) {
	s, err := n.exam()
	if err != nil {
		return Answer{}, err
	}
	return s.Submit(option)
}

// CurrentQuestion returns the question on screen, if an exam is running.
func (n *Navigator) CurrentQuestion() (Question, bool) {
	s, err := n.exam()
	if err != nil {
		return Question{}, false
	}
	return s.Current()
}

// Progress reports exam progress; zero when there is no exam.
func (n *Navigator) Progress() Progress {
	s, err := n.exam()
	if err != nil {
		return Progress{}
	}
	return s.Progress()
}

// Score returns the running count of correct answers.
func (n *Navigator) Score() int {
	s, err := n.exam()
	if err != nil {
		return 0
	}
	return s.Score()
}

// Phase returns the exam phase; NotStarted when there is no exam.
func (n *Navigator) Phase() Phase {
	s, err := n.exam()
	if err != nil {
		return NotStarted
	}
	return s.Phase()
}

// ScorePercent returns the final percentage of a completed exam.
func (n *Navigator) ScorePercent() (int, error) {
	s, err := n.exam()
	if err != nil {
		return 0, err
	}
	return s.PercentScore()
}

// ResetExam zeroes the exam so it can be retried.
func (n *Navigator) ResetExam() error {
	s, err := n.exam()
	if err != nil {
		return err
	}
	s.Reset()
	return nil
}

// Screen derives which view the learner is on.
func (n *Navigator) Screen() Screen {
	if n.active == nil {
		return ScreenCatalog
	}
	switch n.Phase() {
	case InProgress:
		return ScreenExam
	case Completed:
		return ScreenResult
	default:
		return ScreenModules
	}
}

package web

import (
	"github.com/p-n-ai/freecourses/internal/course"
	"github.com/p-n-ai/freecourses/internal/locale"
)

// Request is one learner action received over the websocket. Ordinal and
// Option are pointers so an omitted field is told apart from index 0.
type Request struct {
	Action  string `json:"action"`
	Course  string `json:"course,omitempty"`
	Ordinal *int   `json:"ordinal,omitempty"`
	Option  *int   `json:"option,omitempty"`
	Locale  string `json:"locale,omitempty"`
}

// Actions accepted in Request.Action.
const (
	ActionView         = "view"
	ActionSelectCourse = "select_course"
	ActionLeaveCourse  = "leave_course"
	ActionToggleModule = "toggle_module"
	ActionStartExam    = "start_exam"
	ActionSubmitAnswer = "submit_answer"
	ActionResetExam    = "reset_exam"
	ActionSetLocale    = "set_locale"
)

// View is everything the client needs to render the current screen.
type View struct {
	Screen     course.Screen  `json:"screen"`
	Locale     locale.Locale  `json:"locale"`
	Labels     Labels         `json:"labels"`
	Courses    []CourseCard   `json:"courses,omitempty"`
	Course     *CourseView    `json:"course,omitempty"`
	Exam       *ExamView      `json:"exam,omitempty"`
	LastAnswer *course.Answer `json:"last_answer,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// Labels are the localized interface strings.
type Labels struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Back      string `json:"back"`
	StartExam string `json:"start_exam"`
	Question  string `json:"question"`
	Score     string `json:"score"`
	Retry     string `json:"retry"`
}

// CourseCard is a course entry on the catalog screen.
type CourseCard struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Modules     string `json:"modules"`
	Exam        string `json:"exam"`
	HasExam     bool   `json:"has_exam"`
}

// CourseView is the open course with its accordion.
type CourseView struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	HasExam      bool                `json:"has_exam"`
	Technologies []course.Technology `json:"technologies,omitempty"`
	Modules      []ModuleView        `json:"modules"`
}

// ModuleView is one accordion entry; Body is only set while expanded.
type ModuleView struct {
	Ordinal int    `json:"ordinal"`
	Title   string `json:"title"`
	Body    string `json:"body,omitempty"`
	Open    bool   `json:"open"`
}

// ExamView describes the exam for the exam and result screens.
type ExamView struct {
	Phase    string          `json:"phase"`
	Question *QuestionView   `json:"question,omitempty"`
	Progress course.Progress `json:"progress"`
	Score    int             `json:"score"`
	Percent  *int            `json:"percent,omitempty"`
}

// QuestionView is a question without its answer.
type QuestionView struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

func labelsFrom(b locale.Bundle) Labels {
	return Labels{
		Title:     b.Title,
		Subtitle:  b.Subtitle,
		Back:      b.Back,
		StartExam: b.StartExam,
		Question:  b.Question,
		Score:     b.Score,
		Retry:     b.Retry,
	}
}

func courseCards(b locale.Bundle, registry *course.Registry) []CourseCard {
	var cards []CourseCard
	for _, c := range registry.All() {
		text, _ := b.Course(string(c.ID))
		cards = append(cards, CourseCard{
			ID:          string(c.ID),
			Title:       text.Title,
			Description: text.Description,
			Modules:     text.Modules,
			Exam:        text.Exam,
			HasExam:     c.HasExam(),
		})
	}
	return cards
}

// render builds the view of a navigator in locale l.
func render(nav *course.Navigator, catalog *locale.Catalog, registry *course.Registry, l locale.Locale) View {
	if !l.Valid() {
		l = locale.Primary
	}
	b := catalog.Resolve(l)
	v := View{
		Screen: nav.Screen(),
		Locale: l,
		Labels: labelsFrom(b),
	}

	c, ok := nav.Course()
	if !ok {
		v.Courses = courseCards(b, registry)
		return v
	}

	text, _ := b.Course(string(c.ID))
	cv := &CourseView{
		ID:           string(c.ID),
		Title:        text.Title,
		HasExam:      c.HasExam(),
		Technologies: c.Technologies,
	}
	for _, m := range c.Modules.All() {
		mv := ModuleView{Ordinal: m.Ordinal, Title: m.Title, Open: nav.IsModuleOpen(m.Ordinal)}
		if mv.Open {
			mv.Body = m.Body
		}
		cv.Modules = append(cv.Modules, mv)
	}
	v.Course = cv

	if !c.HasExam() {
		return v
	}
	ev := &ExamView{
		Phase:    nav.Phase().String(),
		Progress: nav.Progress(),
		Score:    nav.Score(),
	}
	if q, ok := nav.CurrentQuestion(); ok {
		ev.Question = &QuestionView{Prompt: q.Prompt, Options: q.Options[:]}
	}
	if pct, err := nav.ScorePercent(); err == nil {
		ev.Percent = &pct
	}
	v.Exam = ev
	return v
}

package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/p-n-ai/freecourses/internal/course"
	"github.com/p-n-ai/freecourses/internal/events"
	"github.com/p-n-ai/freecourses/internal/locale"
)

type staticContent struct {
	catalog  *locale.Catalog
	registry *course.Registry
}

func (c staticContent) Catalog() *locale.Catalog   { return c.catalog }
func (c staticContent) Registry() *course.Registry { return c.registry }
func (c staticContent) Version() string            { return "test-version" }

// newTestContent has a 4-question marketing exam whose answer is always
// option 1, and a web course without an exam.
func newTestContent(t *testing.T) staticContent {
	t.Helper()

	qs := make([]course.Question, 4)
	for i := range qs {
		qs[i] = course.Question{
			Prompt:  fmt.Sprintf("Q%d", i+1),
			Options: [4]string{"a", "b", "c", "d"},
			Correct: 1,
		}
	}
	bank, err := course.NewBank(qs)
	if err != nil {
		t.Fatalf("NewBank() error = %v", err)
	}
	registry, err := course.NewRegistry(
		course.Course{
			ID: "marketing",
			Modules: course.NewModuleIndex([]course.Module{
				{Title: "Intro", Body: "Customer journeys."},
				{Title: "SEO", Body: "Getting found on Google."},
			}),
			Bank: bank,
		},
		course.Course{
			ID:           "web",
			Modules:      course.NewModuleIndex([]course.Module{{Title: "HTML", Body: "Structure."}}),
			Technologies: []course.Technology{{Name: "HTML5", Summary: "The Skeleton of the Web"}},
		},
	)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	bundle := func(title, start string) locale.Bundle {
		return locale.Bundle{
			Title: title, Subtitle: "s", Back: "b", StartExam: start,
			Question: "q", Score: "sc", Retry: "r",
			Courses: map[string]locale.CourseText{
				"marketing": {Title: title + " marketing", Description: "d", Modules: "2", Exam: "4"},
				"web":       {Title: title + " web", Description: "d", Modules: "1", Exam: "-"},
			},
		}
	}
	catalog, err := locale.NewCatalog(map[locale.Locale]locale.Bundle{
		locale.English: bundle("Free Professional Courses", "Start Final Exam"),
		locale.Amharic: bundle("ነጻ የሙያ ኮርሶች", "ፈተና ይጀምሩ"),
		locale.Oromo:   bundle("Koorsiiwwan Ogummaa Bilisaa", "Qormaata Jalqabi"),
	})
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	return staticContent{catalog: catalog, registry: registry}
}

func intp(n int) *int { return &n }

func eventTypes(l *events.MemoryLogger) []string {
	var out []string
	for _, e := range l.Events() {
		out = append(out, e.EventType)
	}
	return out
}

func TestLearner_CatalogView(t *testing.T) {
	lr := newLearner(newTestContent(t), events.NopLogger{}, locale.Amharic)

	v := lr.view()
	if v.Screen != course.ScreenCatalog {
		t.Errorf("Screen = %s, want catalog", v.Screen)
	}
	if v.Labels.StartExam != "ፈተና ይጀምሩ" {
		t.Errorf("Labels.StartExam = %q", v.Labels.StartExam)
	}
	if len(v.Courses) != 2 || !v.Courses[0].HasExam || v.Courses[1].HasExam {
		t.Errorf("Courses = %+v", v.Courses)
	}
	if v.Course != nil || v.Exam != nil {
		t.Error("catalog view should not carry course or exam")
	}
}

func TestLearner_AccordionView(t *testing.T) {
	lr := newLearner(newTestContent(t), events.NopLogger{}, locale.English)

	lr.apply(Request{Action: ActionSelectCourse, Course: "marketing"})
	v := lr.apply(Request{Action: ActionToggleModule, Ordinal: intp(1)})

	if v.Error != "" {
		t.Fatalf("Error = %q", v.Error)
	}
	if v.Course.Modules[0].Open || v.Course.Modules[0].Body != "" {
		t.Errorf("module 0 = %+v, want closed without body", v.Course.Modules[0])
	}
	if !v.Course.Modules[1].Open || v.Course.Modules[1].Body != "Getting found on Google." {
		t.Errorf("module 1 = %+v, want open with body", v.Course.Modules[1])
	}

	v = lr.apply(Request{Action: ActionToggleModule, Ordinal: intp(1)})
	if v.Course.Modules[1].Open {
		t.Error("toggling the open module should close it")
	}
}

func TestLearner_ExamFlow(t *testing.T) {
	logger := events.NewMemoryLogger()
	lr := newLearner(newTestContent(t), logger, locale.English)

	lr.apply(Request{Action: ActionSelectCourse, Course: "marketing"})
	v := lr.apply(Request{Action: ActionStartExam})
	if v.Screen != course.ScreenExam || v.Exam.Question == nil || v.Exam.Question.Prompt != "Q1" {
		t.Fatalf("after start: %+v", v.Exam)
	}

	for i, opt := range []int{1, 1, 0, 1} {
		v = lr.apply(Request{Action: ActionSubmitAnswer, Option: intp(opt)})
		if v.Error != "" {
			t.Fatalf("answer %d: Error = %q", i, v.Error)
		}
		if v.LastAnswer == nil || v.LastAnswer.WasCorrect != (opt == 1) {
			t.Errorf("answer %d: LastAnswer = %+v", i, v.LastAnswer)
		}
	}

	if v.Screen != course.ScreenResult {
		t.Fatalf("Screen = %s, want result", v.Screen)
	}
	if v.Exam.Percent == nil || *v.Exam.Percent != 75 {
		t.Errorf("Percent = %v, want 75", v.Exam.Percent)
	}
	if v.Exam.Score != 3 || v.Exam.Progress.Total != 4 {
		t.Errorf("Score/Total = %d/%d, want 3/4", v.Exam.Score, v.Exam.Progress.Total)
	}

	want := []string{events.CourseSelected, events.ExamStarted, events.ExamCompleted}
	if got := eventTypes(logger); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("events = %v, want %v", got, want)
	}
	completed := logger.Events()[2]
	if completed.Data["percent"] != 75 || completed.ContentVersion != "test-version" {
		t.Errorf("completed event = %+v", completed)
	}

	v = lr.apply(Request{Action: ActionResetExam})
	if v.Screen != course.ScreenModules || v.Exam.Score != 0 {
		t.Errorf("after reset screen=%s score=%d", v.Screen, v.Exam.Score)
	}
}

func TestLearner_LeaveMidExamRecordsAbandon(t *testing.T) {
	logger := events.NewMemoryLogger()
	lr := newLearner(newTestContent(t), logger, locale.English)

	lr.apply(Request{Action: ActionSelectCourse, Course: "marketing"})
	lr.apply(Request{Action: ActionStartExam})
	lr.apply(Request{Action: ActionSubmitAnswer, Option: intp(1)})
	v := lr.apply(Request{Action: ActionLeaveCourse})

	if v.Screen != course.ScreenCatalog {
		t.Errorf("Screen = %s, want catalog", v.Screen)
	}
	evs := logger.Events()
	last := evs[len(evs)-1]
	if last.EventType != events.ExamAbandoned || last.Data["answered"] != 1 || last.CourseID != "marketing" {
		t.Errorf("last event = %+v", last)
	}

	lr.apply(Request{Action: ActionSelectCourse, Course: "marketing"})
	v = lr.apply(Request{Action: ActionStartExam})
	if v.Exam.Score != 0 || v.Exam.Progress.Current != 1 {
		t.Errorf("reopened exam = %+v, want fresh", v.Exam)
	}
}

func TestLearner_RejectedActions(t *testing.T) {
	lr := newLearner(newTestContent(t), events.NopLogger{}, locale.English)

	tests := []struct {
		name string
		req  Request
	}{
		{"unknown action", Request{Action: "teleport"}},
		{"unknown course", Request{Action: ActionSelectCourse, Course: "cooking"}},
		{"toggle without course", Request{Action: ActionToggleModule, Ordinal: intp(0)}},
		{"submit without course", Request{Action: ActionSubmitAnswer, Option: intp(0)}},
		{"toggle missing ordinal", Request{Action: ActionToggleModule}},
		{"submit missing option", Request{Action: ActionSubmitAnswer}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := lr.apply(tt.req)
			if v.Error == "" {
				t.Error("expected Error in view")
			}
			if v.Screen != course.ScreenCatalog {
				t.Errorf("Screen = %s, want catalog", v.Screen)
			}
		})
	}

	v := lr.apply(Request{Action: ActionSelectCourse, Course: "web"})
	if len(v.Course.Technologies) != 1 || v.Course.Technologies[0].Name != "HTML5" {
		t.Errorf("web technologies = %+v", v.Course.Technologies)
	}
	if v := lr.apply(Request{Action: ActionStartExam}); v.Error == "" || v.Exam != nil {
		t.Errorf("web course start: %+v", v)
	}
}

func TestLearner_SetLocaleFallsBack(t *testing.T) {
	lr := newLearner(newTestContent(t), events.NopLogger{}, locale.English)

	v := lr.apply(Request{Action: ActionSetLocale, Locale: "OM"})
	if v.Locale != locale.Oromo || v.Labels.StartExam != "Qormaata Jalqabi" {
		t.Errorf("om view: locale=%s start=%q", v.Locale, v.Labels.StartExam)
	}

	v = lr.apply(Request{Action: ActionSetLocale, Locale: "fr"})
	if v.Locale != locale.Primary || v.Labels.StartExam != "Start Final Exam" {
		t.Errorf("fr view: locale=%s start=%q", v.Locale, v.Labels.StartExam)
	}
}

func TestLearner_MissingIndexIsRejected(t *testing.T) {
	logger := events.NewMemoryLogger()
	lr := newLearner(newTestContent(t), logger, locale.English)
	lr.apply(Request{Action: ActionSelectCourse, Course: "marketing"})

	var toggle Request
	if err := json.Unmarshal([]byte(`{"action":"toggle_module"}`), &toggle); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	v := lr.apply(toggle)
	if v.Error == "" {
		t.Error("toggle_module without ordinal should be rejected")
	}
	if v.Course.Modules[0].Open {
		t.Error("module 0 should stay closed")
	}
	if _, err := lr.dispatch(toggle); !errors.Is(err, errMissingField) {
		t.Errorf("dispatch() error = %v, want errMissingField", err)
	}

	lr.apply(Request{Action: ActionStartExam})
	var submit Request
	if err := json.Unmarshal([]byte(`{"action":"submit_answer"}`), &submit); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	v = lr.apply(submit)
	if v.Error == "" || v.LastAnswer != nil {
		t.Errorf("submit_answer without option: error=%q last=%+v", v.Error, v.LastAnswer)
	}
	if v.Exam.Progress.Current != 1 || v.Exam.Score != 0 {
		t.Errorf("progress = %+v score = %d, want unchanged", v.Exam.Progress, v.Exam.Score)
	}

	// An explicit zero is still a valid choice.
	v = lr.apply(Request{Action: ActionSubmitAnswer, Option: intp(0)})
	if v.Error != "" || v.Exam.Progress.Current != 2 {
		t.Errorf("option 0: error=%q progress=%+v", v.Error, v.Exam.Progress)
	}
}

func TestLearner_UnknownCourseKeepsRunningExam(t *testing.T) {
	logger := events.NewMemoryLogger()
	lr := newLearner(newTestContent(t), logger, locale.English)

	lr.apply(Request{Action: ActionSelectCourse, Course: "marketing"})
	lr.apply(Request{Action: ActionStartExam})
	lr.apply(Request{Action: ActionSubmitAnswer, Option: intp(1)})

	if _, err := lr.dispatch(Request{Action: ActionSelectCourse, Course: "cooking"}); !errors.Is(err, course.ErrUnknownCourse) {
		t.Fatalf("dispatch() error = %v, want ErrUnknownCourse", err)
	}
	v := lr.apply(Request{Action: ActionSelectCourse, Course: "cooking"})
	if v.Error == "" {
		t.Fatal("selecting an unknown course should be rejected")
	}
	if v.Screen != course.ScreenExam || v.Exam.Progress.Current != 2 {
		t.Errorf("screen=%s progress=%+v, want exam still on question 2", v.Screen, v.Exam.Progress)
	}

	want := []string{events.CourseSelected, events.ExamStarted}
	if got := eventTypes(logger); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("events = %v, want %v", got, want)
	}

	v = lr.apply(Request{Action: ActionSubmitAnswer, Option: intp(1)})
	if v.Error != "" || v.Exam.Progress.Current != 3 {
		t.Errorf("exam should continue: error=%q progress=%+v", v.Error, v.Exam.Progress)
	}
}

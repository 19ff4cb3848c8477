package web

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/p-n-ai/freecourses/internal/course"
	"github.com/p-n-ai/freecourses/internal/events"
	"github.com/p-n-ai/freecourses/internal/locale"
)

var (
	errUnknownAction = errors.New("unknown action")
	errMissingField  = errors.New("missing field")
)

// learner is the state of one connected client. It is owned by a single
// connection goroutine and never shared.
type learner struct {
	id      string
	locale  locale.Locale
	nav     *course.Navigator
	content Content
	events  events.Logger
}

func newLearner(content Content, logger events.Logger, l locale.Locale) *learner {
	return &learner{
		id:      uuid.NewString(),
		locale:  l,
		nav:     course.NewNavigator(content.Registry()),
		content: content,
		events:  logger,
	}
}

func (lr *learner) view() View {
	return render(lr.nav, lr.content.Catalog(), lr.content.Registry(), lr.locale)
}

// apply performs one action and returns the resulting view. Rejected
// actions leave the state unchanged and report the reason in View.Error.
func (lr *learner) apply(req Request) View {
	answer, err := lr.dispatch(req)
	v := lr.view()
	v.LastAnswer = answer
	if err != nil {
		slog.Warn("learner action rejected",
			"learner_id", lr.id,
			"action", req.Action,
			"screen", v.Screen,
			"error", err,
		)
		v.Error = err.Error()
	}
	return v
}

func (lr *learner) dispatch(req Request) (*course.Answer, error) {
	switch req.Action {
	case ActionView:
		return nil, nil

	case ActionSetLocale:
		// Unsupported locales are kept; rendering falls back to the primary bundle.
		lr.locale, _ = locale.Parse(req.Locale)
		return nil, nil

	case ActionSelectCourse:
		id := course.CourseID(req.Course)
		if _, ok := lr.content.Registry().Get(id); !ok {
			return nil, fmt.Errorf("select %q: %w", id, course.ErrUnknownCourse)
		}
		lr.abandon()
		if err := lr.nav.SelectCourse(id); err != nil {
			return nil, err
		}
		lr.emit(events.CourseSelected, nil)
		return nil, nil

	case ActionLeaveCourse:
		lr.abandon()
		lr.nav.LeaveCourse()
		return nil, nil

	case ActionToggleModule:
		if req.Ordinal == nil {
			return nil, fmt.Errorf("%s: ordinal: %w", req.Action, errMissingField)
		}
		return nil, lr.nav.ToggleModule(*req.Ordinal)

	case ActionStartExam:
		if err := lr.nav.StartExam(); err != nil {
			return nil, err
		}
		lr.emit(events.ExamStarted, map[string]any{"total": lr.nav.Progress().Total})
		return nil, nil

	case ActionSubmitAnswer:
		if req.Option == nil {
			return nil, fmt.Errorf("%s: option: %w", req.Action, errMissingField)
		}
		ans, err := lr.nav.SubmitAnswer(*req.Option)
		if err != nil {
			return nil, err
		}
		if ans.IsComplete {
			pct, _ := lr.nav.ScorePercent()
			lr.emit(events.ExamCompleted, map[string]any{
				"correct": lr.nav.Score(),
				"total":   lr.nav.Progress().Total,
				"percent": pct,
			})
		}
		return &ans, nil

	case ActionResetExam:
		lr.abandon()
		return nil, lr.nav.ResetExam()

	default:
		return nil, fmt.Errorf("%q: %w", req.Action, errUnknownAction)
	}
}

// abandon records an exam that is being dropped while in progress.
func (lr *learner) abandon() {
	if lr.nav.Phase() != course.InProgress {
		return
	}
	p := lr.nav.Progress()
	lr.emit(events.ExamAbandoned, map[string]any{
		"answered": p.Current - 1,
		"total":    p.Total,
		"score":    lr.nav.Score(),
	})
}

func (lr *learner) emit(eventType string, data map[string]any) {
	courseID, _ := lr.nav.ActiveCourse()
	err := lr.events.LogEvent(events.Event{
		LearnerID:      lr.id,
		CourseID:       string(courseID),
		EventType:      eventType,
		ContentVersion: lr.content.Version(),
		Data:           data,
	})
	if err != nil {
		slog.Warn("failed to log event", "type", eventType, "learner_id", lr.id, "error", err)
	}
}

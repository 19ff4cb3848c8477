// Package events records learner activity as write-only telemetry. Nothing
// in the engine reads events back.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/p-n-ai/freecourses/internal/platform/cache"
)

const writeTimeout = 5 * time.Second

// Event types emitted by the course server.
const (
	CourseSelected = "course_selected"
	ExamStarted    = "exam_started"
	ExamCompleted  = "exam_completed"
	ExamAbandoned  = "exam_abandoned"
)

// Event is one learner action.
type Event struct {
	LearnerID      string
	CourseID       string
	EventType      string
	ContentVersion string
	Data           map[string]any
	CreatedAt      time.Time
}

func (e *Event) normalize() error {
	if e.EventType == "" {
		return fmt.Errorf("event_type is required")
	}
	if e.LearnerID == "" {
		return fmt.Errorf("learner_id is required")
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	if e.Data == nil {
		e.Data = map[string]any{}
	}
	return nil
}

// Logger defines event logging behavior.
type Logger interface {
	LogEvent(event Event) error
}

// NopLogger ignores all events.
type NopLogger struct{}

func (NopLogger) LogEvent(Event) error {
	return nil
}

// MemoryLogger stores events in memory for tests.
type MemoryLogger struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{
		events: []Event{},
	}
}

func (l *MemoryLogger) LogEvent(event Event) error {
	if err := event.normalize(); err != nil {
		return err
	}

	l.mu.Lock()
	l.events = append(l.events, event)
	l.mu.Unlock()

	return nil
}

func (l *MemoryLogger) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Event{}, l.events...)
}

// PostgresLogger inserts events into the course_events table.
type PostgresLogger struct {
	pool *pgxpool.Pool
}

func NewPostgresLogger(pool *pgxpool.Pool) *PostgresLogger {
	return &PostgresLogger{pool: pool}
}

func (l *PostgresLogger) LogEvent(event Event) error {
	if l == nil || l.pool == nil {
		return fmt.Errorf("event logger pool is nil")
	}
	if err := event.normalize(); err != nil {
		return err
	}

	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	_, err = l.pool.Exec(ctx,
		`INSERT INTO course_events (learner_id, course_id, event_type, content_version, data, created_at)
		 VALUES ($1, $2, $3, $4, $5::jsonb, $6)`,
		event.LearnerID,
		event.CourseID,
		event.EventType,
		event.ContentVersion,
		string(data),
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	slog.Debug("event logged",
		"type", event.EventType,
		"learner_id", event.LearnerID,
		"course_id", event.CourseID,
	)
	return nil
}

// RedisLogger appends events to a capped Redis/Dragonfly stream.
type RedisLogger struct {
	cache  *cache.Cache
	stream string
	maxLen int64
}

func NewRedisLogger(c *cache.Cache, stream string, maxLen int64) *RedisLogger {
	return &RedisLogger{cache: c, stream: stream, maxLen: maxLen}
}

func (l *RedisLogger) LogEvent(event Event) error {
	if l == nil || l.cache == nil {
		return fmt.Errorf("event logger client is nil")
	}
	if err := event.normalize(); err != nil {
		return err
	}

	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	_, err = l.cache.Append(ctx, l.stream, l.maxLen, map[string]any{
		"learner_id":      event.LearnerID,
		"course_id":       event.CourseID,
		"event_type":      event.EventType,
		"content_version": event.ContentVersion,
		"data":            string(data),
		"created_at":      event.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	return err
}

// MultiLogger fans an event out to every configured sink.
type MultiLogger []Logger

func (m MultiLogger) LogEvent(event Event) error {
	var errs []error
	for _, l := range m {
		if err := l.LogEvent(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

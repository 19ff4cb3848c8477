// Package web serves the course catalog and the live course websocket.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/p-n-ai/freecourses/internal/course"
	"github.com/p-n-ai/freecourses/internal/events"
	"github.com/p-n-ai/freecourses/internal/locale"
)

// Content is the loaded, immutable course content.
type Content interface {
	Catalog() *locale.Catalog
	Registry() *course.Registry
	Version() string
}

// ServerConfig holds dependencies for the web server.
type ServerConfig struct {
	Content        Content
	Events         events.Logger
	OriginPatterns []string
}

// Server handles catalog and websocket requests.
type Server struct {
	content        Content
	events         events.Logger
	originPatterns []string
}

// NewServer creates a web server. A nil event logger discards events.
func NewServer(cfg ServerConfig) *Server {
	logger := cfg.Events
	if logger == nil {
		logger = events.NopLogger{}
	}
	return &Server{
		content:        cfg.Content,
		events:         logger,
		originPatterns: cfg.OriginPatterns,
	}
}

// Register adds the server's routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	mux.HandleFunc("GET /ws", s.handleWS)
}

// requestLocale prefers an explicit ?lang= and otherwise negotiates from
// Accept-Language.
func requestLocale(r *http.Request) locale.Locale {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		l, _ := locale.Parse(lang)
		return l
	}
	return locale.Match(r.Header.Get("Accept-Language"))
}

type catalogResponse struct {
	Version string `json:"version"`
	View
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	nav := course.NewNavigator(s.content.Registry())
	resp := catalogResponse{
		Version: s.content.Version(),
		View:    render(nav, s.content.Catalog(), s.content.Registry(), requestLocale(r)),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to write catalog", "error", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.originPatterns,
	})
	if err != nil {
		slog.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	lr := newLearner(s.content, s.events, requestLocale(r))
	slog.Info("learner connected", "learner_id", lr.id, "locale", lr.locale)

	// The exam lives only as long as the connection.
	defer lr.abandon()

	if err := wsjson.Write(ctx, conn, lr.view()); err != nil {
		slog.Warn("websocket write failed", "learner_id", lr.id, "error", err)
		return
	}

	for {
		var req Request
		if err := wsjson.Read(ctx, conn, &req); err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				slog.Info("learner disconnected", "learner_id", lr.id)
			default:
				slog.Warn("websocket read failed", "learner_id", lr.id, "error", err)
			}
			return
		}

		if err := wsjson.Write(ctx, conn, lr.apply(req)); err != nil {
			slog.Warn("websocket write failed", "learner_id", lr.id, "error", err)
			return
		}
	}
}

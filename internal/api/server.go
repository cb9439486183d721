package api

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"expvar"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ajitpratap0/safemarkup/internal/metrics"
	"github.com/ajitpratap0/safemarkup/pkg/entity"
	"github.com/ajitpratap0/safemarkup/pkg/markup"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Server is an HTTP API server that exposes escaping operations.
type Server struct {
	escaper   *markup.Escaper
	strict    bool
	logger    *slog.Logger
	authToken string // empty = no auth required
	maxBody   int64
}

// NewServer creates a new Server. strict selects the default escape mode
// for requests that do not set "silent".
func NewServer(esc *markup.Escaper, strict bool, logger *slog.Logger, authToken string, maxBody int64) *Server {
	return &Server{
		escaper:   esc,
		strict:    strict,
		logger:    logger,
		authToken: authToken,
		maxBody:   maxBody,
	}
}

// Handler returns an http.Handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check, no auth required.
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	mux.HandleFunc("POST /v1/escape", s.auth(s.handleEscape))
	mux.HandleFunc("POST /v1/unescape", s.auth(s.handleUnescape))
	mux.HandleFunc("POST /v1/join", s.auth(s.handleJoin))
	mux.HandleFunc("POST /v1/format", s.auth(s.handleFormat))
	mux.HandleFunc("GET /v1/entities/{name}", s.auth(s.handleEntity))
	mux.HandleFunc("GET /debug/vars", s.auth(expvar.Handler().ServeHTTP))

	return s.requestID(mux)
}

// --- middleware ---

// auth wraps a handler with Bearer token authentication when authToken is set.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.authToken == "" {
			next(w, r)
			return
		}
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) != 1 {
			s.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

// requestID propagates or assigns X-Request-ID and logs the request.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		s.logger.Debug("api request", "method", r.Method, "path", r.URL.Path, "request_id", id)
		next.ServeHTTP(w, r)
	})
}

// --- request decoding ---

// payload is the decoded "input" field: text, bytes, or absent.
type payload struct {
	text   *string
	binary []byte
}

func (p payload) absent() bool { return p.text == nil && p.binary == nil }

// decodeInput accepts a JSON string (text) or {"base64": "..."} (bytes).
// A missing or null field is absent. Anything else is ErrInvalidInputType.
func decodeInput(raw json.RawMessage) (payload, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return payload{}, nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return payload{}, fmt.Errorf("%w: %v", markup.ErrInvalidInputType, err)
		}
		return payload{text: &s}, nil
	case '{':
		var obj struct {
			Base64 *string `json:"base64"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil || obj.Base64 == nil {
			return payload{}, fmt.Errorf("%w: object input needs a base64 field", markup.ErrInvalidInputType)
		}
		b, err := base64.StdEncoding.DecodeString(*obj.Base64)
		if err != nil {
			return payload{}, fmt.Errorf("%w: %v", markup.ErrInvalidInputType, err)
		}
		if b == nil {
			b = []byte{}
		}
		return payload{binary: b}, nil
	default:
		return payload{}, fmt.Errorf("%w: expected a string or {\"base64\": ...}", markup.ErrInvalidInputType)
	}
}

// --- handlers ---

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// escapeRequest is the body accepted by POST /v1/escape and /v1/unescape.
type escapeRequest struct {
	Input  json.RawMessage `json:"input"`
	Silent *bool           `json:"silent,omitempty"`
}

// resultResponse carries a text or binary result.
type resultResponse struct {
	Result       *string `json:"result,omitempty"`
	ResultBase64 *string `json:"result_base64,omitempty"`
}

// controlCharResponse is returned with 422 when strict escaping fails.
type controlCharResponse struct {
	Error     string `json:"error"`
	Codepoint int32  `json:"codepoint"`
	Offset    int    `json:"offset"`
}

func textResult(s string) resultResponse { return resultResponse{Result: &s} }

func binaryResult(b []byte) resultResponse {
	enc := base64.StdEncoding.EncodeToString(b)
	return resultResponse{ResultBase64: &enc}
}

func (s *Server) handleEscape(w http.ResponseWriter, r *http.Request) {
	var req escapeRequest
	if !s.decode(w, r, &req) {
		return
	}
	in, err := decodeInput(req.Input)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	silent := !s.strict
	if req.Silent != nil {
		silent = *req.Silent
	}

	metrics.Inc(metrics.EscapeTotal)

	switch {
	case in.absent() && silent:
		s.writeJSON(w, http.StatusOK, textResult(""))
	case in.absent():
		s.writeError(w, http.StatusBadRequest, "input is required")
	case in.binary != nil && silent:
		s.writeJSON(w, http.StatusOK, binaryResult(s.escaper.BytesSilent(in.binary)))
	case in.binary != nil:
		out, escErr := s.escaper.Bytes(in.binary)
		if escErr != nil {
			s.writeEscapeError(w, escErr)
			return
		}
		s.writeJSON(w, http.StatusOK, binaryResult(out))
	case silent:
		s.writeJSON(w, http.StatusOK, textResult(s.escaper.Silent(in.text)))
	default:
		out, escErr := s.escaper.String(*in.text)
		if escErr != nil {
			s.writeEscapeError(w, escErr)
			return
		}
		s.writeJSON(w, http.StatusOK, textResult(out))
	}
}

func (s *Server) handleUnescape(w http.ResponseWriter, r *http.Request) {
	var req escapeRequest
	if !s.decode(w, r, &req) {
		return
	}
	in, err := decodeInput(req.Input)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	metrics.Inc(metrics.UnescapeTotal)

	switch {
	case in.absent():
		s.writeError(w, http.StatusBadRequest, "input is required")
	case in.binary != nil:
		s.writeJSON(w, http.StatusOK, binaryResult(markup.UnescapeBytes(in.binary)))
	default:
		s.writeJSON(w, http.StatusOK, textResult(markup.UnescapeString(*in.text)))
	}
}

// joinRequest is the body accepted by POST /v1/join. Separator is trusted
// markup; items are plain text.
type joinRequest struct {
	Separator string   `json:"separator"`
	Items     []string `json:"items"`
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if !s.decode(w, r, &req) {
		return
	}
	metrics.Inc(metrics.ComposeTotal)
	joined := markup.JoinWith(s.escaper, markup.Trust(req.Separator), req.Items)
	s.writeJSON(w, http.StatusOK, textResult(joined.String()))
}

// formatRequest is the body accepted by POST /v1/format. Template is trusted
// markup. With vars set the template is expanded ($name / ${name});
// otherwise args fill its printf verbs.
type formatRequest struct {
	Template string         `json:"template"`
	Args     []any          `json:"args"`
	Vars     map[string]any `json:"vars"`
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Template == "" {
		s.writeError(w, http.StatusBadRequest, "template is required")
		return
	}
	metrics.Inc(metrics.ComposeTotal)

	tmpl := markup.Trust(req.Template)
	var out markup.Safe
	if len(req.Vars) > 0 {
		out = s.escaper.Expand(tmpl, req.Vars)
	} else {
		out = s.escaper.Format(tmpl, req.Args...)
	}
	s.writeJSON(w, http.StatusOK, textResult(out.String()))
}

// entityResponse is returned by GET /v1/entities/{name}.
type entityResponse struct {
	Name      string `json:"name"`
	Codepoint int32  `json:"codepoint"`
	Char      string `json:"char"`
}

func (s *Server) handleEntity(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	ref, ok := entity.Get(name)
	if !ok {
		s.writeError(w, http.StatusNotFound, "entity not found")
		return
	}
	s.writeJSON(w, http.StatusOK, entityResponse{
		Name:      ref.Name,
		Codepoint: ref.Codepoint,
		Char:      string(ref.Codepoint),
	})
}

// --- helpers ---

// decode reads a size-limited JSON body into v, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *Server) writeEscapeError(w http.ResponseWriter, err error) {
	metrics.Inc(metrics.EscapeRejected)
	var cc *markup.ControlCharacterError
	if errors.As(err, &cc) {
		s.writeJSON(w, http.StatusUnprocessableEntity, controlCharResponse{
			Error:     cc.Error(),
			Codepoint: cc.Codepoint,
			Offset:    cc.Offset,
		})
		return
	}
	s.logger.Error("escape failed", "error", err)
	s.writeError(w, http.StatusInternalServerError, "escape failed")
}

// writeJSON encodes v as JSON and writes it to w with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	// Results are markup already; keep them readable on the wire.
	enc.SetEscapeHTML(false)
	if encErr := enc.Encode(v); encErr != nil {
		s.logger.Error("failed to encode response", "error", encErr)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// Shutdown gracefully shuts down an http.Server with the given timeout.
// This is a convenience helper used by the serve command.
func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

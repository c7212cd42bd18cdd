// Package sandbox emulates the comments and metadata template endpoints of
// the API on top of the SQLite store. It backs end-to-end tests and the
// "boxctl sandbox serve" command.
package sandbox

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/boxsdk/internal/logging"
	"github.com/mesh-intelligence/boxsdk/internal/sqlite"
	"github.com/mesh-intelligence/boxsdk/pkg/types"
)

// APIPrefix is the path prefix the emulator serves under.
const APIPrefix = "/2.0"

// maxBody caps request bodies.
const maxBody = 1 << 20

// Error codes in API error responses.
const (
	codeBadRequest   = "bad_request"
	codeNotFound     = "not_found"
	codeConflict     = "conflict"
	codeUnauthorized = "unauthorized"
	codeInternal     = "internal_server_error"
)

// Options configures the emulator.
type Options struct {
	// Token, when set, must be presented as a bearer token.
	Token string
	// Logger receives one entry per request. Nil disables logging.
	Logger logrus.FieldLogger
}

// Server serves the emulated API.
type Server struct {
	store *sqlite.Store
	token string
	log   logrus.FieldLogger
	mux   *http.ServeMux
}

// New returns a Server backed by an open store.
func New(store *sqlite.Store, opts Options) *Server {
	s := &Server{
		store: store,
		token: opts.Token,
		log:   opts.Logger,
		mux:   http.NewServeMux(),
	}
	if s.log == nil {
		s.log = logging.Discard()
	}

	s.mux.HandleFunc("POST "+APIPrefix+"/comments", s.createComment)
	s.mux.HandleFunc("GET "+APIPrefix+"/comments/{id}", s.getComment)
	s.mux.HandleFunc("PUT "+APIPrefix+"/comments/{id}", s.updateComment)
	s.mux.HandleFunc("DELETE "+APIPrefix+"/comments/{id}", s.deleteComment)

	s.mux.HandleFunc("POST "+APIPrefix+"/metadata_templates/schema", s.createTemplate)
	s.mux.HandleFunc("GET "+APIPrefix+"/metadata_templates/{scope}/{key}/schema", s.getTemplate)
	s.mux.HandleFunc("PUT "+APIPrefix+"/metadata_templates/{scope}/{key}/schema", s.updateTemplate)
	s.mux.HandleFunc("DELETE "+APIPrefix+"/metadata_templates/{scope}/{key}/schema", s.deleteTemplate)
	return s
}

// ServeHTTP checks authentication, dispatches, and logs the request.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	requestID := sqlite.NewID()
	rec.Header().Set("Box-Request-Id", requestID)

	if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
		writeError(rec, requestID, http.StatusUnauthorized, codeUnauthorized, "missing or invalid bearer token")
	} else {
		s.mux.ServeHTTP(rec, r)
	}

	s.log.WithFields(logrus.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"status":     rec.status,
		"elapsed":    time.Since(start).String(),
		"request_id": requestID,
	}).Info("sandbox request")
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, requestID string, status int, code, msg string) {
	writeJSON(w, status, types.APIError{
		Type:       "error",
		StatusCode: status,
		Code:       code,
		Message:    msg,
		RequestID:  requestID,
	})
}

// fail maps an error to an API error response.
func fail(w http.ResponseWriter, err error) {
	requestID := w.Header().Get("Box-Request-Id")
	switch {
	case errors.Is(err, sqlite.ErrNotFound):
		writeError(w, requestID, http.StatusNotFound, codeNotFound, "Not Found")
	case errors.Is(err, sqlite.ErrDuplicateKey):
		writeError(w, requestID, http.StatusConflict, codeConflict, err.Error())
	case isBadRequest(err):
		writeError(w, requestID, http.StatusBadRequest, codeBadRequest, err.Error())
	default:
		writeError(w, requestID, http.StatusInternalServerError, codeInternal, err.Error())
	}
}

// badRequestError marks client input errors.
type badRequestError struct{ msg string }

func (e badRequestError) Error() string { return e.msg }

func badRequest(msg string) error { return badRequestError{msg: msg} }

func isBadRequest(err error) bool {
	var br badRequestError
	if errors.As(err, &br) {
		return true
	}
	for _, target := range []error{
		ErrFieldNotFound, ErrOptionNotFound, ErrDuplicateField, ErrDuplicateOption,
		ErrNotEnumField, ErrInvalidFieldType, ErrInvalidReorder, ErrEmptyKey,
		types.ErrUnknownOp, types.ErrMalformedOp,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func decodeBody(r *http.Request, v any) error {
	b, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return badRequest("invalid JSON body: " + err.Error())
	}
	return nil
}

// selectFields trims a response to the attributes named in the "fields"
// query parameter. type and id are always kept.
func selectFields(r *http.Request, v any) (any, error) {
	fields := r.URL.Query().Get("fields")
	if fields == "" {
		return v, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var full map[string]any
	if err := json.Unmarshal(b, &full); err != nil {
		return nil, err
	}
	out := map[string]any{"type": full["type"], "id": full["id"]}
	for _, f := range strings.Split(fields, ",") {
		f = strings.TrimSpace(f)
		if val, ok := full[f]; ok {
			out[f] = val
		}
	}
	return out, nil
}

// deriveTemplateKey builds a camelCase key from a display name, the way the
// API does when templateKey is omitted.
func deriveTemplateKey(displayName string) string {
	words := strings.FieldsFunc(displayName, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		if i > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		b.WriteString(string(runes))
	}
	return b.String()
}

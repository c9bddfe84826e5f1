// Package middleware casts JSON request bodies with an rtype type at the
// net/http boundary.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/reoring/rtype"
	"github.com/reoring/rtype/source"
)

// ctxKeyValue is the context key for the cast body.
type ctxKeyValue struct{}

// ContextWithValue attaches a cast value to the context.
func ContextWithValue(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, ctxKeyValue{}, boxed{v})
}

// ValueFromContext retrieves the value stored by Cast. The boolean reports
// whether a value was stored (it may itself be nil).
func ValueFromContext(ctx context.Context) (any, bool) {
	b, ok := ctx.Value(ctxKeyValue{}).(boxed)
	return b.v, ok
}

// boxed keeps a nil cast result distinguishable from an absent one.
type boxed struct{ v any }

// Options configures Cast.
type Options struct {
	// Source bounds body decoding. The zero value means DefaultSource.
	Source *source.Options
	// Logger receives one record per rejected request. Nil means slog.Default.
	Logger *slog.Logger
	// Level is the level of rejection records.
	Level slog.Level
}

// DefaultSource returns recommended decoding limits for HTTP JSON bodies:
// duplicate keys are errors and bodies are capped at 1 MiB.
func DefaultSource() source.Options {
	opt := source.DefaultOptions()
	opt.MaxBytes = 1 << 20
	return opt
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues rtype.Issues) map[string]any {
	if issues == nil {
		issues = rtype.Issues{}
	}
	return map[string]any{"issues": issues}
}

// Cast decodes the request body as JSON, casts it with t and stores the
// result in the request context for next. Malformed bodies and values the
// type rejects answer 400 with an {"issues":[...]} payload; any other cast
// failure (not_implemented, a Class error) answers 500 with the same shape.
func Cast(t rtype.Type, opts Options) func(http.Handler) http.Handler {
	src := DefaultSource()
	if opts.Source != nil {
		src = *opts.Source
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			doc, err := source.JSONReader(r.Body, src)
			status := http.StatusBadRequest
			if err == nil {
				var v any
				if v, err = t.Cast(doc); err == nil {
					next.ServeHTTP(w, r.WithContext(ContextWithValue(r.Context(), v)))
					return
				}
				if !rtype.IsRecoverable(err) {
					status = http.StatusInternalServerError
				}
			}
			iss := issuesOf(err)
			level := opts.Level
			if status == http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Log(r.Context(), level, "request rejected",
				"method", r.Method,
				"path", r.URL.Path,
				"type", t.String(),
				"status", status,
				"issues", iss.Error(),
			)
			writeJSON(w, status, ErrorPayload(iss))
		})
	}
}

func issuesOf(err error) rtype.Issues {
	if iss, ok := rtype.AsIssues(err); ok {
		return iss
	}
	var se *source.Error
	if errors.As(err, &se) {
		return rtype.Issues{{Path: se.Path, Code: se.Code, Message: se.Message}}
	}
	return rtype.Issues{rtype.IssueFromError(err)}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}

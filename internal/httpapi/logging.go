package httpapi

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog is an optional structured logger. If unset, requests are not logged.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// requestLogger logs one line per request with method, route, status, and
// duration. Logging level defaults from AGENTD_LOG_LEVEL and can be raised
// per request via the X-Log-Level header.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if zlog == nil || requestLogLevel(r) < levelInfo {
			next.ServeHTTP(w, r)
			return
		}
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sr, r)
		z := zlog.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sr.status).
			Dur("dur", time.Since(start))
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		z.Msg("request")
	})
}

type logLevel int

const (
	levelOff logLevel = iota
	levelError
	levelInfo
	levelDebug
)

func parseLevel(s string) logLevel {
	switch s {
	case "off":
		return levelOff
	case "error":
		return levelError
	case "debug":
		return levelDebug
	default:
		return levelInfo
	}
}

// global default, read once
var defaultLogLevel = parseLevel(os.Getenv("AGENTD_LOG_LEVEL"))

func requestLogLevel(r *http.Request) logLevel {
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}

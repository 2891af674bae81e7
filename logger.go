package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

type RoomIPLogger struct {
	zerolog zerolog.Logger
}

func GetRoomIPLogger(ip string, room string) RoomIPLogger {
	return RoomIPLogger{log.With().Str("ip", ip).Str("room", room).Logger()}
}

func (l RoomIPLogger) StoredCode(code string) {
	l.zerolog.Info().Str("code", code).Msg("Stored code")
}

func (l RoomIPLogger) RejectedCode(code string, err error) {
	l.zerolog.Warn().Err(err).Str("code", code).Msg("Rejected code")
}

func (l RoomIPLogger) Resolved(d Decision) {
	l.zerolog.Debug().Bool("active", d.Active).Str("target", d.Target).Msg("Resolved room")
}

func LogStartedServer(port string, codeTTL time.Duration) {
	log.Info().Dur("code-ttl", codeTTL).Msgf("Starting server on port %v", port)
}

func LogStoppedServer(entries int) {
	log.Info().Int("entries", entries).Msg("Stopped server")
}

func LogServerError(err error) {
	log.Error().Err(err).Msg("Server error")
}

// RequestLogger writes one event per request once the handler has returned.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("ip", r.RemoteAddr).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("Request")
		}()
		next.ServeHTTP(ww, r)
	})
}

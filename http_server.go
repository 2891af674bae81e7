package main

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"meet-url/code"
	"meet-url/rooms"
)

var ErrMissingHost = errors.New("missing host header in request")

type HTTPHandler struct {
	Rooms  *rooms.Registry
	Meet   *Meet
	Config *Config
}

func NewHTTPServer(registry *rooms.Registry, cfg *Config) http.Handler {
	httpHandler := HTTPHandler{
		Rooms:  registry,
		Meet:   NewMeet(registry, cfg.MeetURL, cfg.LandingURL),
		Config: cfg,
	}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST"},
		AllowCredentials: false,
	}))
	r.Use(middleware.Heartbeat("/-/ping"))
	r.Use(httpHandler.postProcess)

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)
	r.Get("/", httpHandler.redirectToInfo())
	r.Get("/{room}", httpHandler.getRoom())
	r.Get("/{room}/code", httpHandler.getCode())
	r.Get("/{room}/script", httpHandler.getScript())
	r.Group(func(r chi.Router) {
		if cfg.WriteRateLimit > 0 {
			r.Use(httprate.Limit(cfg.WriteRateLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		}
		r.Post("/{room}/code/{code}", httpHandler.postCode())
	})
	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusNotFound, "not found")
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

// urlParam returns the unescaped value of a path parameter. chi matches
// against RawPath when the request has one.
func urlParam(r *http.Request, key string) string {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value
	}
	if v, err := url.PathUnescape(value); err == nil {
		return v
	}
	return value
}

func (h HTTPHandler) redirectToInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, h.Config.InfoURL, http.StatusPermanentRedirect)
	}
}

func (h HTTPHandler) getRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room := urlParam(r, "room")
		decision := h.Meet.Resolve(room)
		GetRoomIPLogger(r.RemoteAddr, room).Resolved(decision)
		if decision.Active {
			http.Redirect(w, r, decision.Target, http.StatusFound)
			return
		}
		http.Redirect(w, r, decision.Target, http.StatusSeeOther)
	}
}

func (h HTTPHandler) getCode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room := urlParam(r, "room")
		decision := h.Meet.Resolve(room)
		GetRoomIPLogger(r.RemoteAddr, room).Resolved(decision)
		if !decision.Active {
			notFound(w, r)
			return
		}
		writeText(w, http.StatusOK, decision.Code)
	}
}

func (h HTTPHandler) postCode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room := urlParam(r, "room")
		candidate := urlParam(r, "code")
		logger := GetRoomIPLogger(r.RemoteAddr, room)
		if err := code.Validate(candidate); err != nil {
			logger.RejectedCode(candidate, err)
			writeText(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Rooms.Store(room, candidate)
		logger.StoredCode(candidate)
		writeText(w, http.StatusOK, candidate)
	}
}

func (h HTTPHandler) getScript() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Host == "" {
			writeText(w, http.StatusBadRequest, ErrMissingHost.Error())
			return
		}
		writeText(w, http.StatusOK, BootstrapScript(urlParam(r, "room"), r.Host, h.Config.MeetURL))
	}
}

// postProcessWriter edits headers just before they are sent: the allowed
// origin on 200 and 404 responses, and authuser on meeting redirects.
type postProcessWriter struct {
	http.ResponseWriter
	handler     HTTPHandler
	authUser    string
	wroteHeader bool
}

func (w *postProcessWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	header := w.Header()
	if status == http.StatusOK || status == http.StatusNotFound {
		header.Set("Access-Control-Allow-Origin", w.handler.Config.AllowedOrigin)
	}
	if location := header.Get("Location"); w.authUser != "" && location != "" && w.handler.Meet.IsMeetingURL(location) {
		header.Set("Location", withAuthUser(location, w.authUser))
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *postProcessWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func withAuthUser(location string, user string) string {
	u, err := url.Parse(location)
	if err != nil {
		return location
	}
	q := u.Query()
	q.Set("authuser", user)
	u.RawQuery = q.Encode()
	return u.String()
}

func (h HTTPHandler) postProcess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pw := &postProcessWriter{ResponseWriter: w, handler: h}
		if u, err := strconv.ParseUint(r.URL.Query().Get("u"), 10, 8); err == nil {
			pw.authUser = strconv.FormatUint(u, 10)
		}
		next.ServeHTTP(pw, r)
	})
}

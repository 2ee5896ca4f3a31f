package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cureconnect-api/internal/logging"
	"cureconnect-api/internal/metrics"
	"cureconnect-api/internal/middleware"
	"cureconnect-api/internal/schedule"
	"cureconnect-api/internal/store"
)

type Handler struct {
	store   *store.Store
	engine  *schedule.Engine
	secret  string
	logger  *logging.Logger
	metrics *metrics.BookingMetrics
}

func New(st *store.Store, engine *schedule.Engine, secret string, logger *logging.Logger, m *metrics.BookingMetrics) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: st, engine: engine, secret: secret, logger: logger, metrics: m}
}

// Routes builds the /api surface. The rate limiter guards only the
// credential endpoints.
func (h *Handler) Routes(rl *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Route("/auth", func(r chi.Router) {
		r.With(rl.Limit).Post("/register", h.register)
		r.With(rl.Limit).Post("/login", h.login)
		r.Post("/refresh", h.refresh)
		r.With(middleware.RequireAuth(h.secret)).Post("/logout", h.logout)
	})

	r.With(middleware.RequireAuth(h.secret)).Get("/users/me", h.me)

	r.Route("/doctors", func(r chi.Router) {
		r.Get("/", h.listDoctors)
		r.Post("/", h.createDoctor)
		r.Get("/{id}", h.getDoctor)
		r.Put("/{id}", h.updateDoctor)
		r.Delete("/{id}", h.deleteDoctor)
		r.Get("/{id}/available", h.availableSlots)
	})

	r.Route("/appointments", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(h.secret))
		r.Get("/", h.listAppointments)
		r.Post("/", h.createAppointment)
		r.Get("/{id}", h.getAppointment)
		r.Put("/{id}", h.updateAppointment)
		r.Delete("/{id}", h.cancelAppointment)
		r.Get("/{id}/download", h.downloadAppointment)
	})

	r.Post("/seed", h.seed)

	return r
}

func (h *Handler) caller(r *http.Request) schedule.Caller {
	uid, ok := middleware.UserID(r.Context())
	return schedule.Caller{UserID: uid, Authenticated: ok}
}

func (h *Handler) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			h.logger.Error("encode response", "error", err)
		}
	}
}

func (h *Handler) respondMessage(w http.ResponseWriter, status int, msg string) {
	h.respond(w, status, map[string]string{"message": msg})
}

// respondEngineError maps the engine's failure kinds onto HTTP statuses.
// Anything outside the taxonomy is an internal error and gets logged.
func (h *Handler) respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, schedule.ErrInvalidInput):
		h.respondMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, schedule.ErrNotFound):
		h.respondMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, schedule.ErrOutOfRange):
		h.respondMessage(w, http.StatusUnprocessableEntity, "Time outside doctor working hours")
	case errors.Is(err, schedule.ErrConflict):
		h.respondMessage(w, http.StatusConflict, "Slot already booked")
	case errors.Is(err, schedule.ErrForbidden):
		h.respondMessage(w, http.StatusForbidden, "Forbidden")
	default:
		h.logger.Error("internal error", "error", err)
		h.respondMessage(w, http.StatusInternalServerError, "internal error")
	}
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cureconnect-api/internal/ics"
	"cureconnect-api/internal/model"
	"cureconnect-api/internal/schedule"
	"cureconnect-api/internal/store"
)

type createAppointmentRequest struct {
	DoctorID     string `json:"doctorId"`
	UserID       string `json:"userId"`
	PatientName  string `json:"patientName"`
	PatientEmail string `json:"patientEmail"`
	PatientPhone string `json:"patientPhone"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Notes        string `json:"notes"`
}

type createAppointmentResponse struct {
	Message     string             `json:"message"`
	Appointment *model.Appointment `json:"appointment"`
}

// listAppointments serves two shapes: with doctorId+date and no user
// filter it returns just the booked time labels (what the booking page
// needs); otherwise full records, scoped to the requested or
// authenticated user when one applies.
func (h *Handler) listAppointments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	doctorID := q.Get("doctorId")
	date := q.Get("date")
	userID := q.Get("userId")

	if doctorID != "" && date != "" && userID == "" {
		times, err := h.store.BookedTimes(r.Context(), doctorID, date)
		if err != nil {
			h.respondEngineError(w, err)
			return
		}
		if times == nil {
			times = []string{}
		}
		h.respond(w, http.StatusOK, times)
		return
	}

	if userID == "" {
		if caller := h.caller(r); caller.Authenticated {
			userID = caller.UserID
		}
	}

	appts, err := h.store.ListAppointments(r.Context(), store.AppointmentFilter{
		DoctorID: doctorID,
		Date:     date,
		UserID:   userID,
	})
	if err != nil {
		h.respondEngineError(w, err)
		return
	}
	if appts == nil {
		appts = []model.Appointment{}
	}
	h.respond(w, http.StatusOK, appts)
}

func (h *Handler) createAppointment(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	if err := decode(r, &req); err != nil {
		h.metrics.ObserveBooking("invalid")
		h.respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// An authenticated caller owns the booking unless the body names a user.
	if req.UserID == "" {
		if caller := h.caller(r); caller.Authenticated {
			req.UserID = caller.UserID
		}
	}

	appt, err := h.engine.Book(r.Context(), schedule.BookingRequest{
		DoctorID:     req.DoctorID,
		UserID:       req.UserID,
		PatientName:  req.PatientName,
		PatientEmail: req.PatientEmail,
		PatientPhone: req.PatientPhone,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
	})
	if err != nil {
		h.metrics.ObserveBooking(bookingOutcome(err))
		h.respondEngineError(w, err)
		return
	}

	h.metrics.ObserveBooking("confirmed")
	h.respond(w, http.StatusCreated, createAppointmentResponse{
		Message:     "Appointment Confirmed!",
		Appointment: appt,
	})
}

func (h *Handler) getAppointment(w http.ResponseWriter, r *http.Request) {
	appt, err := h.engine.AppointmentForCaller(r.Context(), chi.URLParam(r, "id"), h.caller(r))
	if err != nil {
		h.respondOwnershipError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, appt)
}

type updateAppointmentRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

func (h *Handler) updateAppointment(w http.ResponseWriter, r *http.Request) {
	var req updateAppointmentRequest
	if err := decode(r, &req); err != nil {
		h.respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appt, err := h.engine.Update(r.Context(), chi.URLParam(r, "id"), h.caller(r), req.Status, req.Notes)
	if err != nil {
		h.respondOwnershipError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, appt)
}

func (h *Handler) cancelAppointment(w http.ResponseWriter, r *http.Request) {
	appt, err := h.engine.Cancel(r.Context(), chi.URLParam(r, "id"), h.caller(r))
	if err != nil {
		h.respondOwnershipError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, map[string]any{
		"message":     "Appointment cancelled",
		"appointment": appt,
	})
}

func (h *Handler) downloadAppointment(w http.ResponseWriter, r *http.Request) {
	appt, err := h.engine.AppointmentForCaller(r.Context(), chi.URLParam(r, "id"), h.caller(r))
	if err != nil {
		h.respondOwnershipError(w, r, err)
		return
	}

	body, err := ics.Event(appt)
	if err != nil {
		h.respondEngineError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+ics.Filename(appt)+`"`)
	if _, err := w.Write([]byte(body)); err != nil {
		h.logger.Error("write ics", "error", err)
	}
}

// respondOwnershipError distinguishes a missing token (401) from a
// token for the wrong user (403) on owner-gated appointments.
func (h *Handler) respondOwnershipError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, schedule.ErrForbidden) && !h.caller(r).Authenticated {
		h.respondMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	h.respondEngineError(w, err)
}

func bookingOutcome(err error) string {
	switch {
	case errors.Is(err, schedule.ErrConflict):
		return "conflict"
	case errors.Is(err, schedule.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, schedule.ErrInvalidInput):
		return "invalid"
	case errors.Is(err, schedule.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

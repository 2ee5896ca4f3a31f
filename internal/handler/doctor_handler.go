package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"cureconnect-api/internal/model"
)

// doctorRequest uses pointers throughout so updates can tell an absent
// field from an explicit zero and leave the stored value alone.
type doctorRequest struct {
	Name        *string  `json:"name"`
	Specialty   *string  `json:"specialty"`
	Price       *int     `json:"price"`
	Image       *string  `json:"image"`
	StartHour   *int     `json:"startHour"`
	EndHour     *int     `json:"endHour"`
	Experience  *int     `json:"experience"`
	Education   *string  `json:"education"`
	Description *string  `json:"description"`
	Rating      *float64 `json:"rating"`
	Reviews     *int     `json:"reviews"`
}

func (h *Handler) listDoctors(w http.ResponseWriter, r *http.Request) {
	specialty := r.URL.Query().Get("specialty")
	search := r.URL.Query().Get("search")

	doctors, err := h.store.ListDoctors(r.Context(), specialty, search)
	if err != nil {
		h.respondEngineError(w, err)
		return
	}
	if doctors == nil {
		doctors = []model.Doctor{}
	}
	h.respond(w, http.StatusOK, doctors)
}

func (h *Handler) getDoctor(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.DoctorByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondEngineError(w, err)
		return
	}
	h.respond(w, http.StatusOK, d)
}

func (h *Handler) createDoctor(w http.ResponseWriter, r *http.Request) {
	var req doctorRequest
	if err := decode(r, &req); err != nil {
		h.respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strEmpty(req.Name) || strEmpty(req.Specialty) || strEmpty(req.Image) || req.Price == nil || *req.Price <= 0 {
		h.respondMessage(w, http.StatusBadRequest, "name, specialty, price and image required")
		return
	}

	d := &model.Doctor{ID: uuid.New().String(), StartHour: 9, EndHour: 17}
	req.apply(d)
	if !validHours(d.StartHour, d.EndHour) {
		h.respondMessage(w, http.StatusBadRequest, "working hours must satisfy 0 <= startHour <= endHour <= 23")
		return
	}

	if err := h.store.CreateDoctor(r.Context(), d); err != nil {
		h.respondEngineError(w, err)
		return
	}
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	h.respond(w, http.StatusCreated, d)
}

func (h *Handler) updateDoctor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, err := h.store.DoctorByID(r.Context(), id)
	if err != nil {
		h.respondEngineError(w, err)
		return
	}

	var req doctorRequest
	if err := decode(r, &req); err != nil {
		h.respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// merge onto the stored record; absent fields keep their values
	req.apply(d)
	if !validHours(d.StartHour, d.EndHour) {
		h.respondMessage(w, http.StatusBadRequest, "working hours must satisfy 0 <= startHour <= endHour <= 23")
		return
	}

	if err := h.store.UpdateDoctor(r.Context(), d); err != nil {
		h.respondEngineError(w, err)
		return
	}
	updated, err := h.store.DoctorByID(r.Context(), id)
	if err != nil {
		h.respondEngineError(w, err)
		return
	}
	h.respond(w, http.StatusOK, updated)
}

func (h *Handler) deleteDoctor(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteDoctor(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondEngineError(w, err)
		return
	}
	h.respondMessage(w, http.StatusOK, "Doctor deleted")
}

type availabilityResponse struct {
	Date      string   `json:"date"`
	DoctorID  string   `json:"doctorId"`
	Available []string `json:"available"`
}

func (h *Handler) availableSlots(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "id")
	date := r.URL.Query().Get("date")
	if date == "" {
		h.respondMessage(w, http.StatusBadRequest, "Missing date query param")
		return
	}

	start := time.Now()
	free, err := h.engine.AvailableSlots(r.Context(), doctorID, date)
	if err != nil {
		h.respondEngineError(w, err)
		return
	}
	h.metrics.ObserveAvailability(time.Since(start).Seconds())

	if free == nil {
		free = []string{}
	}
	h.respond(w, http.StatusOK, availabilityResponse{Date: date, DoctorID: doctorID, Available: free})
}

func (req *doctorRequest) apply(d *model.Doctor) {
	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Specialty != nil {
		d.Specialty = *req.Specialty
	}
	if req.Price != nil {
		d.Price = *req.Price
	}
	if req.Image != nil {
		d.Image = *req.Image
	}
	if req.StartHour != nil {
		d.StartHour = *req.StartHour
	}
	if req.EndHour != nil {
		d.EndHour = *req.EndHour
	}
	if req.Experience != nil {
		d.Experience = *req.Experience
	}
	if req.Education != nil {
		d.Education = *req.Education
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.Rating != nil {
		d.Rating = *req.Rating
	}
	if req.Reviews != nil {
		d.Reviews = *req.Reviews
	}
}

func strEmpty(p *string) bool {
	return p == nil || *p == ""
}

func validHours(start, end int) bool {
	return start >= 0 && end <= 23 && start <= end
}

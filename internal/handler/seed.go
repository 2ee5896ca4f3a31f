package handler

import (
	"net/http"

	"github.com/google/uuid"

	"cureconnect-api/internal/model"
)

// seed resets the doctor directory to a known fixture set. Meant for
// fresh environments; it wipes existing doctors (and, via cascade,
// their appointments).
func (h *Handler) seed(w http.ResponseWriter, r *http.Request) {
	doctors := seedDoctors()
	if err := h.store.ReplaceDoctors(r.Context(), doctors); err != nil {
		h.respondEngineError(w, err)
		return
	}
	h.respondMessage(w, http.StatusOK, "Database Seeded Successfully")
}

func seedDoctors() []model.Doctor {
	specs := []struct {
		name, specialty, education, description string
		price, experience, reviews              int
		rating                                  float64
	}{
		{"Dr. Sarah Smith", "Cardiologist", "MD, Harvard Medical School",
			"Expert in cardiovascular diseases with over 12 years of experience.", 150, 12, 245, 4.8},
		{"Dr. John Doe", "Dermatologist", "MD, Johns Hopkins University",
			"Specialized in skin care and cosmetic dermatology.", 120, 8, 189, 4.6},
		{"Dr. Emily Blunt", "Pediatrician", "MD, Stanford University",
			"Caring pediatrician dedicated to children's health and wellness.", 100, 10, 312, 4.9},
		{"Dr. Michael Chen", "Neurologist", "MD, Mayo Clinic",
			"Leading neurologist specializing in brain and nervous system disorders.", 180, 15, 198, 4.7},
		{"Dr. Lisa Anderson", "Orthopedic Surgeon", "MD, Cleveland Clinic",
			"Expert in bone, joint, and muscle surgeries.", 200, 14, 267, 4.8},
		{"Dr. Robert Taylor", "Psychiatrist", "MD, Yale School of Medicine",
			"Compassionate psychiatrist helping patients with mental health.", 130, 11, 156, 4.5},
	}

	out := make([]model.Doctor, 0, len(specs))
	for _, s := range specs {
		out = append(out, model.Doctor{
			ID:          uuid.New().String(),
			Name:        s.name,
			Specialty:   s.specialty,
			Price:       s.price,
			Image:       "https://placehold.co/400x400?text=" + s.specialty,
			StartHour:   9,
			EndHour:     17,
			Experience:  s.experience,
			Education:   s.education,
			Description: s.description,
			Rating:      s.rating,
			Reviews:     s.reviews,
		})
	}
	return out
}

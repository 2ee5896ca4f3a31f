package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"cureconnect-api/internal/auth"
	"cureconnect-api/internal/middleware"
	"cureconnect-api/internal/model"
	"cureconnect-api/internal/schedule"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token        string     `json:"token"`
	RefreshToken string     `json:"refreshToken,omitempty"`
	User         model.User `json:"user"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		h.respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		h.respondMessage(w, http.StatusBadRequest, "Please provide name, email, and password")
		return
	}
	if len(req.Password) < 8 {
		h.respondMessage(w, http.StatusBadRequest, "password too short")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Role:         model.RolePatient,
	}
	if err := h.store.CreateUser(r.Context(), u); err != nil {
		if errors.Is(err, schedule.ErrConflict) {
			h.respondMessage(w, http.StatusConflict, "User already exists")
			return
		}
		h.logger.Error("create user", "error", err)
		h.respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.issueTokens(w, r, u, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		h.respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		h.respondMessage(w, http.StatusBadRequest, "Please provide email and password")
		return
	}

	u, err := h.store.UserByEmail(r.Context(), req.Email)
	if err != nil {
		h.respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		h.respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.issueTokens(w, r, u, http.StatusOK)
}

func (h *Handler) issueTokens(w http.ResponseWriter, r *http.Request, u *model.User, status int) {
	tok, err := auth.MakeToken(u.ID, u.Email, h.secret)
	if err != nil {
		h.respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		h.respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	if _, err := h.store.CreateRefreshToken(r.Context(), u.ID, hash, time.Now().Add(refreshTokenTTL)); err != nil {
		h.respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.respond(w, status, authResponse{Token: tok, RefreshToken: raw, User: *u})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decode(r, &req); err != nil || req.RefreshToken == "" {
		h.respondMessage(w, http.StatusBadRequest, "refresh token required")
		return
	}

	rt, err := h.store.RefreshTokenByHash(r.Context(), auth.HashRefreshToken(req.RefreshToken))
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		h.respondMessage(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	u, err := h.store.UserByID(r.Context(), rt.UserID)
	if err != nil {
		h.respondMessage(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	newRaw, newHash, err := auth.GenerateRefreshToken()
	if err != nil {
		h.respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	newID := uuid.New().String()
	if err := h.store.RotateRefreshToken(r.Context(), rt.ID, newID, rt.UserID, newHash, time.Now().Add(refreshTokenTTL)); err != nil {
		h.respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	tok, err := auth.MakeToken(u.ID, u.Email, h.secret)
	if err != nil {
		h.respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.respond(w, http.StatusOK, authResponse{Token: tok, RefreshToken: newRaw, User: *u})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	if err := h.store.RevokeAllRefreshTokens(r.Context(), uid); err != nil {
		h.respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.respondMessage(w, http.StatusOK, "logged out")
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	u, err := h.store.UserByID(r.Context(), uid)
	if err != nil {
		h.respondEngineError(w, err)
		return
	}
	h.respond(w, http.StatusOK, u)
}

package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizlytics/quizlytics-api/internal/auth"
	"github.com/quizlytics/quizlytics-api/internal/config"
)

type Handler struct {
	service UserService
}

func NewHandler(s UserService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Register(r.Context(), dto)
	switch {
	case errors.Is(err, ErrMissingFields):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrEmailTaken):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case err != nil:
		log.WithError(err).Error("Registration failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	default:
		config.JSON(w, http.StatusCreated, map[string]interface{}{
			"message": "registration successful",
			"user":    resp,
		})
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, token, err := h.service.Login(r.Context(), dto)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case err != nil:
		log.WithError(err).Error("Login failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	default:
		auth.SetSessionCookie(w, token)
		config.JSON(w, http.StatusOK, map[string]interface{}{
			"message": "login successful",
			"user":    resp,
		})
	}
}

func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto GoogleLoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil || dto.Code == "" {
		http.Error(w, "authorization code required", http.StatusBadRequest)
		return
	}

	resp, token, err := h.service.GoogleLogin(r.Context(), dto.Code)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case err != nil:
		log.WithError(err).Error("Google login failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	default:
		auth.SetSessionCookie(w, token)
		config.JSON(w, http.StatusOK, map[string]interface{}{
			"message": "login successful",
			"user":    resp,
		})
	}
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	resp, err := h.service.GetByID(r.Context(), claims.UserID)
	if errors.Is(err, ErrUserNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list users")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	config.JSON(w, http.StatusOK, users)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id := chi.URLParam(r, "id")
	err := h.service.DeleteUser(r.Context(), id)
	switch {
	case errors.Is(err, ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		log.WithError(err).Error("Failed to delete user")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	default:
		config.JSON(w, http.StatusOK, map[string]string{"message": "user deleted successfully"})
	}
}

func (h *Handler) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var dto ReminderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err = h.service.UpdateReminderTime(r.Context(), claims.UserID, dto.ReminderTime)
	switch {
	case errors.Is(err, ErrInvalidReminder):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	default:
		config.JSON(w, http.StatusOK, map[string]string{"message": "reminder time updated"})
	}
}

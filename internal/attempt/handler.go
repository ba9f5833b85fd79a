package attempt

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quizlytics/quizlytics-api/internal/auth"
	"github.com/quizlytics/quizlytics-api/internal/config"
)

type Handler struct {
	service AttemptService
}

func NewHandler(service AttemptService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	quizID, err := uuid.Parse(chi.URLParam(r, "quizId"))
	if err != nil {
		http.Error(w, ErrQuizNotFound.Error(), http.StatusNotFound)
		return
	}

	resp, err := h.service.Start(r.Context(), userID, quizID)
	if err != nil {
		writeAttemptError(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	quizID, err := uuid.Parse(chi.URLParam(r, "quizId"))
	if err != nil {
		http.Error(w, ErrQuizNotFound.Error(), http.StatusNotFound)
		return
	}

	var payload SubmitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	results, err := h.service.Submit(r.Context(), userID, quizID, payload)
	if err != nil {
		writeAttemptError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, results)
}

func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	attemptID, err := uuid.Parse(chi.URLParam(r, "attemptId"))
	if err != nil {
		http.Error(w, ErrAttemptNotFound.Error(), http.StatusNotFound)
		return
	}

	results, err := h.service.Results(r.Context(), attemptID, userID)
	if err != nil {
		writeAttemptError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, results)
}

func (h *Handler) ChapterStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	chapterID, err := uuid.Parse(chi.URLParam(r, "chapterId"))
	if err != nil {
		http.Error(w, "chapter not found", http.StatusNotFound)
		return
	}

	statuses, err := h.service.ChapterStatus(r.Context(), userID, chapterID)
	if err != nil {
		writeAttemptError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, statuses)
}

func (h *Handler) AttemptForQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	quizID, err := uuid.Parse(chi.URLParam(r, "quizId"))
	if err != nil {
		http.Error(w, ErrQuizNotFound.Error(), http.StatusNotFound)
		return
	}

	dto, err := h.service.AttemptForQuiz(r.Context(), userID, quizID)
	if err != nil {
		writeAttemptError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, dto)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	entries, err := h.service.History(r.Context(), userID)
	if err != nil {
		writeAttemptError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, entries)
}

func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return userID, true
}

func writeAttemptError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrQuizNotFound), errors.Is(err, ErrAttemptNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNotOwner):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrAlreadyAttempted), errors.Is(err, ErrAlreadySubmitted),
		errors.Is(err, ErrNoAttempt), errors.Is(err, ErrNotSubmitted),
		errors.Is(err, ErrQuizNotStarted), errors.Is(err, ErrQuizEnded):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

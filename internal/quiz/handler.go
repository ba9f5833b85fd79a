package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizlytics/quizlytics-api/internal/auth"
	"github.com/quizlytics/quizlytics-api/internal/config"
)

type Handler struct {
	service QuizService
}

func NewHandler(service QuizService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	var payload QuizPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateQuiz(r.Context(), payload)
	if err != nil {
		writeQuizError(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload QuizPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateQuiz(r.Context(), id, payload)
	if err != nil {
		writeQuizError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteQuiz(r.Context(), id); err != nil {
		writeQuizError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListByChapter(w http.ResponseWriter, r *http.Request) {
	chapterID := chi.URLParam(r, "chapterId")

	dto, err := h.service.ListByChapter(r.Context(), chapterID)
	if err != nil {
		writeQuizError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, dto)
}

// GetQuiz returns the quiz with its questions. Correct answers are only
// included for admin callers.
func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	includeAnswers := false
	if claims, err := auth.GetUserClaimsFromContext(r.Context()); err == nil {
		includeAnswers = claims.Role == auth.RoleAdmin
	}

	dto, err := h.service.GetWithQuestions(r.Context(), id, includeAnswers)
	if err != nil {
		writeQuizError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, dto)
}

func (h *Handler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "id")

	var payload QuestionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	question, err := h.service.AddQuestion(r.Context(), quizID, payload)
	if err != nil {
		writeQuizError(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, question)
}

func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "questionId")

	var payload QuestionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	question, err := h.service.UpdateQuestion(r.Context(), questionID, payload)
	if err != nil {
		writeQuizError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, question)
}

func (h *Handler) RemoveQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "questionId")

	if err := h.service.RemoveQuestion(r.Context(), questionID); err != nil {
		writeQuizError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeQuizError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrQuizNotFound), errors.Is(err, ErrQuestionNotFound), errors.Is(err, ErrChapterNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidWindow), errors.Is(err, ErrInvalidDuration),
		errors.Is(err, ErrInvalidOption), errors.Is(err, ErrMissingStatement):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

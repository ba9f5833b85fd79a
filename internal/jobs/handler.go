package jobs

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/quizlytics/quizlytics-api/internal/auth"
	"github.com/quizlytics/quizlytics-api/internal/config"
	"github.com/quizlytics/quizlytics-api/internal/user"
)

// Handler exposes the trigger endpoints. Each handler enqueues and
// returns immediately; the export lands in the requester's inbox.
type Handler struct {
	pool     *WorkerPool
	exports  *ExportJobs
	monthly  *MonthlyReportJob
	userRepo user.UserRepository
}

func NewHandler(pool *WorkerPool, exports *ExportJobs, monthly *MonthlyReportJob, userRepo user.UserRepository) *Handler {
	return &Handler{pool: pool, exports: exports, monthly: monthly, userRepo: userRepo}
}

func (h *Handler) TriggerScoresExport(w http.ResponseWriter, r *http.Request) {
	_, email, ok := h.requester(w, r)
	if !ok {
		return
	}
	h.accept(w, h.exports.ScoresExport(email))
}

func (h *Handler) TriggerOwnPerformanceExport(w http.ResponseWriter, r *http.Request) {
	userID, email, ok := h.requester(w, r)
	if !ok {
		return
	}
	h.accept(w, h.exports.UserPerformanceExport(userID, email))
}

func (h *Handler) TriggerAllPerformanceExport(w http.ResponseWriter, r *http.Request) {
	_, email, ok := h.requester(w, r)
	if !ok {
		return
	}
	h.accept(w, h.exports.AllPerformanceExport(email))
}

func (h *Handler) TriggerMonthlyReports(w http.ResponseWriter, r *http.Request) {
	h.accept(w, Job{Name: "monthly_reports", Run: h.monthly.Run})
}

func (h *Handler) accept(w http.ResponseWriter, job Job) {
	if err := h.pool.Enqueue(job); err != nil {
		if errors.Is(err, ErrQueueFull) {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	config.JSON(w, http.StatusAccepted, map[string]string{"status": "queued", "job": job.Name})
}

func (h *Handler) requester(w http.ResponseWriter, r *http.Request) (uuid.UUID, string, bool) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return uuid.Nil, "", false
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return uuid.Nil, "", false
	}
	u, err := h.userRepo.FindByID(userID)
	if err != nil || u == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return uuid.Nil, "", false
	}
	return userID, u.Email, true
}

package attempt

import (
	"github.com/google/uuid"

	util "github.com/quizlytics/quizlytics-api/internal/utils"
)

type SubmitPayload struct {
	// Answers maps question id to the selected option (1..4). Questions
	// omitted from the map, or mapped to null, count as unanswered.
	Answers              map[string]*int `json:"answers"`
	TimeRemainingSeconds int             `json:"time_remaining_seconds"`
}

type AttemptResponse struct {
	ID        uuid.UUID           `json:"id"`
	QuizID    uuid.UUID           `json:"quiz_id"`
	StartTime util.LocalDateTime  `json:"start_time"`
	EndTime   *util.LocalDateTime `json:"end_time,omitempty"`
	TimeSpent *int                `json:"time_spent,omitempty"`
	Completed bool                `json:"completed"`
}

type QuestionResultDTO struct {
	QuestionID     uuid.UUID `json:"question_id"`
	Statement      string    `json:"statement"`
	Options        []string  `json:"options"`
	CorrectOption  int       `json:"correct_option"`
	SelectedOption *int      `json:"selected_option"`
	IsCorrect      bool      `json:"is_correct"`
}

type ResultsDTO struct {
	AttemptID       uuid.UUID            `json:"attempt_id"`
	QuizID          uuid.UUID            `json:"quiz_id"`
	QuizLabel       string               `json:"quiz_label"`
	CorrectAnswers  int                  `json:"correct_answers"`
	TotalQuestions  int                  `json:"total_questions"`
	ScorePercentage int                  `json:"score_percentage"`
	StartTime       util.LocalDateTime   `json:"start_time"`
	EndTime         *util.LocalDateTime  `json:"end_time,omitempty"`
	TimeSpent       *int                 `json:"time_spent,omitempty"`
	Questions       []*QuestionResultDTO `json:"questions"`
}

type QuizStatusDTO struct {
	QuizID    uuid.UUID `json:"quiz_id"`
	Attempted bool      `json:"attempted"`
}

type AttemptForQuizDTO struct {
	HasAttempt bool             `json:"has_attempt"`
	Attempt    *AttemptResponse `json:"attempt,omitempty"`
}

type HistoryEntryDTO struct {
	AttemptID       uuid.UUID           `json:"attempt_id"`
	QuizID          uuid.UUID           `json:"quiz_id"`
	Label           string              `json:"label"`
	CorrectAnswers  int                 `json:"correct_answers"`
	TotalQuestions  int                 `json:"total_questions"`
	ScorePercentage int                 `json:"score_percentage"`
	StartTime       util.LocalDateTime  `json:"start_time"`
	EndTime         *util.LocalDateTime `json:"end_time,omitempty"`
	Completed       bool                `json:"completed"`
}

func toAttemptResponse(a *QuizAttempt) *AttemptResponse {
	return &AttemptResponse{
		ID:        a.ID,
		QuizID:    a.QuizID,
		StartTime: util.LocalDateTime{Time: a.StartTime},
		EndTime:   util.ToLocalPtr(a.EndTime),
		TimeSpent: a.TimeSpent,
		Completed: a.Completed(),
	}
}

package quiz

import (
	"github.com/google/uuid"

	util "github.com/quizlytics/quizlytics-api/internal/utils"
)

type QuizPayload struct {
	ChapterID       string             `json:"chapter_id"`
	StartTime       util.LocalDateTime `json:"start_time"`
	EndTime         util.LocalDateTime `json:"end_time"`
	DurationMinutes int                `json:"duration_minutes"`
	Remarks         string             `json:"remarks"`
}

type QuizResponse struct {
	ID              uuid.UUID          `json:"id"`
	ChapterID       uuid.UUID          `json:"chapter_id"`
	StartTime       util.LocalDateTime `json:"start_time"`
	EndTime         util.LocalDateTime `json:"end_time"`
	DurationMinutes int                `json:"duration_minutes"`
	Remarks         string             `json:"remarks,omitempty"`
}

type QuestionPayload struct {
	Statement     string `json:"statement"`
	Option1       string `json:"option1"`
	Option2       string `json:"option2"`
	Option3       string `json:"option3"`
	Option4       string `json:"option4"`
	CorrectOption int    `json:"correct_option"`
}

// QuestionView is the question as shown to a quiz taker: the correct option
// is withheld unless the caller is an admin.
type QuestionView struct {
	ID            uuid.UUID `json:"id"`
	Statement     string    `json:"statement"`
	Option1       string    `json:"option1"`
	Option2       string    `json:"option2"`
	Option3       string    `json:"option3"`
	Option4       string    `json:"option4"`
	CorrectOption *int      `json:"correct_option,omitempty"`
}

type QuizWithQuestionsDTO struct {
	ID              uuid.UUID          `json:"id"`
	StartTime       util.LocalDateTime `json:"start_time"`
	EndTime         util.LocalDateTime `json:"end_time"`
	DurationMinutes int                `json:"duration_minutes"`
	Remarks         string             `json:"remarks,omitempty"`
	Chapter         ChapterRefDTO      `json:"chapter"`
	Questions       []*QuestionView    `json:"questions"`
}

type ChapterRefDTO struct {
	ID      uuid.UUID     `json:"id"`
	Name    string        `json:"name"`
	Subject SubjectRefDTO `json:"subject"`
}

type SubjectRefDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ChapterWithQuizzesDTO backs the quiz listing a user sees inside a chapter.
type ChapterWithQuizzesDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Subject     SubjectRefDTO   `json:"subject"`
	Quizzes     []*QuizResponse `json:"quizzes"`
}

func toQuizResponse(q *Quiz) *QuizResponse {
	return &QuizResponse{
		ID:              q.ID,
		ChapterID:       q.ChapterID,
		StartTime:       util.LocalDateTime{Time: q.StartTime},
		EndTime:         util.LocalDateTime{Time: q.EndTime},
		DurationMinutes: q.DurationMinutes,
		Remarks:         q.Remarks,
	}
}

func toQuestionView(q *Question, includeAnswer bool) *QuestionView {
	view := &QuestionView{
		ID:        q.ID,
		Statement: q.Statement,
		Option1:   q.Option1,
		Option2:   q.Option2,
		Option3:   q.Option3,
		Option4:   q.Option4,
	}
	if includeAnswer {
		correct := q.CorrectOption
		view.CorrectOption = &correct
	}
	return view
}

package attempt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizlytics/quizlytics-api/internal/config"
	"github.com/quizlytics/quizlytics-api/internal/quiz"
	"github.com/quizlytics/quizlytics-api/internal/scoring"
	util "github.com/quizlytics/quizlytics-api/internal/utils"
)

var (
	ErrQuizNotFound     = quiz.ErrQuizNotFound
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrNoAttempt        = errors.New("quiz has not been attempted")
	ErrAlreadyAttempted = errors.New("quiz already attempted")
	ErrAlreadySubmitted = errors.New("attempt already submitted")
	ErrNotSubmitted     = errors.New("attempt has not been submitted yet")
	ErrQuizNotStarted   = errors.New("quiz has not started yet")
	ErrQuizEnded        = errors.New("quiz has ended")
	ErrNotOwner         = errors.New("attempt belongs to another user")
)

type AttemptService interface {
	Start(ctx context.Context, userID, quizID uuid.UUID) (*AttemptResponse, error)
	Submit(ctx context.Context, userID, quizID uuid.UUID, payload SubmitPayload) (*ResultsDTO, error)
	Results(ctx context.Context, attemptID, requestingUserID uuid.UUID) (*ResultsDTO, error)
	ChapterStatus(ctx context.Context, userID, chapterID uuid.UUID) ([]*QuizStatusDTO, error)
	AttemptForQuiz(ctx context.Context, userID, quizID uuid.UUID) (*AttemptForQuizDTO, error)
	History(ctx context.Context, userID uuid.UUID) ([]*HistoryEntryDTO, error)
}

type attemptService struct {
	db       *gorm.DB
	repo     AttemptRepository
	quizRepo quiz.QuizRepository
	now      func() time.Time
}

func NewService(db *gorm.DB, repo AttemptRepository, quizRepo quiz.QuizRepository) AttemptService {
	return &attemptService{db: db, repo: repo, quizRepo: quizRepo, now: time.Now}
}

func (s *attemptService) Start(ctx context.Context, userID, quizID uuid.UUID) (*AttemptResponse, error) {
	log := config.WithContext(ctx)

	q, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	now := s.now().UTC()
	if config.QuizWindowEnforced() {
		if now.Before(q.StartTime) {
			return nil, ErrQuizNotStarted
		}
		if now.After(q.EndTime) {
			return nil, ErrQuizEnded
		}
	}

	existing, err := s.repo.FindByUserAndQuiz(userID, quizID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Completed() {
			return nil, ErrAlreadyAttempted
		}
		return toAttemptResponse(existing), nil
	}

	a := &QuizAttempt{
		ID:        uuid.New(),
		UserID:    userID,
		QuizID:    quizID,
		StartTime: now,
	}
	if err := s.repo.Create(a); err != nil {
		// A concurrent start hit the (user_id, quiz_id) unique index first.
		// The winner's row is the attempt; return it.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, findErr := s.repo.FindByUserAndQuiz(userID, quizID)
			if findErr != nil {
				return nil, findErr
			}
			if winner == nil {
				return nil, err
			}
			if winner.Completed() {
				return nil, ErrAlreadyAttempted
			}
			return toAttemptResponse(winner), nil
		}
		log.WithError(err).Error("Failed to start attempt")
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"attempt_id": a.ID,
		"quiz_id":    quizID,
		"user_id":    userID,
	}).Info("Attempt started")
	return toAttemptResponse(a), nil
}

func (s *attemptService) Submit(ctx context.Context, userID, quizID uuid.UUID, payload SubmitPayload) (*ResultsDTO, error) {
	log := config.WithContext(ctx)

	q, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	a, err := s.repo.FindByUserAndQuiz(userID, quizID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNoAttempt
	}
	if a.Completed() {
		return nil, ErrAlreadySubmitted
	}

	questions, err := s.quizRepo.FindQuestionsByQuiz(quizID)
	if err != nil {
		return nil, err
	}

	endTime := s.now().UTC()
	timeSpent := q.DurationMinutes*60 - payload.TimeRemainingSeconds

	scores := make([]*Score, 0, len(questions))
	for _, question := range questions {
		scores = append(scores, &Score{
			ID:             uuid.New(),
			AttemptID:      a.ID,
			UserID:         userID,
			QuizID:         quizID,
			QuestionID:     question.ID,
			SelectedOption: payload.Answers[question.ID.String()],
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := NewRepository(tx)
		rows, err := txRepo.Complete(a.ID, endTime, timeSpent)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrAlreadySubmitted
		}
		return txRepo.CreateScores(scores)
	})
	if err != nil {
		if !errors.Is(err, ErrAlreadySubmitted) {
			log.WithError(err).Error("Failed to submit attempt")
		}
		return nil, err
	}

	a.EndTime = &endTime
	a.TimeSpent = &timeSpent

	log.WithFields(map[string]interface{}{
		"attempt_id": a.ID,
		"quiz_id":    quizID,
		"user_id":    userID,
	}).Info("Attempt submitted")
	return buildResults(a, q, questions, payload.Answers), nil
}

func (s *attemptService) Results(ctx context.Context, attemptID, requestingUserID uuid.UUID) (*ResultsDTO, error) {
	a, err := s.repo.FindByID(attemptID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAttemptNotFound
	}
	if a.UserID != requestingUserID {
		return nil, ErrNotOwner
	}
	if !a.Completed() {
		return nil, ErrNotSubmitted
	}

	scores, err := s.repo.ScoresByAttempt(attemptID)
	if err != nil {
		return nil, err
	}

	answers := make(map[string]*int, len(scores))
	questions := make([]*quiz.Question, 0, len(scores))
	for _, sc := range scores {
		answers[sc.QuestionID.String()] = sc.SelectedOption
		question := sc.Question
		questions = append(questions, &question)
	}
	return buildResults(a, &a.Quiz, questions, answers), nil
}

func (s *attemptService) ChapterStatus(ctx context.Context, userID, chapterID uuid.UUID) ([]*QuizStatusDTO, error) {
	ids, err := s.repo.AttemptedQuizIDs(userID, chapterID)
	if err != nil {
		return nil, err
	}
	statuses := make([]*QuizStatusDTO, 0, len(ids))
	for _, id := range ids {
		statuses = append(statuses, &QuizStatusDTO{QuizID: id, Attempted: true})
	}
	return statuses, nil
}

func (s *attemptService) AttemptForQuiz(ctx context.Context, userID, quizID uuid.UUID) (*AttemptForQuizDTO, error) {
	a, err := s.repo.FindByUserAndQuiz(userID, quizID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return &AttemptForQuizDTO{HasAttempt: false}, nil
	}
	return &AttemptForQuizDTO{HasAttempt: true, Attempt: toAttemptResponse(a)}, nil
}

func (s *attemptService) History(ctx context.Context, userID uuid.UUID) ([]*HistoryEntryDTO, error) {
	attempts, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	entries := make([]*HistoryEntryDTO, 0, len(attempts))
	for _, a := range attempts {
		scores, err := s.repo.ScoresByAttempt(a.ID)
		if err != nil {
			return nil, err
		}
		var tally scoring.Tally
		for _, sc := range scores {
			tally.Add(sc.SelectedOption, sc.Question.CorrectOption)
		}
		entries = append(entries, &HistoryEntryDTO{
			AttemptID:       a.ID,
			QuizID:          a.QuizID,
			Label:           quizLabel(&a.Quiz),
			CorrectAnswers:  tally.Correct,
			TotalQuestions:  tally.Total,
			ScorePercentage: tally.Percent(),
			StartTime:       util.LocalDateTime{Time: a.StartTime},
			EndTime:         util.ToLocalPtr(a.EndTime),
			Completed:       a.Completed(),
		})
	}
	return entries, nil
}

func quizLabel(q *quiz.Quiz) string {
	return fmt.Sprintf("%s - %s", q.Chapter.Subject.Name, q.Chapter.Name)
}

func buildResults(a *QuizAttempt, q *quiz.Quiz, questions []*quiz.Question, answers map[string]*int) *ResultsDTO {
	var tally scoring.Tally
	details := make([]*QuestionResultDTO, 0, len(questions))
	for _, question := range questions {
		selected := answers[question.ID.String()]
		tally.Add(selected, question.CorrectOption)
		details = append(details, &QuestionResultDTO{
			QuestionID:     question.ID,
			Statement:      question.Statement,
			Options:        question.Options(),
			CorrectOption:  question.CorrectOption,
			SelectedOption: selected,
			IsCorrect:      scoring.IsCorrect(selected, question.CorrectOption),
		})
	}

	return &ResultsDTO{
		AttemptID:       a.ID,
		QuizID:          a.QuizID,
		QuizLabel:       quizLabel(q),
		CorrectAnswers:  tally.Correct,
		TotalQuestions:  tally.Total,
		ScorePercentage: tally.Percent(),
		StartTime:       util.LocalDateTime{Time: a.StartTime},
		EndTime:         util.ToLocalPtr(a.EndTime),
		TimeSpent:       a.TimeSpent,
		Questions:       details,
	}
}

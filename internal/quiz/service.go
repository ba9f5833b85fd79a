package quiz

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/quizlytics/quizlytics-api/internal/cache"
	"github.com/quizlytics/quizlytics-api/internal/chapter"
	"github.com/quizlytics/quizlytics-api/internal/config"
	util "github.com/quizlytics/quizlytics-api/internal/utils"
)

var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrChapterNotFound  = chapter.ErrChapterNotFound
	ErrInvalidWindow    = errors.New("start_time must be before end_time")
	ErrInvalidDuration  = errors.New("duration_minutes must be a positive integer")
	ErrInvalidOption    = errors.New("correct_option must be between 1 and 4")
	ErrMissingStatement = errors.New("question statement and all four options are required")
)

type QuizService interface {
	CreateQuiz(ctx context.Context, payload QuizPayload) (*QuizResponse, error)
	UpdateQuiz(ctx context.Context, id string, payload QuizPayload) (*QuizResponse, error)
	DeleteQuiz(ctx context.Context, id string) error
	ListByChapter(ctx context.Context, chapterID string) (*ChapterWithQuizzesDTO, error)
	GetWithQuestions(ctx context.Context, quizID string, includeAnswers bool) (*QuizWithQuestionsDTO, error)

	AddQuestion(ctx context.Context, quizID string, payload QuestionPayload) (*Question, error)
	UpdateQuestion(ctx context.Context, questionID string, payload QuestionPayload) (*Question, error)
	RemoveQuestion(ctx context.Context, questionID string) error
}

type quizService struct {
	repo        QuizRepository
	chapterRepo chapter.ChapterRepository
	cache       *cache.Cache
}

func NewService(repo QuizRepository, chapterRepo chapter.ChapterRepository, c *cache.Cache) QuizService {
	return &quizService{repo: repo, chapterRepo: chapterRepo, cache: c}
}

func validateQuizPayload(payload QuizPayload) error {
	if payload.StartTime.IsZero() || payload.EndTime.IsZero() {
		return ErrInvalidWindow
	}
	if !payload.StartTime.Time.Before(payload.EndTime.Time) {
		return ErrInvalidWindow
	}
	if payload.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

func validateQuestionPayload(payload QuestionPayload) error {
	if strings.TrimSpace(payload.Statement) == "" ||
		payload.Option1 == "" || payload.Option2 == "" ||
		payload.Option3 == "" || payload.Option4 == "" {
		return ErrMissingStatement
	}
	if payload.CorrectOption < 1 || payload.CorrectOption > 4 {
		return ErrInvalidOption
	}
	return nil
}

func (s *quizService) CreateQuiz(ctx context.Context, payload QuizPayload) (*QuizResponse, error) {
	log := config.WithContext(ctx)

	if err := validateQuizPayload(payload); err != nil {
		return nil, err
	}

	chapterID, err := uuid.Parse(payload.ChapterID)
	if err != nil {
		return nil, ErrChapterNotFound
	}
	ch, err := s.chapterRepo.FindByID(chapterID)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, ErrChapterNotFound
	}

	q := &Quiz{
		ID:              uuid.New(),
		ChapterID:       chapterID,
		StartTime:       payload.StartTime.Time.UTC(),
		EndTime:         payload.EndTime.Time.UTC(),
		DurationMinutes: payload.DurationMinutes,
		Remarks:         strings.TrimSpace(payload.Remarks),
	}
	if err := s.repo.Create(q); err != nil {
		log.WithError(err).Error("Failed to create quiz")
		return nil, err
	}

	s.cache.Delete(ctx, cache.KeyChapterPrefix+payload.ChapterID)
	log.WithField("quiz_id", q.ID).Info("Quiz created")
	return toQuizResponse(q), nil
}

func (s *quizService) UpdateQuiz(ctx context.Context, id string, payload QuizPayload) (*QuizResponse, error) {
	log := config.WithContext(ctx)

	quizID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrQuizNotFound
	}
	q, err := s.repo.FindByID(quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	if payload.ChapterID != "" {
		chapterID, err := uuid.Parse(payload.ChapterID)
		if err != nil {
			return nil, ErrChapterNotFound
		}
		ch, err := s.chapterRepo.FindByID(chapterID)
		if err != nil {
			return nil, err
		}
		if ch == nil {
			return nil, ErrChapterNotFound
		}
		q.ChapterID = chapterID
	}
	if !payload.StartTime.IsZero() {
		q.StartTime = payload.StartTime.Time.UTC()
	}
	if !payload.EndTime.IsZero() {
		q.EndTime = payload.EndTime.Time.UTC()
	}
	if !q.StartTime.Before(q.EndTime) {
		return nil, ErrInvalidWindow
	}
	if payload.DurationMinutes != 0 {
		if payload.DurationMinutes < 0 {
			return nil, ErrInvalidDuration
		}
		q.DurationMinutes = payload.DurationMinutes
	}
	if payload.Remarks != "" {
		q.Remarks = strings.TrimSpace(payload.Remarks)
	}

	if err := s.repo.Update(q); err != nil {
		log.WithError(err).Error("Failed to update quiz")
		return nil, err
	}

	s.cache.Delete(ctx, cache.KeyChapterPrefix+q.ChapterID.String())
	return toQuizResponse(q), nil
}

// DeleteQuiz removes the quiz; questions, attempts and scores cascade.
func (s *quizService) DeleteQuiz(ctx context.Context, id string) error {
	log := config.WithContext(ctx)

	quizID, err := uuid.Parse(id)
	if err != nil {
		return ErrQuizNotFound
	}
	q, err := s.repo.FindByID(quizID)
	if err != nil {
		return err
	}
	if q == nil {
		return ErrQuizNotFound
	}

	if err := s.repo.Delete(quizID); err != nil {
		log.WithError(err).Error("Failed to delete quiz")
		return err
	}

	s.cache.Delete(ctx, cache.KeyChapterPrefix+q.ChapterID.String())
	log.WithField("quiz_id", id).Info("Quiz and all associated questions deleted")
	return nil
}

func (s *quizService) ListByChapter(ctx context.Context, chapterID string) (*ChapterWithQuizzesDTO, error) {
	cacheKey := cache.KeyChapterPrefix + chapterID

	var cached ChapterWithQuizzesDTO
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	parsed, err := uuid.Parse(chapterID)
	if err != nil {
		return nil, ErrChapterNotFound
	}
	ch, err := s.chapterRepo.FindByID(parsed)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, ErrChapterNotFound
	}

	quizzes, err := s.repo.FindByChapter(parsed)
	if err != nil {
		return nil, err
	}

	dto := &ChapterWithQuizzesDTO{
		ID:          ch.ID,
		Name:        ch.Name,
		Description: ch.Description,
		Subject: SubjectRefDTO{
			ID:   ch.Subject.ID,
			Name: ch.Subject.Name,
		},
		Quizzes: make([]*QuizResponse, 0, len(quizzes)),
	}
	for _, q := range quizzes {
		dto.Quizzes = append(dto.Quizzes, toQuizResponse(q))
	}

	s.cache.SetJSON(ctx, cacheKey, dto)
	return dto, nil
}

func (s *quizService) GetWithQuestions(ctx context.Context, quizID string, includeAnswers bool) (*QuizWithQuestionsDTO, error) {
	parsed, err := uuid.Parse(quizID)
	if err != nil {
		return nil, ErrQuizNotFound
	}
	q, err := s.repo.FindByID(parsed)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	questions, err := s.repo.FindQuestionsByQuiz(parsed)
	if err != nil {
		return nil, err
	}

	dto := &QuizWithQuestionsDTO{
		ID:              q.ID,
		StartTime:       util.LocalDateTime{Time: q.StartTime},
		EndTime:         util.LocalDateTime{Time: q.EndTime},
		DurationMinutes: q.DurationMinutes,
		Remarks:         q.Remarks,
		Chapter: ChapterRefDTO{
			ID:   q.Chapter.ID,
			Name: q.Chapter.Name,
			Subject: SubjectRefDTO{
				ID:   q.Chapter.Subject.ID,
				Name: q.Chapter.Subject.Name,
			},
		},
		Questions: make([]*QuestionView, 0, len(questions)),
	}
	for _, question := range questions {
		dto.Questions = append(dto.Questions, toQuestionView(question, includeAnswers))
	}
	return dto, nil
}

func (s *quizService) AddQuestion(ctx context.Context, quizID string, payload QuestionPayload) (*Question, error) {
	log := config.WithContext(ctx)

	if err := validateQuestionPayload(payload); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(quizID)
	if err != nil {
		return nil, ErrQuizNotFound
	}
	q, err := s.repo.FindByID(parsed)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	question := &Question{
		ID:            uuid.New(),
		QuizID:        q.ID,
		Statement:     strings.TrimSpace(payload.Statement),
		Option1:       payload.Option1,
		Option2:       payload.Option2,
		Option3:       payload.Option3,
		Option4:       payload.Option4,
		CorrectOption: payload.CorrectOption,
	}
	if err := s.repo.AddQuestions([]*Question{question}); err != nil {
		log.WithError(err).Error("Failed to add question")
		return nil, err
	}

	log.WithField("question_id", question.ID).Info("Question added")
	return question, nil
}

func (s *quizService) UpdateQuestion(ctx context.Context, questionID string, payload QuestionPayload) (*Question, error) {
	log := config.WithContext(ctx)

	if err := validateQuestionPayload(payload); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(questionID)
	if err != nil {
		return nil, ErrQuestionNotFound
	}
	question, err := s.repo.FindQuestion(parsed)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	question.Statement = strings.TrimSpace(payload.Statement)
	question.Option1 = payload.Option1
	question.Option2 = payload.Option2
	question.Option3 = payload.Option3
	question.Option4 = payload.Option4
	question.CorrectOption = payload.CorrectOption

	if err := s.repo.UpdateQuestion(question); err != nil {
		log.WithError(err).Error("Failed to update question")
		return nil, err
	}
	return question, nil
}

func (s *quizService) RemoveQuestion(ctx context.Context, questionID string) error {
	log := config.WithContext(ctx)

	parsed, err := uuid.Parse(questionID)
	if err != nil {
		return ErrQuestionNotFound
	}
	question, err := s.repo.FindQuestion(parsed)
	if err != nil {
		return err
	}
	if question == nil {
		return ErrQuestionNotFound
	}

	if err := s.repo.DeleteQuestion(parsed); err != nil {
		log.WithError(err).Error("Failed to remove question")
		return err
	}

	log.WithField("question_id", questionID).Info("Question removed")
	return nil
}

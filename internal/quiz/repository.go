package quiz

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(q *Quiz) error
	FindByID(id uuid.UUID) (*Quiz, error)
	FindByChapter(chapterID uuid.UUID) ([]*Quiz, error)
	SearchByRemarks(term string) ([]*Quiz, error)
	// FindStartedBetween returns quizzes whose window opened in [from, to),
	// with the chapter chain preloaded.
	FindStartedBetween(from, to time.Time) ([]*Quiz, error)
	Update(q *Quiz) error
	Delete(id uuid.UUID) error

	AddQuestions(questions []*Question) error
	FindQuestion(id uuid.UUID) (*Question, error)
	FindQuestionsByQuiz(quizID uuid.UUID) ([]*Question, error)
	UpdateQuestion(q *Question) error
	DeleteQuestion(id uuid.UUID) error
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(q *Quiz) error {
	return r.db.Create(q).Error
}

func (r *quizRepository) FindByID(id uuid.UUID) (*Quiz, error) {
	var q Quiz
	if err := r.db.
		Preload("Chapter").
		Preload("Chapter.Subject").
		First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *quizRepository) FindByChapter(chapterID uuid.UUID) ([]*Quiz, error) {
	var quizzes []*Quiz
	if err := r.db.
		Where("chapter_id = ?", chapterID).
		Order("start_time ASC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) SearchByRemarks(term string) ([]*Quiz, error) {
	var quizzes []*Quiz
	if err := r.db.
		Preload("Chapter").
		Preload("Chapter.Subject").
		Where("remarks LIKE ?", "%"+term+"%").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) FindStartedBetween(from, to time.Time) ([]*Quiz, error) {
	var quizzes []*Quiz
	if err := r.db.
		Preload("Chapter").
		Preload("Chapter.Subject").
		Where("start_time >= ? AND start_time < ?", from, to).
		Order("start_time ASC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) Update(q *Quiz) error {
	return r.db.Save(q).Error
}

func (r *quizRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Quiz{}, "id = ?", id).Error
}

func (r *quizRepository) AddQuestions(questions []*Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Create(&questions).Error
}

func (r *quizRepository) FindQuestion(id uuid.UUID) (*Question, error) {
	var q Question
	if err := r.db.First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *quizRepository) FindQuestionsByQuiz(quizID uuid.UUID) ([]*Question, error) {
	var questions []*Question
	if err := r.db.
		Where("quiz_id = ?", quizID).
		Order("id ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *quizRepository) UpdateQuestion(q *Question) error {
	return r.db.Save(q).Error
}

func (r *quizRepository) DeleteQuestion(id uuid.UUID) error {
	return r.db.Delete(&Question{}, "id = ?", id).Error
}

package subject

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizlytics/quizlytics-api/internal/cache"
	"github.com/quizlytics/quizlytics-api/internal/config"
)

var (
	ErrSubjectNotFound = errors.New("subject not found")
	ErrNameRequired    = errors.New("subject name is required")
	ErrNameTaken       = errors.New("subject name already in use")
)

type SubjectService interface {
	Create(ctx context.Context, name, description string) (*Subject, error)
	Get(ctx context.Context, id string) (*Subject, error)
	List(ctx context.Context) ([]*Subject, error)
	Update(ctx context.Context, id, name, description string) (*Subject, error)
	Delete(ctx context.Context, id string) error
}

type subjectService struct {
	repo  SubjectRepository
	cache *cache.Cache
}

func NewService(repo SubjectRepository, c *cache.Cache) SubjectService {
	return &subjectService{repo: repo, cache: c}
}

func (s *subjectService) Create(ctx context.Context, name, description string) (*Subject, error) {
	log := config.WithContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	subj := &Subject{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	if err := s.repo.Create(subj); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		log.WithError(err).Error("Failed to create subject")
		return nil, err
	}

	s.cache.Delete(ctx, cache.KeySubjects)
	log.WithField("subject_id", subj.ID).Info("Subject created")
	return subj, nil
}

func (s *subjectService) Get(ctx context.Context, id string) (*Subject, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrSubjectNotFound
	}
	subj, err := s.repo.FindByID(parsed)
	if err != nil {
		return nil, err
	}
	if subj == nil {
		return nil, ErrSubjectNotFound
	}
	return subj, nil
}

func (s *subjectService) List(ctx context.Context) ([]*Subject, error) {
	var cached []*Subject
	if s.cache.GetJSON(ctx, cache.KeySubjects, &cached) {
		return cached, nil
	}

	subjects, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, cache.KeySubjects, subjects)
	return subjects, nil
}

func (s *subjectService) Update(ctx context.Context, id, name, description string) (*Subject, error) {
	log := config.WithContext(ctx)

	subj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	subj.Name = name
	subj.Description = strings.TrimSpace(description)

	if err := s.repo.Update(subj); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		log.WithError(err).Error("Failed to update subject")
		return nil, err
	}

	s.cache.Delete(ctx, cache.KeySubjects, cache.KeySubjectPrefix+id)
	return subj, nil
}

// Delete removes the subject; chapters, quizzes, questions, attempts and
// scores underneath it go with it via FK cascade.
func (s *subjectService) Delete(ctx context.Context, id string) error {
	log := config.WithContext(ctx)

	subj, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(subj.ID); err != nil {
		log.WithError(err).Error("Failed to delete subject")
		return err
	}

	s.cache.Delete(ctx, cache.KeySubjects, cache.KeySubjectPrefix+id)
	log.WithField("subject_id", id).Info("Subject and all associated data deleted")
	return nil
}

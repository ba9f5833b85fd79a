package chapter

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizlytics/quizlytics-api/internal/cache"
	"github.com/quizlytics/quizlytics-api/internal/config"
	"github.com/quizlytics/quizlytics-api/internal/subject"
)

var (
	ErrChapterNotFound = errors.New("chapter not found")
	ErrSubjectNotFound = subject.ErrSubjectNotFound
	ErrNameRequired    = errors.New("chapter name is required")
	ErrNameTaken       = errors.New("chapter name already in use in this subject")
)

type ChapterService interface {
	Create(ctx context.Context, payload ChapterPayload) (*ChapterResponse, error)
	Get(ctx context.Context, id string) (*Chapter, error)
	ListBySubject(ctx context.Context, subjectID string) (*SubjectWithChaptersDTO, error)
	Update(ctx context.Context, id string, payload ChapterPayload) (*ChapterResponse, error)
	Delete(ctx context.Context, id string) error
}

type chapterService struct {
	repo        ChapterRepository
	subjectRepo subject.SubjectRepository
	cache       *cache.Cache
}

func NewService(repo ChapterRepository, subjectRepo subject.SubjectRepository, c *cache.Cache) ChapterService {
	return &chapterService{repo: repo, subjectRepo: subjectRepo, cache: c}
}

func (s *chapterService) Create(ctx context.Context, payload ChapterPayload) (*ChapterResponse, error) {
	log := config.WithContext(ctx)

	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	subjectID, err := uuid.Parse(payload.SubjectID)
	if err != nil {
		return nil, ErrSubjectNotFound
	}
	subj, err := s.subjectRepo.FindByID(subjectID)
	if err != nil {
		return nil, err
	}
	if subj == nil {
		return nil, ErrSubjectNotFound
	}

	c := &Chapter{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(payload.Description),
		SubjectID:   subjectID,
	}
	if err := s.repo.Create(c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		log.WithError(err).Error("Failed to create chapter")
		return nil, err
	}

	s.cache.Delete(ctx, cache.KeySubjectPrefix+payload.SubjectID)
	log.WithField("chapter_id", c.ID).Info("Chapter created")
	return toResponse(c), nil
}

func (s *chapterService) Get(ctx context.Context, id string) (*Chapter, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrChapterNotFound
	}
	c, err := s.repo.FindByID(parsed)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrChapterNotFound
	}
	return c, nil
}

func (s *chapterService) ListBySubject(ctx context.Context, subjectID string) (*SubjectWithChaptersDTO, error) {
	cacheKey := cache.KeySubjectPrefix + subjectID

	var cached SubjectWithChaptersDTO
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	parsed, err := uuid.Parse(subjectID)
	if err != nil {
		return nil, ErrSubjectNotFound
	}
	subj, err := s.subjectRepo.FindByID(parsed)
	if err != nil {
		return nil, err
	}
	if subj == nil {
		return nil, ErrSubjectNotFound
	}

	chapters, err := s.repo.FindBySubject(parsed)
	if err != nil {
		return nil, err
	}

	dto := &SubjectWithChaptersDTO{
		ID:          subj.ID,
		Name:        subj.Name,
		Description: subj.Description,
		Chapters:    make([]*ChapterResponse, 0, len(chapters)),
	}
	for _, c := range chapters {
		dto.Chapters = append(dto.Chapters, toResponse(c))
	}

	s.cache.SetJSON(ctx, cacheKey, dto)
	return dto, nil
}

func (s *chapterService) Update(ctx context.Context, id string, payload ChapterPayload) (*ChapterResponse, error) {
	log := config.WithContext(ctx)

	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	c.Name = name
	c.Description = strings.TrimSpace(payload.Description)

	if err := s.repo.Update(c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		log.WithError(err).Error("Failed to update chapter")
		return nil, err
	}

	s.cache.Delete(ctx, cache.KeySubjectPrefix+c.SubjectID.String(), cache.KeyChapterPrefix+id)
	return toResponse(c), nil
}

// Delete removes the chapter and, via FK cascade, every quiz under it.
func (s *chapterService) Delete(ctx context.Context, id string) error {
	log := config.WithContext(ctx)

	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(c.ID); err != nil {
		log.WithError(err).Error("Failed to delete chapter")
		return err
	}

	s.cache.Delete(ctx, cache.KeySubjectPrefix+c.SubjectID.String(), cache.KeyChapterPrefix+id)
	log.WithField("chapter_id", id).Info("Chapter and all associated quizzes deleted")
	return nil
}

// Package search provides substring search across the catalog tree.
package search

import (
	"context"
	"errors"
	"strings"

	"github.com/quizlytics/quizlytics-api/internal/chapter"
	"github.com/quizlytics/quizlytics-api/internal/quiz"
	"github.com/quizlytics/quizlytics-api/internal/subject"
)

var ErrEmptyQuery = errors.New("search query must not be empty")

type ResultsDTO struct {
	Subjects []*subject.Subject `json:"subjects"`
	Chapters []*chapter.Chapter `json:"chapters"`
	Quizzes  []*quiz.Quiz       `json:"quizzes"`
}

type SearchService interface {
	Search(ctx context.Context, term string) (*ResultsDTO, error)
}

type searchService struct {
	subjectRepo subject.SubjectRepository
	chapterRepo chapter.ChapterRepository
	quizRepo    quiz.QuizRepository
}

func NewService(subjectRepo subject.SubjectRepository, chapterRepo chapter.ChapterRepository, quizRepo quiz.QuizRepository) SearchService {
	return &searchService{subjectRepo: subjectRepo, chapterRepo: chapterRepo, quizRepo: quizRepo}
}

func (s *searchService) Search(ctx context.Context, term string) (*ResultsDTO, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptyQuery
	}

	subjects, err := s.subjectRepo.SearchByName(term)
	if err != nil {
		return nil, err
	}
	chapters, err := s.chapterRepo.SearchByName(term)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.quizRepo.SearchByRemarks(term)
	if err != nil {
		return nil, err
	}

	return &ResultsDTO{
		Subjects: subjects,
		Chapters: chapters,
		Quizzes:  quizzes,
	}, nil
}

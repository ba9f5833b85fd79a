package search

import (
	"github.com/quizlytics/quizlytics-api/internal/chapter"
	"github.com/quizlytics/quizlytics-api/internal/quiz"
	"github.com/quizlytics/quizlytics-api/internal/subject"
)

type SearchContainer struct {
	Service SearchService
	Handler *Handler
}

func NewSearchContainer(subjectRepo subject.SubjectRepository, chapterRepo chapter.ChapterRepository, quizRepo quiz.QuizRepository) *SearchContainer {
	service := NewService(subjectRepo, chapterRepo, quizRepo)
	handler := NewHandler(service)

	return &SearchContainer{
		Service: service,
		Handler: handler,
	}
}

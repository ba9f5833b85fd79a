package container

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/quizlytics/quizlytics-api/internal/analytics"
	"github.com/quizlytics/quizlytics-api/internal/attempt"
	"github.com/quizlytics/quizlytics-api/internal/auth"
	"github.com/quizlytics/quizlytics-api/internal/cache"
	"github.com/quizlytics/quizlytics-api/internal/chapter"
	"github.com/quizlytics/quizlytics-api/internal/config"
	"github.com/quizlytics/quizlytics-api/internal/jobs"
	"github.com/quizlytics/quizlytics-api/internal/quiz"
	"github.com/quizlytics/quizlytics-api/internal/report"
	"github.com/quizlytics/quizlytics-api/internal/search"
	"github.com/quizlytics/quizlytics-api/internal/subject"
	"github.com/quizlytics/quizlytics-api/internal/user"
)

type Container struct {
	UserContainer      *user.UserContainer
	SubjectContainer   *subject.SubjectContainer
	ChapterContainer   *chapter.ChapterContainer
	QuizContainer      *quiz.QuizContainer
	AttemptContainer   *attempt.AttemptContainer
	AnalyticsContainer *analytics.AnalyticsContainer
	SearchContainer    *search.SearchContainer
	ReportContainer    *report.ReportContainer
	JobsContainer      *jobs.JobsContainer
}

func New() *Container {
	config.Init()
	auth.Init()
	config.InitCrypto()

	ctx := context.Background()
	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(ctx, dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if err := config.DB.AutoMigrate(
		&user.User{},
		&subject.Subject{},
		&chapter.Chapter{},
		&quiz.Quiz{},
		&quiz.Question{},
		&attempt.QuizAttempt{},
		&attempt.Score{},
	); err != nil {
		log.Fatalf("failed to migrate DB: %v", err)
	}

	catalogCache := cache.New(os.Getenv("REDIS_ADDR"), 5*time.Minute)

	userContainer := user.NewUserContainer(config.DB)
	subjectContainer := subject.NewSubjectContainer(config.DB, catalogCache)
	chapterContainer := chapter.NewChapterContainer(config.DB, subjectContainer.Repo, catalogCache)
	quizContainer := quiz.NewQuizContainer(config.DB, chapterContainer.Repo, catalogCache)
	attemptContainer := attempt.NewAttemptContainer(config.DB, quizContainer.Repo)
	analyticsContainer := analytics.NewAnalyticsContainer(config.DB, subjectContainer.Repo)
	searchContainer := search.NewSearchContainer(subjectContainer.Repo, chapterContainer.Repo, quizContainer.Repo)

	narrative, err := report.NewGeminiNarrative(ctx)
	if err != nil {
		config.Logger().WithError(err).Warn("Gemini unavailable, monthly reports will use the fallback notice")
		narrative = report.NewUnavailableNarrative(err)
	}
	mailer, err := report.NewSMTPMailer()
	if err != nil {
		log.Fatalf("failed to configure mailer: %v", err)
	}

	reportContainer := report.NewReportContainer(config.DB, userContainer.Repo, narrative, mailer)

	jobsContainer, err := jobs.NewJobsContainer(
		userContainer.Repo,
		quizContainer.Repo,
		reportContainer.Service,
		mailer,
	)
	if err != nil {
		log.Fatalf("failed to configure jobs: %v", err)
	}

	return &Container{
		UserContainer:      userContainer,
		SubjectContainer:   subjectContainer,
		ChapterContainer:   chapterContainer,
		QuizContainer:      quizContainer,
		AttemptContainer:   attemptContainer,
		AnalyticsContainer: analyticsContainer,
		SearchContainer:    searchContainer,
		ReportContainer:    reportContainer,
		JobsContainer:      jobsContainer,
	}
}

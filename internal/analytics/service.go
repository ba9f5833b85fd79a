package analytics

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/quizlytics/quizlytics-api/internal/scoring"
	"github.com/quizlytics/quizlytics-api/internal/subject"
	util "github.com/quizlytics/quizlytics-api/internal/utils"
)

var ErrInvalidWindow = errors.New(`days must be a positive integer or "all"`)

// Distribution bucket labels, fixed order from best to worst.
var distributionLabels = []string{"excellent", "good", "average", "needs_improvement"}

type AnalyticsService interface {
	Summary(ctx context.Context, days string) (*SummaryDTO, error)
	UserGrowth(ctx context.Context, days string) (*ChartDTO, error)
	SubjectPerformance(ctx context.Context) ([]*SubjectScoreDTO, error)
	QuizActivity(ctx context.Context, days string) (*ChartDTO, error)
	PerformanceDistribution(ctx context.Context) ([]*DistributionBucketDTO, error)
}

type analyticsService struct {
	repo        AnalyticsRepository
	subjectRepo subject.SubjectRepository
	now         func() time.Time
}

func NewService(repo AnalyticsRepository, subjectRepo subject.SubjectRepository) AnalyticsService {
	return &analyticsService{repo: repo, subjectRepo: subjectRepo, now: time.Now}
}

// parseWindow converts the days query value to a cutoff instant. "all" or
// empty means no cutoff.
func (s *analyticsService) parseWindow(days string) (*time.Time, error) {
	if days == "" || days == "all" {
		return nil, nil
	}
	n, err := strconv.Atoi(days)
	if err != nil || n <= 0 {
		return nil, ErrInvalidWindow
	}
	cutoff := s.now().UTC().AddDate(0, 0, -n)
	return &cutoff, nil
}

func (s *analyticsService) Summary(ctx context.Context, days string) (*SummaryDTO, error) {
	cutoff, err := s.parseWindow(days)
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.repo.CountUsers()
	if err != nil {
		return nil, err
	}

	activeCutoff := time.Time{}
	if cutoff != nil {
		activeCutoff = *cutoff
	}
	activeUsers, err := s.repo.CountActiveUsers(activeCutoff)
	if err != nil {
		return nil, err
	}

	quizzesTaken, err := s.repo.CountCompletedAttempts(cutoff)
	if err != nil {
		return nil, err
	}

	details, err := s.repo.ScoreDetails(cutoff)
	if err != nil {
		return nil, err
	}
	var tally scoring.Tally
	for _, d := range details {
		tally.Add(d.SelectedOption, d.CorrectOption)
	}

	return &SummaryDTO{
		TotalUsers:   totalUsers,
		ActiveUsers:  activeUsers,
		QuizzesTaken: quizzesTaken,
		AvgScore:     tally.Percent1(),
	}, nil
}

func (s *analyticsService) UserGrowth(ctx context.Context, days string) (*ChartDTO, error) {
	cutoff, err := s.parseWindow(days)
	if err != nil {
		return nil, err
	}

	times, err := s.repo.UserCreationTimes()
	if err != nil {
		return nil, err
	}
	return bucketByDay(times, cutoff), nil
}

func (s *analyticsService) QuizActivity(ctx context.Context, days string) (*ChartDTO, error) {
	cutoff, err := s.parseWindow(days)
	if err != nil {
		return nil, err
	}

	times, err := s.repo.CompletedAttemptTimes(cutoff)
	if err != nil {
		return nil, err
	}
	return bucketByDay(times, cutoff), nil
}

func (s *analyticsService) SubjectPerformance(ctx context.Context) ([]*SubjectScoreDTO, error) {
	subjects, err := s.subjectRepo.FindAll()
	if err != nil {
		return nil, err
	}
	details, err := s.repo.ScoreDetails(nil)
	if err != nil {
		return nil, err
	}

	tallies := make(map[uuid.UUID]*scoring.Tally, len(subjects))
	attempts := make(map[uuid.UUID]map[uuid.UUID]struct{}, len(subjects))
	for _, d := range details {
		t, ok := tallies[d.SubjectID]
		if !ok {
			t = &scoring.Tally{}
			tallies[d.SubjectID] = t
			attempts[d.SubjectID] = make(map[uuid.UUID]struct{})
		}
		t.Add(d.SelectedOption, d.CorrectOption)
		attempts[d.SubjectID][d.AttemptID] = struct{}{}
	}

	out := make([]*SubjectScoreDTO, 0, len(subjects))
	for _, subj := range subjects {
		dto := &SubjectScoreDTO{
			SubjectID:   subj.ID.String(),
			SubjectName: subj.Name,
		}
		if t, ok := tallies[subj.ID]; ok {
			dto.AvgScore = t.Percent1()
			dto.Attempted = len(attempts[subj.ID])
		}
		out = append(out, dto)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AvgScore != out[j].AvgScore {
			return out[i].AvgScore > out[j].AvgScore
		}
		return out[i].SubjectName < out[j].SubjectName
	})
	return out, nil
}

func (s *analyticsService) PerformanceDistribution(ctx context.Context) ([]*DistributionBucketDTO, error) {
	details, err := s.repo.ScoreDetails(nil)
	if err != nil {
		return nil, err
	}

	perAttempt := make(map[uuid.UUID]*scoring.Tally)
	for _, d := range details {
		t, ok := perAttempt[d.AttemptID]
		if !ok {
			t = &scoring.Tally{}
			perAttempt[d.AttemptID] = t
		}
		t.Add(d.SelectedOption, d.CorrectOption)
	}

	counts := make([]int, len(distributionLabels))
	for _, t := range perAttempt {
		// Attempts with no questions never produce score rows, so every
		// tally here has Total > 0.
		counts[bucketIndex(t.Exact())]++
	}

	out := make([]*DistributionBucketDTO, 0, len(distributionLabels))
	for i, label := range distributionLabels {
		out = append(out, &DistributionBucketDTO{Label: label, Count: counts[i]})
	}
	return out, nil
}

func bucketIndex(pct float64) int {
	switch {
	case pct >= 90:
		return 0
	case pct >= 75:
		return 1
	case pct >= 60:
		return 2
	default:
		return 3
	}
}

// bucketByDay groups instants by calendar day in the reporting timezone and
// returns ascending labels with counts.
func bucketByDay(times []time.Time, cutoff *time.Time) *ChartDTO {
	counts := make(map[string]int)
	for _, t := range times {
		if cutoff != nil && t.Before(*cutoff) {
			continue
		}
		counts[util.DateLabel(t)]++
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	values := make([]int, 0, len(labels))
	for _, label := range labels {
		values = append(values, counts[label])
	}
	return &ChartDTO{Labels: labels, Values: values}
}

package analytics

type SummaryDTO struct {
	TotalUsers   int64   `json:"total_users"`
	ActiveUsers  int64   `json:"active_users"`
	QuizzesTaken int64   `json:"quizzes_taken"`
	AvgScore     float64 `json:"avg_score"`
}

// ChartDTO is a pair of parallel arrays feeding a dashboard chart, sorted
// ascending by date label.
type ChartDTO struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

type SubjectScoreDTO struct {
	SubjectID   string  `json:"subject_id"`
	SubjectName string  `json:"subject_name"`
	AvgScore    float64 `json:"avg_score"`
	Attempted   int     `json:"attempted"`
}

type DistributionBucketDTO struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

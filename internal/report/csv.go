package report

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/google/uuid"

	"github.com/quizlytics/quizlytics-api/internal/scoring"
	util "github.com/quizlytics/quizlytics-api/internal/utils"
)

// buildScoresCSV writes one line per score row: the raw answer sheet.
func buildScoresCSV(rows []*ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"user_id", "user_name", "user_email", "quiz_id", "subject", "chapter",
		"question", "selected_option", "correct_option", "is_correct", "timestamp",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range rows {
		selected := ""
		if row.SelectedOption != nil {
			selected = strconv.Itoa(*row.SelectedOption)
		}
		record := []string{
			row.UserID.String(),
			row.UserName,
			row.UserEmail,
			row.QuizID.String(),
			row.SubjectName,
			row.ChapterName,
			row.QuestionStatement,
			selected,
			strconv.Itoa(row.CorrectOption),
			strconv.FormatBool(scoring.IsCorrect(row.SelectedOption, row.CorrectOption)),
			row.CreatedAt.In(util.ReportingLocation()).Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// buildPerformanceCSV groups the score rows per attempt and writes one
// summary line per attempt.
func buildPerformanceCSV(rows []*ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"user_id", "user_name", "user_email", "quiz_id", "subject", "chapter",
		"start_time", "end_time", "time_spent_seconds",
		"correct_answers", "total_questions", "score_percentage",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	type attemptGroup struct {
		row   *ExportRow
		tally scoring.Tally
	}
	order := make([]uuid.UUID, 0)
	groups := make(map[uuid.UUID]*attemptGroup)
	for _, row := range rows {
		g, ok := groups[row.AttemptID]
		if !ok {
			g = &attemptGroup{row: row}
			groups[row.AttemptID] = g
			order = append(order, row.AttemptID)
		}
		g.tally.Add(row.SelectedOption, row.CorrectOption)
	}

	for _, id := range order {
		g := groups[id]
		endTime := ""
		if g.row.AttemptEnd != nil {
			endTime = g.row.AttemptEnd.In(util.ReportingLocation()).Format("2006-01-02 15:04:05")
		}
		timeSpent := ""
		if g.row.TimeSpent != nil {
			timeSpent = strconv.Itoa(*g.row.TimeSpent)
		}
		record := []string{
			g.row.UserID.String(),
			g.row.UserName,
			g.row.UserEmail,
			g.row.QuizID.String(),
			g.row.SubjectName,
			g.row.ChapterName,
			g.row.AttemptStart.In(util.ReportingLocation()).Format("2006-01-02 15:04:05"),
			endTime,
			timeSpent,
			strconv.Itoa(g.tally.Correct),
			strconv.Itoa(g.tally.Total),
			strconv.Itoa(g.tally.Percent()),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

package report

import (
	"bytes"
	"html/template"
)

var monthlyTemplate = template.Must(template.New("monthly").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; color: #333; margin: 0; padding: 24px; }
  .card { display: inline-block; background: #f5f7fa; border-radius: 8px; padding: 16px 24px; margin: 0 8px 16px 0; }
  .card .value { font-size: 24px; font-weight: bold; color: #2c5aa0; }
  .card .label { font-size: 12px; color: #777; text-transform: uppercase; }
  table { border-collapse: collapse; width: 100%; margin-bottom: 24px; }
  th, td { border: 1px solid #ddd; padding: 8px 12px; text-align: left; font-size: 14px; }
  th { background: #2c5aa0; color: #fff; }
  .narrative { background: #fffbe8; border-left: 4px solid #e5b800; padding: 12px 16px; margin-bottom: 24px; }
</style>
</head>
<body>
<h2>Quiz Performance Report &mdash; {{.Period}}</h2>
<p>Hi {{.UserName}}, here is how you did this month.</p>

<div>
  <div class="card"><div class="value">{{.Totals.AttemptCount}}</div><div class="label">Quizzes Taken</div></div>
  <div class="card"><div class="value">{{printf "%.1f" .Totals.Accuracy}}%</div><div class="label">Overall Accuracy</div></div>
  <div class="card"><div class="value">{{.Totals.TotalCorrect}}/{{.Totals.TotalQuestions}}</div><div class="label">Correct Answers</div></div>
</div>

{{if .BestQuiz}}<p>Your best result: <strong>{{.BestQuiz.Label}}</strong> with {{printf "%.1f" .BestQuiz.Percentage}}%.</p>{{end}}

{{if .Narrative}}<div class="narrative">{{.Narrative}}</div>{{end}}

<h3>Subjects (weakest first)</h3>
<table>
  <tr><th>Subject</th><th>Accuracy</th><th>Correct</th><th>Questions</th></tr>
  {{range .Subjects}}
  <tr><td>{{.SubjectName}}</td><td>{{printf "%.1f" .Accuracy}}%</td><td>{{.Correct}}</td><td>{{.Total}}</td></tr>
  {{end}}
</table>

<h3>Quiz History</h3>
<table>
  <tr><th>Quiz</th><th>Score</th><th>Correct</th><th>Questions</th><th>Completed</th></tr>
  {{range .Quizzes}}
  <tr><td>{{.Label}}</td><td>{{printf "%.1f" .Percentage}}%</td><td>{{.Correct}}</td><td>{{.Total}}</td><td>{{.CompletionDate}}</td></tr>
  {{end}}
</table>

<p style="color:#777;font-size:12px;">You are receiving this because you have an account on Quizlytics.</p>
</body>
</html>`))

// RenderMonthlyHTML renders the report to the HTML email body.
func RenderMonthlyHTML(report *MonthlyReport) (string, error) {
	var buf bytes.Buffer
	if err := monthlyTemplate.Execute(&buf, report); err != nil {
		return "", err
	}
	return buf.String(), nil
}

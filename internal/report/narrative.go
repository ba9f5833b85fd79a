package report

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/quizlytics/quizlytics-api/internal/config"
)

// FallbackNarrative is substituted when the model call fails; the report is
// still assembled and sent.
const FallbackNarrative = "Your personalized insights could not be generated this month. " +
	"Please review the statistics below for a summary of your performance."

type NarrativeProvider interface {
	Generate(ctx context.Context, report *MonthlyReport) (string, error)
}

type geminiNarrative struct {
	client *genai.Client
}

func NewGeminiNarrative(ctx context.Context) (NarrativeProvider, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiNarrative{client: client}, nil
}

type unavailableNarrative struct {
	err error
}

// NewUnavailableNarrative stands in when no model client could be built;
// every Generate call fails so callers use the fallback notice.
func NewUnavailableNarrative(err error) NarrativeProvider {
	return unavailableNarrative{err: err}
}

func (p unavailableNarrative) Generate(ctx context.Context, report *MonthlyReport) (string, error) {
	return "", fmt.Errorf("narrative provider unavailable: %w", p.err)
}

const narrativeSystemPrompt = `You are a study coach writing a short monthly performance summary for a quiz platform user.

Rules:
1. Write 2 to 3 short paragraphs of plain prose, no markdown, no lists.
2. Open by addressing the user by first name.
3. Mention the overall accuracy and the number of quizzes taken.
4. Point out the weakest subject and suggest focusing on it next month.
5. Close on an encouraging note. Never invent numbers that are not in the data.`

func buildNarrativePrompt(report *MonthlyReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User: %s\nPeriod: %s\n", report.UserName, report.Period)
	fmt.Fprintf(&b, "Quizzes taken: %d\nOverall accuracy: %.1f%% (%d/%d)\n",
		report.Totals.AttemptCount, report.Totals.Accuracy,
		report.Totals.TotalCorrect, report.Totals.TotalQuestions)
	if report.BestQuiz != nil {
		fmt.Fprintf(&b, "Best quiz: %s (%.1f%%)\n", report.BestQuiz.Label, report.BestQuiz.Percentage)
	}
	b.WriteString("Subjects, weakest first:\n")
	for _, subj := range report.Subjects {
		fmt.Fprintf(&b, "- %s: %.1f%% (%d/%d)\n", subj.SubjectName, subj.Accuracy, subj.Correct, subj.Total)
	}
	return b.String()
}

func (p *geminiNarrative) Generate(ctx context.Context, report *MonthlyReport) (string, error) {
	log := config.WithContext(ctx)
	prompt := narrativeSystemPrompt + "\n\n" + buildNarrativePrompt(report)

	result, err := p.client.Models.GenerateContent(
		ctx,
		"gemini-2.0-flash",
		genai.Text(prompt),
		nil,
	)
	if err != nil {
		log.WithError(err).Error("Gemini narrative generation failed")
		return "", fmt.Errorf("failed to generate narrative: %w", err)
	}

	raw := strings.TrimSpace(result.Text())
	if raw == "" {
		return "", errors.New("empty response from model")
	}
	return raw, nil
}

// Package scoring holds the single correctness rule shared by attempt
// results, analytics aggregates and report assembly. An unanswered question
// (nil selection) never counts as correct.
package scoring

import "math"

func IsCorrect(selected *int, correct int) bool {
	return selected != nil && *selected == correct
}

// Tally accumulates pooled correct/total counts. Pooled means Σcorrect over
// Σtotal across a group of attempts, which is not the same as averaging
// per-attempt percentages when question counts differ.
type Tally struct {
	Correct int
	Total   int
}

func (t *Tally) Add(selected *int, correct int) {
	t.Total++
	if IsCorrect(selected, correct) {
		t.Correct++
	}
}

func (t *Tally) Merge(other Tally) {
	t.Correct += other.Correct
	t.Total += other.Total
}

// Percent returns the integer percentage, rounded to nearest. 0 when the
// tally is empty.
func (t Tally) Percent() int {
	if t.Total == 0 {
		return 0
	}
	return int(math.Round(float64(t.Correct) / float64(t.Total) * 100))
}

// Percent1 returns the percentage rounded to one decimal place.
func (t Tally) Percent1() float64 {
	if t.Total == 0 {
		return 0
	}
	return Round1(float64(t.Correct) / float64(t.Total) * 100)
}

// Exact returns the unrounded percentage, used for bucket classification.
func (t Tally) Exact() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Total) * 100
}

func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

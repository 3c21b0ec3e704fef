// Package recommend turns a learner's recent analyses and conversations into
// practice recommendations and dashboard statistics. Everything here is pure
// computation over caller-supplied slices, ordered newest first.
package recommend

import (
	"math"
	"sort"

	"github.com/vytor/kaiwa/internal/models"
)

// ErrorSummary is the per-type breakdown of learner mistakes.
type ErrorSummary struct {
	WeakPoints   []models.ErrorStat
	StrongPoints []models.ErrorStat
	TotalErrors  int
}

// roundHalfUp rounds to the nearest integer with halves going up.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// ErrorStats counts every recognised error across analyses and splits the
// four error types into weak and strong points. Weak points are ordered by
// count descending, strong points ascending; ties keep taxonomy order.
func ErrorStats(analyses []models.Analysis) ErrorSummary {
	counts := make(map[models.ErrorType]int, len(models.ErrorTypes))
	total := 0
	for _, a := range analyses {
		for _, e := range a.Errors {
			if !e.Type.Valid() {
				continue
			}
			counts[e.Type]++
			total++
		}
	}

	stats := make([]models.ErrorStat, 0, len(models.ErrorTypes))
	for _, t := range models.ErrorTypes {
		pct := 0
		if total > 0 {
			pct = roundHalfUp(float64(counts[t]) / float64(total) * 100)
		}
		stats = append(stats, models.ErrorStat{Type: t, Count: counts[t], Percentage: pct})
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Count > stats[j].Count })

	avg := float64(total) / float64(len(models.ErrorTypes))
	weak := make([]models.ErrorStat, 0, len(stats))
	strong := make([]models.ErrorStat, 0, len(stats))
	for _, s := range stats {
		// Any occurrence at all marks the type as weak.
		if float64(s.Count) > avg || s.Count > 0 {
			weak = append(weak, s)
		} else {
			strong = append(strong, s)
		}
	}
	sort.SliceStable(strong, func(i, j int) bool { return strong[i].Count < strong[j].Count })

	return ErrorSummary{WeakPoints: weak, StrongPoints: strong, TotalErrors: total}
}

// AverageScore returns the rounded mean score, or 0 for no analyses.
func AverageScore(analyses []models.Analysis) int {
	if len(analyses) == 0 {
		return 0
	}
	sum := 0
	for _, a := range analyses {
		sum += a.Score
	}
	return roundHalfUp(float64(sum) / float64(len(analyses)))
}

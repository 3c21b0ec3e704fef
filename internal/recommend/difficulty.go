package recommend

import "github.com/vytor/kaiwa/internal/models"

const (
	promoteThreshold = 80
	demoteThreshold  = 50
)

// AdjustDifficulty suggests the next difficulty from recent scores. A current
// value of zero means unknown and is treated as the lowest level; values
// outside the valid range are clamped first.
func AdjustDifficulty(analyses []models.Analysis, current int) int {
	base := clampDifficulty(current)
	if len(analyses) == 0 {
		return base
	}

	avg := AverageScore(analyses)
	switch {
	case avg >= promoteThreshold && base < models.MaxDifficulty:
		return base + 1
	case avg < demoteThreshold && base > models.MinDifficulty:
		return base - 1
	}
	return base
}

func clampDifficulty(d int) int {
	if d < models.MinDifficulty {
		return models.MinDifficulty
	}
	if d > models.MaxDifficulty {
		return models.MaxDifficulty
	}
	return d
}

package scoring

import "github.com/vytor/pastorprompt/internal/models"

// Accuracy returns correct/total as a percentage, or 0 when total is 0.
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// IsCorrect reports whether choice picks the true version.
func IsCorrect(choice models.Choice) bool {
	return choice == models.ChoiceTrue
}

// UserStats builds a UserStats from raw counts.
func UserStats(correct, total int) models.UserStats {
	return models.UserStats{
		CorrectCount:  correct,
		TotalAttempts: total,
		Accuracy:      Accuracy(correct, total),
	}
}

// Apply folds one attempt into s, as if it had been recorded.
func Apply(s models.UserStats, choice models.Choice) models.UserStats {
	correct := s.CorrectCount
	if IsCorrect(choice) {
		correct++
	}
	return UserStats(correct, s.TotalAttempts+1)
}

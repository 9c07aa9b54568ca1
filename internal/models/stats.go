package models

type UserStats struct {
	CorrectCount  int     `json:"correct_count"`
	TotalAttempts int     `json:"total_attempts"`
	Accuracy      float64 `json:"accuracy"`
}

type StoryStats struct {
	StoryID       int64   `json:"story_id"`
	Event         string  `json:"event"`
	CorrectCount  int     `json:"correct_count"`
	TotalAttempts int     `json:"total_attempts"`
	Accuracy      float64 `json:"accuracy"`
}

// Summary aggregates the whole store.
type Summary struct {
	Folders       int     `json:"folders"`
	Stories       int     `json:"stories"`
	Users         int     `json:"users"`
	CorrectCount  int     `json:"correct_count"`
	TotalAttempts int     `json:"total_attempts"`
	Accuracy      float64 `json:"accuracy"`
}

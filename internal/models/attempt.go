package models

import "time"

// Choice is the version a player picked.
type Choice string

const (
	ChoiceTrue Choice = "true"
	ChoiceFake Choice = "fake"
)

// Valid reports whether c is one of the known choices.
func (c Choice) Valid() bool {
	return c == ChoiceTrue || c == ChoiceFake
}

type UserAttempt struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	StoryID   int64     `json:"story_id"`
	Choice    Choice    `json:"choice"`
	Correct   bool      `json:"correct"`
	CreatedAt time.Time `json:"created_at"`
}

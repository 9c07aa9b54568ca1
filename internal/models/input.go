package models

import "strings"

// StoryFields carries the editable text of a story. The validate tags repeat
// the bounds declared in story.go.
type StoryFields struct {
	Event        string  `json:"event" validate:"required,max=100"`
	Introduction string  `json:"introduction" validate:"max=300"`
	TrueVersion  string  `json:"true_version" validate:"min=10,max=2000"`
	FakeVersion  string  `json:"fake_version" validate:"min=10,max=2000"`
	Explanation  string  `json:"explanation" validate:"min=10,max=1000"`
	Hint         *string `json:"hint,omitempty" validate:"omitempty,max=300"`
}

// Normalize trims surrounding whitespace. A hint that is blank after trimming
// is dropped.
func (f StoryFields) Normalize() StoryFields {
	f.Event = strings.TrimSpace(f.Event)
	f.Introduction = strings.TrimSpace(f.Introduction)
	f.TrueVersion = strings.TrimSpace(f.TrueVersion)
	f.FakeVersion = strings.TrimSpace(f.FakeVersion)
	f.Explanation = strings.TrimSpace(f.Explanation)
	if f.Hint != nil {
		hint := strings.TrimSpace(*f.Hint)
		if hint == "" {
			f.Hint = nil
		} else {
			f.Hint = &hint
		}
	}
	return f
}

// Story builds a story in folderID from the fields.
func (f StoryFields) Story(id, folderID int64) Story {
	return Story{
		ID:           id,
		FolderID:     folderID,
		Event:        f.Event,
		Introduction: f.Introduction,
		TrueVersion:  f.TrueVersion,
		FakeVersion:  f.FakeVersion,
		Explanation:  f.Explanation,
		Hint:         f.Hint,
	}
}

// AttemptInput is one guess as submitted by a player. Correct may be omitted,
// in which case it is derived from Choice.
type AttemptInput struct {
	UserID  string `json:"user_id" validate:"required,max=128"`
	StoryID int64  `json:"story_id" validate:"gt=0"`
	Choice  Choice `json:"choice" validate:"required,oneof=true fake"`
	Correct *bool  `json:"correct,omitempty"`
}

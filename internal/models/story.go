package models

type Story struct {
	ID           int64   `json:"id"`
	FolderID     int64   `json:"folder_id"`
	Event        string  `json:"event"`
	Introduction string  `json:"introduction"`
	TrueVersion  string  `json:"true_version"`
	FakeVersion  string  `json:"fake_version"`
	Explanation  string  `json:"explanation"`
	Hint         *string `json:"hint"`
}

// StoryFilter scopes story queries. A zero FolderID, or GeneralFolderID,
// selects every story.
type StoryFilter struct {
	FolderID int64
}

// Field length bounds, counted in characters after trimming.
const (
	EventMaxLen        = 100
	IntroductionMaxLen = 300
	VersionMinLen      = 10
	VersionMaxLen      = 2000
	ExplanationMinLen  = 10
	ExplanationMaxLen  = 1000
	HintMaxLen         = 300
	FolderNameMinLen   = 2
	FolderNameMaxLen   = 50
)

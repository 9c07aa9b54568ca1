package models

// GeneralFolderID is the id of the built-in folder that holds every story.
// It cannot be deleted.
const GeneralFolderID int64 = 1

type Folder struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// IsGeneral reports whether f is the built-in General folder.
func (f Folder) IsGeneral() bool {
	return f.ID == GeneralFolderID
}

type FolderWithStoryCount struct {
	Folder
	StoryCount int `json:"story_count"`
}

// IsAllStoriesScope reports whether folderID selects every story: either no
// folder was given or the General folder was.
func IsAllStoriesScope(folderID int64) bool {
	return folderID == 0 || folderID == GeneralFolderID
}

package api

import (
	"net/http"

	"github.com/vytor/pastorprompt/internal/models"
)

// storyRequest is the body of story create and update. On create the folder
// in the path wins over folder_id. On update an omitted folder_id keeps the
// current folder.
type storyRequest struct {
	models.StoryFields
	FolderID *int64 `json:"folder_id,omitempty"`
}

func (s *Server) handleListStories(w http.ResponseWriter, r *http.Request) {
	folderID, err := parseFolderQuery(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	stories, err := s.StoryService.ListStories(r.Context(), folderID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stories)
}

func (s *Server) handleRandomStory(w http.ResponseWriter, r *http.Request) {
	folderID, err := parseFolderQuery(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	story, err := s.StoryService.RandomStory(r.Context(), folderID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, story)
}

func (s *Server) handleGetStory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	story, err := s.StoryService.GetStory(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, story)
}

func (s *Server) handleCreateStory(w http.ResponseWriter, r *http.Request) {
	folderID, err := parseID(r, "folderId")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req storyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	story, err := s.StoryService.CreateStory(r.Context(), folderID, req.StoryFields)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, story)
}

func (s *Server) handleUpdateStory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req storyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	story, err := s.StoryService.UpdateStory(r.Context(), id, req.FolderID, req.StoryFields)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, story)
}

func (s *Server) handleDeleteStory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.StoryService.DeleteStory(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lazypower/tend/internal/garden"
	"github.com/lazypower/tend/internal/ics"
	"github.com/lazypower/tend/internal/importer"
)

func (s *Server) handleListFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := s.db.ListFriends()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, friends)
}

func (s *Server) handleCreateFriend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string `json:"name"`
		Category      string `json:"category"`
		FrequencyDays int    `json:"frequencyDays"`
		Phone         string `json:"phone"`
		Email         string `json:"email"`
		Photo         string `json:"photo"`
		Notes         string `json:"notes"`
		Birthday      string `json:"birthday"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}
	if req.FrequencyDays < 1 {
		writeError(w, http.StatusBadRequest, "frequencyDays must be >= 1")
		return
	}

	f := garden.NewFriend(uuid.NewString(), req.Name, req.FrequencyDays, s.now())
	f.Category = req.Category
	f.Phone = req.Phone
	f.Email = req.Email
	f.Photo = req.Photo
	f.Notes = req.Notes
	f.Birthday = req.Birthday

	if err := s.db.CreateFriend(f); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (s *Server) loadFriend(w http.ResponseWriter, r *http.Request) *garden.Friend {
	id := chi.URLParam(r, "friendID")
	f, err := s.db.GetFriend(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil
	}
	if f == nil {
		writeError(w, http.StatusNotFound, "friend not found")
		return nil
	}
	return f
}

func (s *Server) handleGetFriend(w http.ResponseWriter, r *http.Request) {
	f := s.loadFriend(w, r)
	if f == nil {
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleUpdateFriend(w http.ResponseWriter, r *http.Request) {
	f := s.loadFriend(w, r)
	if f == nil {
		return
	}

	var req struct {
		Name          *string `json:"name"`
		Category      *string `json:"category"`
		FrequencyDays *int    `json:"frequencyDays"`
		Phone         *string `json:"phone"`
		Email         *string `json:"email"`
		Photo         *string `json:"photo"`
		Notes         *string `json:"notes"`
		Birthday      *string `json:"birthday"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.FrequencyDays != nil && *req.FrequencyDays < 1 {
		writeError(w, http.StatusBadRequest, "frequencyDays must be >= 1")
		return
	}

	if req.Name != nil {
		f.Name = *req.Name
	}
	if req.Category != nil {
		f.Category = *req.Category
	}
	if req.FrequencyDays != nil {
		f.FrequencyDays = *req.FrequencyDays
	}
	if req.Phone != nil {
		f.Phone = *req.Phone
	}
	if req.Email != nil {
		f.Email = *req.Email
	}
	if req.Photo != nil {
		f.Photo = *req.Photo
	}
	if req.Notes != nil {
		f.Notes = *req.Notes
	}
	if req.Birthday != nil {
		f.Birthday = *req.Birthday
	}

	if err := s.db.SaveFriend(*f); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleDeleteFriend(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteFriend(chi.URLParam(r, "friendID")); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	f := s.loadFriend(w, r)
	if f == nil {
		return
	}

	var req struct {
		Type    string `json:"type"`
		Channel string `json:"channel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	action := garden.ContactType(req.Type)
	switch action {
	case garden.Regular, garden.Deep, garden.Quick:
	default:
		writeError(w, http.StatusBadRequest, "type must be REGULAR, DEEP or QUICK")
		return
	}

	res := garden.ProcessContact(*f, action, req.Channel, s.now())
	if res.Changed {
		if err := s.db.SaveFriend(res.Friend); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRemoveLog(w http.ResponseWriter, r *http.Request) {
	f := s.loadFriend(w, r)
	if f == nil {
		return
	}

	updated := garden.RemoveLog(*f, chi.URLParam(r, "logID"))
	if err := s.db.SaveFriend(updated); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	f := s.loadFriend(w, r)
	if f == nil {
		return
	}
	writeJSON(w, http.StatusOK, garden.ComputeTimeStatus(f.LastContacted, f.FrequencyDays, s.now()))
}

func (s *Server) handleNudges(w http.ResponseWriter, r *http.Request) {
	friends, err := s.db.ListFriends()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	nudges := garden.AllNudges(friends)
	if nudges == nil {
		nudges = []garden.Nudge{}
	}
	writeJSON(w, http.StatusOK, nudges)
}

func (s *Server) handleListMeetings(w http.ResponseWriter, r *http.Request) {
	meetings, err := s.db.ListMeetings()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, meetings)
}

func (s *Server) handleCreateMeeting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FriendID string `json:"friendId"`
		Title    string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	m := garden.MeetingRequest{
		ID:        uuid.NewString(),
		FriendID:  req.FriendID,
		Title:     req.Title,
		Status:    garden.MeetingRequested,
		DateAdded: s.now(),
	}
	if err := s.db.CreateMeeting(m); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleUpdateMeeting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status   string `json:"status"`
		Verified bool   `json:"verified"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	status := garden.MeetingStatus(req.Status)
	switch status {
	case garden.MeetingRequested, garden.MeetingScheduled, garden.MeetingComplete:
	default:
		writeError(w, http.StatusBadRequest, "status must be REQUESTED, SCHEDULED or COMPLETE")
		return
	}

	if err := s.db.UpdateMeeting(chi.URLParam(r, "meetingID"), status, req.Verified); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeleteMeeting(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteMeeting(chi.URLParam(r, "meetingID")); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body failed")
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "empty body")
		return
	}

	res, err := importer.Import(s.db, data, s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleExportCalendar(w http.ResponseWriter, r *http.Request) {
	friends, err := s.db.ListFriends()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/calendar")
	w.Header().Set("Content-Disposition", `attachment; filename="tend.ics"`)
	w.Write(ics.Export(friends, s.now()))
}

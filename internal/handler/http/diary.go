// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-diary-keeper/internal/service"
	"github.com/MKhiriev/go-diary-keeper/internal/utils"
	"github.com/MKhiriev/go-diary-keeper/models"
)

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserIDInContext, "list entries")
		return
	}

	entries, err := h.services.DiaryService.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "listing diary entries failed")
		return
	}
	if entries == nil {
		entries = []models.DiaryEntry{}
	}

	utils.WriteJSON(w, models.DiaryEntryList{Entries: entries, Length: len(entries)}, http.StatusOK)
}

func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request) {
	userID, entryID, err := entryParams(r)
	if err != nil {
		writeError(w, r, err, "get entry")
		return
	}

	entry, err := h.services.DiaryService.Get(r.Context(), userID, entryID)
	if err != nil {
		writeError(w, r, err, "getting diary entry failed")
		return
	}

	utils.WriteJSON(w, entry, http.StatusOK)
}

func (h *Handler) createEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserIDInContext, "create entry")
		return
	}

	var fields models.EnvelopeFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, r, errors.Join(service.ErrInvalidDataProvided, err), "Invalid JSON was passed")
		return
	}

	entry, err := h.services.DiaryService.Create(r.Context(), models.DiaryEntry{UserID: userID, EnvelopeFields: fields})
	if err != nil {
		writeError(w, r, err, "creating diary entry failed")
		return
	}

	utils.WriteJSON(w, entry, http.StatusCreated)
}

func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) {
	userID, entryID, err := entryParams(r)
	if err != nil {
		writeError(w, r, err, "update entry")
		return
	}

	var fields models.EnvelopeFields
	if err = json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, r, errors.Join(service.ErrInvalidDataProvided, err), "Invalid JSON was passed")
		return
	}

	entry, err := h.services.DiaryService.Update(r.Context(), models.DiaryEntry{ID: entryID, UserID: userID, EnvelopeFields: fields})
	if err != nil {
		writeError(w, r, err, "updating diary entry failed")
		return
	}

	utils.WriteJSON(w, entry, http.StatusOK)
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	userID, entryID, err := entryParams(r)
	if err != nil {
		writeError(w, r, err, "delete entry")
		return
	}

	if err = h.services.DiaryService.Delete(r.Context(), userID, entryID); err != nil {
		writeError(w, r, err, "deleting diary entry failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// entryParams returns the session user and the {id} path parameter.
func entryParams(r *http.Request) (int64, int64, error) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return 0, 0, ErrNoUserIDInContext
	}

	entryID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		return 0, 0, err
	}
	return userID, entryID, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidEntryID
	}
	return id, nil
}

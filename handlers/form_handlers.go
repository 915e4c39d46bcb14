package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wrappedform/wrappedform/document"
	"github.com/wrappedform/wrappedform/store"
	"github.com/wrappedform/wrappedform/story"
)

func requestUserID(r *http.Request) string {
	userID := r.Context().Value("userID").(uint)
	return strconv.FormatUint(uint64(userID), 10)
}

// loadOwnedForm fetches the form and enforces ownership. It writes the
// error response itself, so callers just bail on nil.
func loadOwnedForm(w http.ResponseWriter, r *http.Request) *document.Form {
	id := mux.Vars(r)["id"]
	form, err := store.Active.GetForm(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Form not found", http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return nil
	}
	if form.UserID != requestUserID(r) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return nil
	}
	return form
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func CreateForm(w http.ResponseWriter, r *http.Request) {
	// An empty body creates a pure default form; a partial body keeps
	// the factory defaults for absent fields. Malformed JSON is rejected.
	form := document.NewForm()
	if err := json.NewDecoder(r.Body).Decode(form); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := store.Active.CreateForm(r.Context(), form, requestUserID(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func ListForms(w http.ResponseWriter, r *http.Request) {
	forms, err := store.Active.ListForms(r.Context(), requestUserID(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, forms)
}

func GetForm(w http.ResponseWriter, r *http.Request) {
	form := loadOwnedForm(w, r)
	if form == nil {
		return
	}
	writeJSON(w, http.StatusOK, form)
}

func UpdateForm(w http.ResponseWriter, r *http.Request) {
	form := loadOwnedForm(w, r)
	if form == nil {
		return
	}

	var patch store.FormPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := store.Active.UpdateForm(r.Context(), form.ID, patch); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	updated, err := store.Active.GetForm(r.Context(), form.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func DeleteForm(w http.ResponseWriter, r *http.Request) {
	form := loadOwnedForm(w, r)
	if form == nil {
		return
	}
	if err := store.Active.DeleteForm(r.Context(), form.ID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func setStatus(w http.ResponseWriter, r *http.Request, status document.Status) {
	form := loadOwnedForm(w, r)
	if form == nil {
		return
	}
	patch := store.FormPatch{Status: &status}
	if err := store.Active.UpdateForm(r.Context(), form.ID, patch); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	form.Status = status
	writeJSON(w, http.StatusOK, form)
}

func PublishForm(w http.ResponseWriter, r *http.Request) {
	setStatus(w, r, document.StatusActive)
}

func CloseForm(w http.ResponseWriter, r *http.Request) {
	setStatus(w, r, document.StatusClosed)
}

// PreviewStory renders the story card with placeholder data, the same
// card the designer preview shows before anyone has submitted.
func PreviewStory(w http.ResponseWriter, r *http.Request) {
	form := loadOwnedForm(w, r)
	if form == nil {
		return
	}
	card := story.Render(form.Story, nil, form.Fields)
	writeJSON(w, http.StatusOK, card)
}

func ListFormSubmissions(w http.ResponseWriter, r *http.Request) {
	form := loadOwnedForm(w, r)
	if form == nil {
		return
	}
	subs, err := store.Active.ListSubmissions(r.Context(), form.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

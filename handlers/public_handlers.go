package handlers

// Public endpoints serve participants. They are unauthenticated, keyed
// by form ID, and only ever expose active forms.

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/wrappedform/wrappedform/document"
	"github.com/wrappedform/wrappedform/participant"
	"github.com/wrappedform/wrappedform/store"
)

// publicForm is the participant-facing slice of a form. Counters and
// ownership stay private.
type publicForm struct {
	ID      string                 `json:"id"`
	Title   string                 `json:"title"`
	Fields  []document.FormField   `json:"fields"`
	Landing document.LandingConfig `json:"landingConfig"`
}

func loadActiveForm(w http.ResponseWriter, r *http.Request) *document.Form {
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
	if form.Status != document.StatusActive {
		http.Error(w, "Form not found", http.StatusNotFound)
		return nil
	}
	return form
}

func ViewForm(w http.ResponseWriter, r *http.Request) {
	form := loadActiveForm(w, r)
	if form == nil {
		return
	}

	// The view still renders when the counter bump fails, but the
	// failure is never dropped silently.
	if err := store.Active.IncrementStat(r.Context(), form.ID, store.StatViews); err != nil {
		logrus.WithError(err).Error("Failed to increment view counter")
	}

	writeJSON(w, http.StatusOK, publicForm{
		ID:      form.ID,
		Title:   form.Title,
		Fields:  form.Fields,
		Landing: form.Landing,
	})
}

// SubmitForm runs a participant session over the posted answers: every
// required field must be answered, the submission is persisted, and the
// personalized story card comes back in the response.
func SubmitForm(w http.ResponseWriter, r *http.Request) {
	form := loadActiveForm(w, r)
	if form == nil {
		return
	}

	var req struct {
		Answers map[string]any `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session := participant.NewSession(form, store.Active)
	if err := session.Run(r.Context(), req.Answers); err != nil {
		if errors.Is(err, participant.ErrAnswerRequired) || errors.Is(err, participant.ErrNoFields) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if err := store.Active.IncrementStat(r.Context(), form.ID, store.StatSubmissions); err != nil {
		logrus.WithError(err).Error("Failed to increment submission counter")
	}
	TriggerWebhooks(form.ID, session.SubmissionID())

	card, err := session.Reveal()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"submission_id": session.SubmissionID(),
		"story":         card,
	})
}

// ShareForm bumps the share counter when a participant shares their
// story card.
func ShareForm(w http.ResponseWriter, r *http.Request) {
	form := loadActiveForm(w, r)
	if form == nil {
		return
	}
	if err := store.Active.IncrementStat(r.Context(), form.ID, store.StatShares); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Share recorded"})
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/wrappedform/wrappedform/models"
	"github.com/wrappedform/wrappedform/store"
)

func CreateWebhook(w http.ResponseWriter, r *http.Request) {
	var webhook models.Webhook
	if err := json.NewDecoder(r.Body).Decode(&webhook); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID := r.Context().Value("userID").(uint)
	webhook.UserID = userID

	if err := store.Active.CreateWebhook(r.Context(), &webhook); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, webhook)
}

func ListWebhooks(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(uint)
	webhooks, err := store.Active.ListWebhooks(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, webhooks)
}

func UpdateWebhook(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["webhookID"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid webhook ID", http.StatusBadRequest)
		return
	}

	var updated models.Webhook
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := store.Active.UpdateWebhook(r.Context(), uint(id), &updated); err != nil {
		http.Error(w, "Webhook not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func DeleteWebhook(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["webhookID"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid webhook ID", http.StatusBadRequest)
		return
	}

	if err := store.Active.DeleteWebhook(r.Context(), uint(id)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TriggerWebhooks notifies every hook registered on a form after a
// submission lands. Delivery is fire and forget.
func TriggerWebhooks(formID, submissionID string) {
	webhooks, err := store.Active.ListFormWebhooks(context.Background(), formID)
	if err != nil {
		logrus.WithError(err).Error("Failed to list webhooks")
		return
	}

	for _, webhook := range webhooks {
		go func(hook models.Webhook) {
			payload := map[string]interface{}{
				"event":         "submission_created",
				"form_id":       formID,
				"submission_id": submissionID,
			}
			jsonPayload, _ := json.Marshal(payload)

			req, _ := http.NewRequest("POST", hook.URL, bytes.NewBuffer(jsonPayload))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Webhook-Secret", hook.Secret)

			client := &http.Client{}
			resp, err := client.Do(req)
			if err != nil {
				logrus.WithError(err).Error("Error triggering webhook")
			} else {
				defer resp.Body.Close()
				logrus.Infof("Webhook triggered. Status: %s", resp.Status)
			}
		}(webhook)
	}
}

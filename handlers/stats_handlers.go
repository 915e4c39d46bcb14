package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/wrappedform/wrappedform/document"
	"github.com/wrappedform/wrappedform/store"
)

// GetFormStats returns the form's counters plus a per-field breakdown
// of the collected submissions.
func GetFormStats(w http.ResponseWriter, r *http.Request) {
	form := loadOwnedForm(w, r)
	if form == nil {
		return
	}

	submissions, err := store.Active.ListSubmissions(r.Context(), form.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	stats := map[string]interface{}{
		"views":            form.Stats.Views,
		"submissions":      form.Stats.Submissions,
		"shares":           form.Stats.Shares,
		"totalSubmissions": len(submissions),
		"fieldBreakdown":   fieldBreakdown(form.Fields, submissions),
	}

	writeJSON(w, http.StatusOK, stats)
}

func fieldBreakdown(fields []document.FormField, submissions []document.Submission) map[string]interface{} {
	breakdown := make(map[string]interface{})
	for _, field := range fields {
		fa := make(map[string]interface{})

		switch {
		case field.Type.HasOptions():
			optionCounts := make(map[string]int)
			for _, sub := range submissions {
				if value, ok := sub.Data[field.ID]; ok {
					optionCounts[fmt.Sprint(value)]++
				}
			}
			fa["optionCounts"] = optionCounts
		default:
			answers := []string{}
			for _, sub := range submissions {
				if value, ok := sub.Data[field.ID]; ok {
					answers = append(answers, fmt.Sprint(value))
				}
			}
			fa["answers"] = answers
		}

		breakdown[field.ID] = fa
	}
	return breakdown
}

// ExportFormData streams the form's submissions as CSV, one row per
// submission with a column per field.
func ExportFormData(w http.ResponseWriter, r *http.Request) {
	form := loadOwnedForm(w, r)
	if form == nil {
		return
	}

	submissions, err := store.Active.ListSubmissions(r.Context(), form.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment;filename=form_data.csv")

	csvWriter := csv.NewWriter(w)

	// Write header
	header := []string{"SubmissionID", "Timestamp"}
	for _, field := range form.Fields {
		header = append(header, field.Label)
	}
	csvWriter.Write(header)

	// Write data
	for _, sub := range submissions {
		row := []string{sub.ID, sub.CreatedAt}
		for _, field := range form.Fields {
			value := ""
			if v, ok := sub.Data[field.ID]; ok {
				value = fmt.Sprint(v)
			}
			row = append(row, value)
		}
		csvWriter.Write(row)
	}

	csvWriter.Flush()
}

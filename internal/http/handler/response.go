package handler

import (
	"encoding/json"
	"net/http"

	"jobboard/internal/job"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"message": msg})
}

func writeValidation(w http.ResponseWriter, ve *job.ValidationError) {
	body := map[string]any{"fields": ve.Fields()}
	if len(ve.Missing) > 0 {
		body["message"] = "Missing required fields"
	} else {
		body["message"] = "Invalid field values"
	}
	for _, f := range ve.Invalid {
		if f == "jobType" {
			body["jobTypes"] = job.JobTypes()
		}
	}
	writeJSON(w, http.StatusBadRequest, body)
}

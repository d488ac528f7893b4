package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"jobboard/internal/auth"
	"jobboard/internal/job"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type JobHandler struct {
	Svc *job.Service
	Log *zap.Logger
}

// List serves GET /jobs?limit=&offset=&salary=&name=.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	f, p := parseListQuery(r)

	jobs, err := h.Svc.List(r.Context(), f, p)
	if err != nil {
		h.Log.Error("list jobs", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Error in fetching jobs")
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func parseListQuery(r *http.Request) (job.Filter, job.Page) {
	q := r.URL.Query()

	var f job.Filter
	if v := strings.TrimSpace(q.Get("salary")); v != "" {
		if s, err := strconv.ParseFloat(v, 64); err == nil {
			// exact match, expressed as a closed range with equal bounds
			f.SalaryMin = &s
			f.SalaryMax = &s
		}
	}
	f.CompanyName = strings.TrimSpace(q.Get("name"))

	p := job.Page{Offset: 0, Limit: job.DefaultLimit}
	if n, err := strconv.Atoi(strings.TrimSpace(q.Get("offset"))); err == nil && n > 0 {
		p.Offset = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(q.Get("limit"))); err == nil && n > 0 {
		p.Limit = n
	}
	return f, p
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	j, err := h.Svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Job not found")
			return
		}
		h.Log.Error("get job", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Error in fetching job")
		return
	}
	writeJSON(w, http.StatusOK, j)
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	c, _ := auth.CallerFromContext(r.Context())

	var in job.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	j, err := h.Svc.Create(r.Context(), c.ID, in)
	if err != nil {
		var ve *job.ValidationError
		if errors.As(err, &ve) {
			writeValidation(w, ve)
			return
		}
		h.Log.Error("create job", zap.String("user_id", c.ID), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Error in creating job")
		return
	}
	writeJSON(w, http.StatusOK, j)
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	c, _ := auth.CallerFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var in job.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		// unknown ids and foreign postings answer the same with or without a body
		if err := h.Svc.CheckOwner(r.Context(), c.ID, id); err != nil {
			h.updateError(w, id, err)
			return
		}
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Svc.Update(r.Context(), c.ID, id, in); err != nil {
		h.updateError(w, id, err)
		return
	}
	writeMessage(w, http.StatusOK, "Job updated")
}

func (h *JobHandler) updateError(w http.ResponseWriter, id string, err error) {
	var ve *job.ValidationError
	switch {
	case errors.Is(err, job.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Job not found")
	case errors.Is(err, job.ErrNotOwner):
		writeMessage(w, http.StatusUnauthorized, "You are not authorized to update this job")
	case errors.As(err, &ve):
		writeValidation(w, ve)
	default:
		h.Log.Error("update job", zap.String("job_id", id), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Error in updating job")
	}
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	c, _ := auth.CallerFromContext(r.Context())
	id := chi.URLParam(r, "id")

	err := h.Svc.Delete(r.Context(), c.ID, id)
	if err != nil {
		switch {
		case errors.Is(err, job.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "Job not found")
		case errors.Is(err, job.ErrNotOwner):
			writeMessage(w, http.StatusUnauthorized, "You are not authorized to delete this job")
		default:
			h.Log.Error("delete job", zap.String("job_id", id), zap.Error(err))
			writeMessage(w, http.StatusInternalServerError, "Error in deleting job")
		}
		return
	}
	writeMessage(w, http.StatusOK, "Job deleted")
}

package handler

import (
	"net/http"

	"jobboard/internal/auth"
)

type MeHandler struct{}

func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	c, _ := auth.CallerFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id": c.ID,
	})
}

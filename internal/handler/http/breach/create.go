package breach

import (
	"net/http"

	"databreach-registry/internal/handler/http/respond"
)

type CreateHandler struct{ Svc Service }

// ServeHTTP registers a breach
// @Summary      Register a data breach
// @Description  Creates the breach together with its entity (resolved by name), the entity's
// @Description  organization types and the breach's media sources, all in one transaction
// @Tags         databreaches
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        breach body breach.Request true "Breach document"
// @Success      201 {object} breach.Document
// @Failure      400 {object} map[string][]string "field-keyed validation errors"
// @Failure      401 {object} map[string]string "missing or invalid credentials"
// @Failure      403 {object} map[string]string "admin role required"
// @Failure      413 {object} map[string]string "request body too large"
// @Failure      429 {object} map[string]string "rate limit exceeded"
// @Router       /databreaches/ [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	doc, err := h.Svc.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, "create", err)
		return
	}
	respond.JSON(w, http.StatusCreated, doc)
}

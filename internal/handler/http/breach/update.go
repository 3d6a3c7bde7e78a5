package breach

import (
	"net/http"

	"databreach-registry/internal/handler/http/respond"
)

type UpdateHandler struct{ Svc Service }

// ServeHTTP updates a breach
// @Summary      Update a data breach
// @Description  Fields left out of the body keep their stored values. When sources is given
// @Description  it replaces the breach's source list; when entity is given, its organization types replace that entity's stored set
// @Tags         databreaches
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id     path int            true "Breach ID"
// @Param        breach body breach.Request true "Breach document"
// @Success      200 {object} breach.Document
// @Failure      400 {object} map[string][]string "field-keyed validation errors"
// @Failure      401 {object} map[string]string "missing or invalid credentials"
// @Failure      403 {object} map[string]string "admin role required"
// @Failure      404 {object} map[string]string "breach not found"
// @Router       /databreaches/{id}/ [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	doc, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, "update", err)
		return
	}
	respond.JSON(w, http.StatusOK, doc)
}

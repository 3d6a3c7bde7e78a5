package breach

import (
	"net/http"

	"databreach-registry/internal/handler/http/respond"
)

type GetHandler struct{ Svc Service }

// ServeHTTP retrieves one breach
// @Summary      Retrieve a data breach
// @Tags         databreaches
// @Produce      json
// @Param        id path int true "Breach ID"
// @Success      200 {object} breach.Document
// @Failure      404 {object} map[string]string "breach not found"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /databreaches/{id}/ [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	doc, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, "get", err)
		return
	}
	respond.JSON(w, http.StatusOK, doc)
}

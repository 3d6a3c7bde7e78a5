package breach

import (
	"net/http"

	"databreach-registry/internal/handler/http/respond"
)

type ListHandler struct{ Svc Service }

// ServeHTTP lists breaches
// @Summary      List data breaches
// @Description  Returns every registered breach as a nested document, ordered by id
// @Tags         databreaches
// @Produce      json
// @Success      200 {array} breach.Document
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /databreaches/ [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	docs, err := h.Svc.List(r.Context())
	if err != nil {
		writeError(w, r, "list", err)
		return
	}
	respond.JSON(w, http.StatusOK, docs)
}

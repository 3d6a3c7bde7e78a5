package breach

import "net/http"

type DeleteHandler struct{ Svc Service }

// ServeHTTP deletes a breach
// @Summary      Delete a data breach
// @Description  Removes the breach and its sources. The entity stays registered
// @Tags         databreaches
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Param        id path int true "Breach ID"
// @Success      204 "No Content"
// @Failure      401 {object} map[string]string "missing or invalid credentials"
// @Failure      403 {object} map[string]string "admin role required"
// @Failure      404 {object} map[string]string "breach not found"
// @Router       /databreaches/{id}/ [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, "delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"databreach-registry/internal/handler/http/requestid"
	"databreach-registry/internal/handler/http/respond"
	authservice "databreach-registry/internal/service/auth"
)

type loginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"your_password"`
}

type tokenResponse struct {
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresIn int64  `json:"expires_in" example:"3600"`
}

// TokenHandler exchanges operator credentials for a short-lived admin JWT.
//
// @Summary      Issue a JWT
// @Description  Authenticates the operator and returns a bearer token for write requests.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Operator credentials"
// @Success      200 {object} tokenResponse
// @Failure      400 {object} map[string]string "Malformed body"
// @Failure      401 {object} map[string]string "Invalid credentials"
// @Failure      429 {object} map[string]string "Rate limit exceeded"
// @Router       /auth/token [post]
func TokenHandler(svc *authservice.AuthService, issuer *TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			RecordTokenIssued("invalid_request", time.Since(start))
			respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		role, err := svc.Authenticate(r.Context(), authservice.Credentials{
			Username: req.Username,
			Password: req.Password,
		})
		if err != nil {
			RecordTokenIssued("invalid_credentials", time.Since(start))
			logger.Warn("token request rejected", slog.String("reason", err.Error()))
			respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": authservice.ErrInvalidCredentials.Error()})
			return
		}

		signed, _, err := issuer.Issue(req.Username, role)
		if err != nil {
			RecordTokenIssued("error", time.Since(start))
			respond.SafeError(w, http.StatusInternalServerError, errors.Join(errors.New("token generation failed"), err))
			return
		}

		RecordTokenIssued("success", time.Since(start))
		logger.Info("token issued", slog.String("subject", req.Username), slog.String("role", role))
		respond.JSON(w, http.StatusOK, tokenResponse{
			Token:     signed,
			ExpiresIn: int64(issuer.TTL().Seconds()),
		})
	}
}

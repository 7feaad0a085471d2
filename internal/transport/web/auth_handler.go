package web

import (
	"log/slog"
	"net/http"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/dto"
)

// Signup creates an account / Crée un compte
//
//	POST /auth/signup {"phone":"770000000","pin":"1234","surname":"Awa","name":"Diop"}
//	201 {"message":"Account created","userId":"..."}
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	limitRequestBody(w, r, maxAuthBodyBytes)

	var req dto.SignupDTOReq
	if !decodeJSON(w, r, &req) {
		return
	}

	userID, err := h.container.AuthSvc.Register(r.Context(), req.Phone, req.Pin, req.Surname, req.Name)
	if err != nil {
		writeServiceError(w, r, err, "Failed to create account")
		return
	}

	writeJSON(w, http.StatusCreated, dto.SignupDTOResponse{
		Message: "Account created",
		UserID:  userID,
	})
}

// Login exchanges phone and PIN for a bearer token / Échange téléphone et PIN contre un jeton
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	limitRequestBody(w, r, maxAuthBodyBytes)

	var req dto.LoginDTOReq
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.container.AuthSvc.Login(r.Context(), req.Phone, req.Pin)
	if err != nil {
		writeServiceError(w, r, err, "Failed to log in")
		return
	}

	slog.Debug("token issued", "request_id", GetRequestID(r.Context()), "user_id", session.User.ID, "expires_at", session.ExpiresAt)
	jsonResponse(w, dto.LoginToDTO(session.User, session.Token, session.ExpiresAt))
}

package handlers

import (
	"net/http"

	"github.com/diagnosis/local-hotel/internal/domain"
	"github.com/diagnosis/local-hotel/internal/http/response"
	"github.com/diagnosis/local-hotel/internal/service"
	"github.com/diagnosis/local-hotel/pkg/logger"
)

// SessionWriter sets and clears the session cookie on a response.
type SessionWriter interface {
	SetSessionCookie(w http.ResponseWriter, token string)
	ClearSessionCookie(w http.ResponseWriter)
}

type AuthHandler struct {
	auth    service.AuthService
	session SessionWriter
}

func NewAuthHandler(auth service.AuthService, session SessionWriter) *AuthHandler {
	return &AuthHandler{auth: auth, session: session}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterGuestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	guest, err := h.auth.Register(r.Context(), &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Data(w, http.StatusCreated, "guest", guest.Filtered())
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginGuestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, guest, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	logger.InfoContext(logger.WithGuestID(r.Context(), guest.ID), "Guest logged in")
	h.session.SetSessionCookie(w, token)
	response.JSON(w, http.StatusOK, map[string]string{
		"status": response.StatusSuccess,
		"token":  token,
	})
}

// Logout clears the cookie. The token itself stays valid until it expires.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request, guest *domain.Guest) {
	h.session.ClearSessionCookie(w)
	response.JSON(w, http.StatusOK, map[string]string{"status": response.StatusSuccess})
}

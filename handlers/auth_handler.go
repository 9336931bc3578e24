package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"institute-events/services"
)

const signupPath = "/auth/signup"

type credentials struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Name     string `json:"name" form:"name"`
}

type AuthHandler struct {
	*Auth
	pages   *Pages
	service *services.AuthService
}

func NewAuthHandler(auth *Auth, pages *Pages, service *services.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth, pages: pages, service: service}
}

func (h *AuthHandler) LoginPage(e *core.RequestEvent) error {
	if e.Auth != nil {
		return e.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return h.pages.render(e, http.StatusOK, pageLogin, map[string]any{
		"Error": e.Request.URL.Query().Get("error"),
	})
}

func (h *AuthHandler) SignupPage(e *core.RequestEvent) error {
	return h.pages.render(e, http.StatusOK, pageSignup, map[string]any{
		"Error": e.Request.URL.Query().Get("error"),
	})
}

// Login starts a cookie session and redirects to the dashboard.
func (h *AuthHandler) Login(e *core.RequestEvent) error {
	var req credentials
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	session, err := h.service.Login(e.Request.Context(), req.Email, req.Password)
	if err != nil {
		return h.fail(e, err, loginPath)
	}
	h.setSession(e, session.Token)
	return h.succeed(e, "/dashboard", map[string]any{"token": session.Token, "user_id": session.UserID})
}

// Signup registers a viewer account and signs it in.
func (h *AuthHandler) Signup(e *core.RequestEvent) error {
	var req credentials
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	session, err := h.service.Signup(e.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return h.fail(e, err, signupPath)
	}
	h.setSession(e, session.Token)
	return h.succeed(e, "/dashboard", map[string]any{"token": session.Token, "user_id": session.UserID})
}

func (h *AuthHandler) Logout(e *core.RequestEvent) error {
	h.clearSession(e)
	return h.succeed(e, loginPath, nil)
}

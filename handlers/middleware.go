package handlers

import (
	"net/http"
	"slices"

	"github.com/pocketbase/pocketbase/core"

	"institute-events/internal/status"
	"institute-events/services"
)

const loginPath = "/auth/login"

// Auth loads the session from the auth cookie and guards dashboard routes.
type Auth struct {
	Responder
	cookieName string
	secure     bool
	profiles   *services.ProfileService
}

func NewAuth(r Responder, cookieName string, secure bool, profiles *services.ProfileService) *Auth {
	return &Auth{Responder: r, cookieName: cookieName, secure: secure, profiles: profiles}
}

// LoadCookie resolves the auth cookie into e.Auth when no Authorization
// header already did.
func (a *Auth) LoadCookie(e *core.RequestEvent) error {
	if e.Auth != nil {
		return e.Next()
	}
	cookie, err := e.Request.Cookie(a.cookieName)
	if err != nil || cookie.Value == "" {
		return e.Next()
	}
	record, err := e.App.FindAuthRecordByToken(cookie.Value, core.TokenTypeAuth)
	if err == nil {
		e.Auth = record
	}
	return e.Next()
}

// RequireLogin sends anonymous browsers to the login page and rejects
// anonymous JSON clients with 401.
func (a *Auth) RequireLogin(e *core.RequestEvent) error {
	if e.Auth != nil {
		return e.Next()
	}
	if wantsJSON(e) || e.Request.Method != http.MethodGet {
		return a.fail(e, status.ErrUnauthorized, "")
	}
	return e.Redirect(http.StatusSeeOther, loginPath)
}

// RequireRole lets the request through only when the signed-in user's
// profile has one of roles.
func (a *Auth) RequireRole(roles ...string) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Auth == nil {
			return a.fail(e, status.ErrUnauthorized, "")
		}
		profile, err := a.profiles.Get(e.Request.Context(), e.Auth.Id)
		if err != nil || !slices.Contains(roles, profile.Role) {
			return a.fail(e, status.ErrForbidden, "")
		}
		return e.Next()
	}
}

func (a *Auth) setSession(e *core.RequestEvent, token string) {
	e.SetCookie(&http.Cookie{
		Name:     a.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *Auth) clearSession(e *core.RequestEvent) {
	e.SetCookie(&http.Cookie{
		Name:     a.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

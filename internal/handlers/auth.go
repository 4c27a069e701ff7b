package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/betgenius/predictions-api/internal/logic"
	"github.com/betgenius/predictions-api/internal/models"
)

const sessionCookieName = "session_token"

// sessionToken reads the session token from the cookie or a Bearer header
func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return bearerToken(r)
}

// SessionMiddleware resolves the request's session token and stores the
// session in the request context. Requests without a live session pass
// through unauthenticated.
func (h *Handler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		session, err := h.auth.CurrentSession(r.Context(), token)
		if err != nil {
			if !errors.Is(err, logic.ErrNoSession) {
				h.logger.Warnw("Failed to resolve session", "error", err)
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// RequireSession redirects unauthenticated requests to the login view
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFromContext(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoginView tells the client to render the sign-in form
func (h *Handler) LoginView(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, models.AuthView{View: "sign_in", Providers: []string{}})
}

// RegisterView tells the client to render the sign-up form
func (h *Handler) RegisterView(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, models.AuthView{View: "sign_up", Providers: []string{}})
}

// Login handles POST /login
// @Summary Sign In
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body models.Credentials true "Credentials"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 401 {object} map[string]string "Invalid Credentials"
// @Router /login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	session, err := h.auth.SignIn(r.Context(), creds)
	if errors.Is(err, logic.ErrInvalidCredentials) {
		h.errorResponse(w, http.StatusUnauthorized, "Invalid login credentials")
		return
	}
	if err != nil {
		h.logger.Errorw("Sign in failed", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	h.setSessionCookie(w, session)
	h.jsonResponse(w, http.StatusOK, models.AuthResponse{User: &session.User, RedirectTo: "/dashboard"})
}

// Register handles POST /register
// @Summary Sign Up
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body models.Credentials true "Credentials"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Already Registered"
// @Router /register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	session, err := h.auth.SignUp(r.Context(), creds)
	if errors.Is(err, logic.ErrEmailTaken) {
		h.errorResponse(w, http.StatusConflict, "User already registered")
		return
	}
	if err != nil {
		h.logger.Errorw("Sign up failed", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to sign up")
		return
	}

	h.setSessionCookie(w, session)
	h.jsonResponse(w, http.StatusCreated, models.AuthResponse{User: &session.User, RedirectTo: "/dashboard"})
}

// Logout ends the current session and clears the cookie
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" {
		if err := h.auth.SignOut(r.Context(), token); err != nil {
			h.logger.Errorw("Sign out failed", "error", err)
			h.errorResponse(w, http.StatusInternalServerError, "Failed to sign out")
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	h.jsonResponse(w, http.StatusOK, models.AuthResponse{RedirectTo: "/"})
}

// GetSession returns the signed-in user for navigation state
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if session == nil {
		h.errorResponse(w, http.StatusUnauthorized, "Not signed in")
		return
	}
	h.jsonResponse(w, http.StatusOK, session)
}

func (h *Handler) decodeCredentials(w http.ResponseWriter, r *http.Request) (models.Credentials, bool) {
	var creds models.Credentials
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return creds, false
	}
	if err := h.ValidateStruct(&creds); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return creds, false
	}
	return creds, true
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, s *models.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    s.Token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

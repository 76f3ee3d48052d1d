package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"tourbase/internal/app/service"
	"tourbase/internal/common"
	"tourbase/internal/platform/config"

	"github.com/go-chi/chi/v5"
)

// CookieName is the credential carrier; jwtauth's verifier looks for the
// same name when the Authorization header is absent.
const CookieName = "jwt"

type AuthHandler struct {
	authService *service.AuthService
	cfg         *config.Config
	protect     func(http.Handler) http.Handler
	limit       func(http.Handler) http.Handler
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config,
	protect, limit func(http.Handler) http.Handler) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg, protect: protect, limit: limit}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(public chi.Router) {
		public.Use(h.limit)
		public.Post("/signup", h.signup)
		public.Post("/login", h.login)
		public.Post("/forgotPassword", h.forgotPassword)
		public.Patch("/resetPassword/{token}", h.resetPassword)
	})

	r.Get("/logout", h.logout)

	r.Group(func(private chi.Router) {
		private.Use(h.protect)
		private.Patch("/updateMyPassword", h.updatePassword)
	})
}

// sendToken writes the credential cookie and the standard success envelope
// with the sanitized user. The cookie is httpOnly always and Secure outside
// development.
func (h *AuthHandler) sendToken(w http.ResponseWriter, statusCode int, resp *service.AuthResponse) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    resp.Token,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.CookieExp),
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	common.RespondWithJSON(w, statusCode, common.Envelope{
		Status: "success",
		Token:  resp.Token,
		Data:   map[string]interface{}{"user": resp.User},
	})
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	h.sendToken(w, http.StatusCreated, resp)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	h.sendToken(w, http.StatusOK, resp)
}

// logout replaces the credential cookie with a short-lived dummy value so
// cookie-based clients drop their session; bearer clients just discard the
// token.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "loggedout",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	common.RespondWithJSON(w, http.StatusOK, common.Envelope{Status: "success"})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resetURLBase := requestScheme(r) + "://" + r.Host + "/api/v1/users/resetPassword"
	if err := h.authService.ForgotPassword(r.Context(), req.Email, resetURLBase); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.Envelope{
		Status:  "success",
		Message: "Token sent to email!",
	})
}

func (h *AuthHandler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req service.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.authService.ResetPassword(r.Context(), chi.URLParam(r, "token"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	h.sendToken(w, http.StatusOK, resp)
}

func (h *AuthHandler) updatePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req service.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.authService.UpdatePassword(r.Context(), user.ID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	h.sendToken(w, http.StatusOK, resp)
}

func requestScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	return "http"
}

package handler

import (
	"encoding/json"
	"net/http"

	"tourbase/internal/api/middleware"
	"tourbase/internal/app/service"
	"tourbase/internal/common"
	"tourbase/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
	protect     func(http.Handler) http.Handler
}

func NewUserHandler(userService *service.UserService, protect func(http.Handler) http.Handler) *UserHandler {
	return &UserHandler{userService: userService, protect: protect}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(private chi.Router) {
		private.Use(h.protect)
		private.Get("/me", h.getMe)
		private.Patch("/updateMe", h.updateMe)
		private.Delete("/deleteMe", h.deleteMe)
	})
}

func (h *UserHandler) getMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	user.Sanitize()
	common.RespondWithJSON(w, http.StatusOK, common.Envelope{
		Status: "success",
		Data:   map[string]interface{}{"user": user},
	})
}

func (h *UserHandler) updateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req service.UpdateMeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	updated, err := h.userService.UpdateMe(r.Context(), user, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.Envelope{
		Status: "success",
		Data:   map[string]interface{}{"user": updated},
	})
}

func (h *UserHandler) deleteMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.userService.DeleteMe(r.Context(), user.ID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// currentUser pulls the account attached by the Protect middleware; a miss
// means the route was wired without the guard.
func currentUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "You are not logged in! Please log in to get access.")
		return nil, false
	}
	return user, true
}

package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"tourbase/internal/common"
	"tourbase/internal/common/security"
	"tourbase/internal/domain/model"
	"tourbase/internal/domain/repository"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const userCtxKey contextKey = "currentUser"

// Protect is the access guard. It resolves the bearer credential that
// jwtauth.Verifier extracted (Authorization header or jwt cookie) to a live
// account and attaches it to the request context. Every rejection surfaces
// to the client as the same 401; the distinct internal reason is logged.
func Protect(userRepo repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				reason := common.ErrInvalidCredential
				if errors.Is(err, jwtauth.ErrNoTokenFound) || (err == nil && token == nil) {
					reason = common.ErrNoCredential
				}
				rejectUnauthorized(w, r, reason)
				return
			}

			userID, err := security.GetUserIDFromClaims(claims)
			if err != nil {
				rejectUnauthorized(w, r, common.ErrInvalidCredential)
				return
			}
			issuedAt, err := security.GetIssuedAtFromClaims(claims)
			if err != nil {
				rejectUnauthorized(w, r, common.ErrInvalidCredential)
				return
			}

			// The token may outlive its account (deleted or deactivated).
			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					rejectUnauthorized(w, r, common.ErrAccountGone)
					return
				}
				common.RespondWithError(w, http.StatusInternalServerError, "Something went very wrong!")
				return
			}

			// A password change invalidates every token issued before it.
			if user.PasswordChangedAfter(issuedAt) {
				rejectUnauthorized(w, r, common.ErrStaleCredential)
				return
			}

			ctx := context.WithValue(r.Context(), userCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RestrictTo allows the request through only when the authenticated
// account's role is in the given set. It must run after Protect; a missing
// context user means the guard never ran and is treated as unauthenticated.
func RestrictTo(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				rejectUnauthorized(w, r, common.ErrNoCredential)
				return
			}
			if _, ok := allowed[user.Role]; !ok {
				common.RespondWithError(w, http.StatusForbidden, "You do not have permission to perform this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext returns the account attached by Protect.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userCtxKey).(*model.User)
	return user, ok
}

// WithUser attaches an account to the context the same way Protect does.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userCtxKey, user)
}

func rejectUnauthorized(w http.ResponseWriter, r *http.Request, reason error) {
	log.Printf("auth rejected %s %s: %v", r.Method, r.URL.Path, reason)
	common.RespondWithError(w, http.StatusUnauthorized, "You are not logged in! Please log in to get access.")
}

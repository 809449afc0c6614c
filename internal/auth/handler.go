package auth

import (
	"encoding/json"
	"net/http"

	"github.com/hrsuite/hr-management/internal"
	"github.com/hrsuite/hr-management/internal/transport"
	"github.com/hrsuite/hr-management/internal/user"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

// SignIn handles POST /auth/signin. The success body is either a token pair
// or a verification handle, depending on the account's approval state.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var dto SignInDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.SignIn(r.Context(), dto)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	if result.Pending != nil {
		h.WriteJSON(w, http.StatusOK, result.Pending)
		return
	}
	h.WriteJSON(w, http.StatusOK, result.Tokens)
}

// Logout handles POST /auth/logout. Requires a valid access token.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.IdentityFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	if err := h.Service.Logout(r.Context(), identity.UserID); err != nil {
		h.WriteServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "logged out"})
}

// RefreshToken handles POST /auth/refresh. The refresh middleware has
// already verified the token signature and expiry; the service checks the
// plaintext against the stored hash and rotates it.
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	session, ok := internal.RefreshSessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "missing refresh token")
		return
	}

	tokens, err := h.Service.Refresh(r.Context(), session.UserID, session.RefreshToken)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// VerifyAccount handles POST /auth/verify.
func (h *Handler) VerifyAccount(w http.ResponseWriter, r *http.Request) {
	var dto VerifyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.Service.VerifyAccount(r.Context(), dto)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// ResendVerificationCode handles POST /auth/resend-verification-code and
// POST /auth/request-reset-password; both just issue a fresh code.
func (h *Handler) ResendVerificationCode(w http.ResponseWriter, r *http.Request) {
	var dto UserIDDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteServiceError(w, err)
		return
	}

	if err := h.Service.SendVerificationCode(r.Context(), dto.UserID); err != nil {
		h.WriteServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "verification code sent"})
}

// ResetPassword handles POST /auth/reset-password.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var dto ResetPasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ResetPassword(r.Context(), dto); err != nil {
		h.WriteServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "password updated"})
}

// AccessTokenMiddleware validates the bearer access token and attaches the
// caller identity to the request context.
func (h *Handler) AccessTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.WriteServiceError(w, err)
			return
		}

		ctx := internal.ContextWithIdentity(r.Context(), internal.Identity{
			UserID: claims.Subject,
			Email:  claims.Email,
			Role:   claims.Role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RefreshTokenMiddleware validates the bearer token against the refresh
// secret and threads both the claims and the raw token through the context.
func (h *Handler) RefreshTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing refresh token")
			return
		}

		claims, err := h.Service.ValidateRefreshToken(token)
		if err != nil {
			h.WriteServiceError(w, err)
			return
		}

		ctx := internal.ContextWithRefreshSession(r.Context(), internal.RefreshSession{
			Identity: internal.Identity{
				UserID: claims.Subject,
				Email:  claims.Email,
				Role:   claims.Role,
			},
			RefreshToken: token,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles gates a route on the caller's role level. The requirement is
// the lowest level among the declared roles, so listing both ADMIN and
// SUPER_ADMIN admits anyone at ADMIN level or above.
func (h *Handler) RequireRoles(roles ...user.Role) func(http.Handler) http.Handler {
	required := user.MinLevel(roles)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := internal.IdentityFromContext(r.Context())
			if !ok || identity.Role == "" {
				h.WriteServiceError(w, internal.ErrRoleMissing)
				return
			}

			if user.Role(identity.Role).Level() < required {
				h.Logger.Warn("access denied: insufficient role",
					"user_id", identity.UserID,
					"role", identity.Role)
				h.WriteServiceError(w, internal.ErrInsufficientRole)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

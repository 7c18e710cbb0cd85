package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	internal "github.com/clinicore/hr-management/internal"
	"github.com/clinicore/hr-management/internal/authz"
	"github.com/clinicore/hr-management/internal/transport"
	"github.com/clinicore/hr-management/pkg/logger"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	CurrentPrincipal(claims *Claims) (*authz.Principal, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Error("authentication failed", "error", err)

		switch err {
		case ErrInvalidCredentials:
			h.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		case ErrUserInactive:
			h.WriteError(w, http.StatusUnauthorized, "user is inactive")
		default:
			if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeValidation {
				h.HandleServiceError(w, err)
			} else {
				h.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.Service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		h.Logger.Error("token refresh failed", "error", err)

		switch err {
		case ErrInvalidToken, ErrTokenExpired:
			h.WriteError(w, http.StatusUnauthorized, "invalid refresh token")
		case ErrUserInactive:
			h.WriteError(w, http.StatusUnauthorized, "user is inactive")
		default:
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// Logout is stateless on the server side; the client discards its tokens.
// The endpoint exists so the action is audit-logged.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if p, ok := PrincipalFromContext(r.Context()); ok && p != nil {
		h.Logger.Info("user logged out", "user_id", p.ID, "user_type", p.UserType)
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// Me returns the caller's resolved principal.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok || p == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"id":            p.ID,
		"role":          p.Role,
		"user_type":     p.UserType,
		"department_id": p.DepartmentID,
		"is_active":     p.IsActive,
		"permissions":   permissionNames(authz.RolePermissions(p.Role)),
	})
}

func permissionNames(perms []authz.Permission) []string {
	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = p.Name()
	}
	return names
}

// AuthMiddleware resolves the bearer token into an authz.Principal and
// stores it in the request context. Inactive accounts are rejected here so
// downstream authorization never sees them.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.Logger.Warn("token validation failed", "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		principal, err := h.Service.CurrentPrincipal(claims)
		if err != nil {
			h.Logger.Error("failed to resolve principal", "user_id", claims.UserID, "error", err)
			h.WriteError(w, http.StatusUnauthorized, "user not found")
			return
		}

		if !principal.IsActive {
			h.Logger.Warn("inactive account rejected", "user_id", principal.ID)
			h.WriteError(w, http.StatusUnauthorized, "user is inactive")
			return
		}

		ctx := ContextWithPrincipal(r.Context(), principal)
		ctx = logger.With(ctx, "user_id", principal.ID, "role", string(principal.Role))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

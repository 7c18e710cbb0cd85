package workspace

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/clinicore/hr-management/internal/auth"
	"github.com/clinicore/hr-management/internal/authz"
	"github.com/clinicore/hr-management/internal/transport"
	"github.com/clinicore/hr-management/pkg/logger"
)

type ServiceAPI interface {
	Create(ctx context.Context, dto CreateWorkspaceDTO, creator *authz.Principal) (*Workspace, error)
	GetByID(ctx context.Context, id string) (*Workspace, error)
	List(ctx context.Context, projectID string, caller *authz.Principal) ([]Workspace, error)
	Update(ctx context.Context, id string, dto UpdateWorkspaceDTO) (*Workspace, error)
	AddMember(ctx context.Context, workspaceID string, dto AddMemberDTO) (*Member, error)
	RemoveMember(ctx context.Context, workspaceID, userID string) error
	ListMembers(ctx context.Context, workspaceID string) ([]Member, error)
	SendMessage(ctx context.Context, workspaceID string, dto SendMessageDTO, sender *authz.Principal) (*Message, error)
	ListMessages(ctx context.Context, workspaceID string, page, perPage int, reader *authz.Principal) (*MessagePage, error)
	EditMessage(ctx context.Context, messageID string, dto EditMessageDTO, editor *authz.Principal) (*Message, error)
	DeleteMessage(ctx context.Context, messageID string, caller *authz.Principal) error
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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateWorkspaceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	principal, _ := auth.PrincipalFromContext(r.Context())
	ws, err := h.Service.Create(r.Context(), dto, principal)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, ws)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ws, err := h.Service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ws)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFromContext(r.Context())
	workspaces, err := h.Service.List(r.Context(), r.URL.Query().Get("project_id"), principal)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"workspaces": workspaces})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateWorkspaceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ws, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ws)
}

func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	var dto AddMemberDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.Service.AddMember(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	err := h.Service.RemoveMember(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "userID"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Service.ListMembers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"members": members})
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var dto SendMessageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	principal, _ := auth.PrincipalFromContext(r.Context())
	m, err := h.Service.SendMessage(r.Context(), chi.URLParam(r, "id"), dto, principal)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	principal, _ := auth.PrincipalFromContext(r.Context())
	result, err := h.Service.ListMessages(r.Context(), chi.URLParam(r, "id"), page, perPage, principal)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) EditMessage(w http.ResponseWriter, r *http.Request) {
	var dto EditMessageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	principal, _ := auth.PrincipalFromContext(r.Context())
	m, err := h.Service.EditMessage(r.Context(), chi.URLParam(r, "messageID"), dto, principal)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFromContext(r.Context())
	if err := h.Service.DeleteMessage(r.Context(), chi.URLParam(r, "messageID"), principal); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

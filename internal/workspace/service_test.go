package workspace_test

import (
	"context"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	internal "github.com/clinicore/hr-management/internal"
	"github.com/clinicore/hr-management/internal/authz"
	"github.com/clinicore/hr-management/internal/workspace"
)

type mockWorkspaceRepo struct {
	workspaces map[string]*workspace.Workspace
	members    map[string]map[string]*workspace.Member
	messages   map[string]*workspace.Message
}

func newMockWorkspaceRepo() *mockWorkspaceRepo {
	return &mockWorkspaceRepo{
		workspaces: make(map[string]*workspace.Workspace),
		members:    make(map[string]map[string]*workspace.Member),
		messages:   make(map[string]*workspace.Message),
	}
}

func (m *mockWorkspaceRepo) Create(ctx context.Context, w *workspace.Workspace) error {
	m.workspaces[w.ID] = w
	return nil
}

func (m *mockWorkspaceRepo) GetByID(ctx context.Context, id string) (*workspace.Workspace, error) {
	if w, ok := m.workspaces[id]; ok {
		return w, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkspaceRepo) ListByProject(ctx context.Context, projectID string) ([]workspace.Workspace, error) {
	var out []workspace.Workspace
	for _, w := range m.workspaces {
		if projectID == "" || w.ProjectID == projectID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (m *mockWorkspaceRepo) ListVisible(ctx context.Context, projectID string, principal authz.Principal) ([]workspace.Workspace, error) {
	var out []workspace.Workspace
	for _, w := range m.workspaces {
		if projectID != "" && w.ProjectID != projectID {
			continue
		}
		if _, ok := m.members[w.ID][principal.ID]; ok {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (m *mockWorkspaceRepo) Update(ctx context.Context, w *workspace.Workspace) error {
	m.workspaces[w.ID] = w
	return nil
}

func (m *mockWorkspaceRepo) AddMember(ctx context.Context, member *workspace.Member) error {
	if m.members[member.WorkspaceID] == nil {
		m.members[member.WorkspaceID] = make(map[string]*workspace.Member)
	}
	m.members[member.WorkspaceID][member.UserID] = member
	return nil
}

func (m *mockWorkspaceRepo) RemoveMember(ctx context.Context, workspaceID, userID string) error {
	if _, ok := m.members[workspaceID][userID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.members[workspaceID], userID)
	return nil
}

func (m *mockWorkspaceRepo) ListMembers(ctx context.Context, workspaceID string) ([]workspace.Member, error) {
	var out []workspace.Member
	for _, member := range m.members[workspaceID] {
		out = append(out, *member)
	}
	return out, nil
}

func (m *mockWorkspaceRepo) IsMember(ctx context.Context, workspaceID, userID string) (bool, error) {
	_, ok := m.members[workspaceID][userID]
	return ok, nil
}

func (m *mockWorkspaceRepo) CreateMessage(ctx context.Context, msg *workspace.Message) error {
	m.messages[msg.ID] = msg
	return nil
}

func (m *mockWorkspaceRepo) GetMessage(ctx context.Context, id string) (*workspace.Message, error) {
	if msg, ok := m.messages[id]; ok {
		return msg, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkspaceRepo) ListMessages(ctx context.Context, workspaceID string, page, perPage int) ([]workspace.Message, int64, error) {
	var out []workspace.Message
	for _, msg := range m.messages {
		if msg.WorkspaceID == workspaceID {
			out = append(out, *msg)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockWorkspaceRepo) UpdateMessage(ctx context.Context, msg *workspace.Message) error {
	m.messages[msg.ID] = msg
	return nil
}

var _ = Describe("Workspace Service", func() {
	var (
		repo *mockWorkspaceRepo
		svc  *workspace.Service
		ctx  context.Context

		member   *authz.Principal
		outsider *authz.Principal
		admin    *authz.Principal
		wsID     string
	)

	BeforeEach(func() {
		repo = newMockWorkspaceRepo()
		svc = workspace.NewService(repo, slog.Default())
		ctx = context.Background()

		member = &authz.Principal{ID: "emp-1", Role: authz.RoleEmployee, UserType: authz.UserTypeEmployee, IsActive: true}
		outsider = &authz.Principal{ID: "emp-2", Role: authz.RoleEmployee, UserType: authz.UserTypeEmployee, IsActive: true}
		admin = &authz.Principal{ID: "adm-1", Role: authz.RoleAdmin, UserType: authz.UserTypeEmployee, IsActive: true}

		ws, err := svc.Create(ctx, workspace.CreateWorkspaceDTO{
			ProjectID: "8d6a3b5e-0000-4000-8000-000000000020",
			Name:      "Cardiology rollout",
		}, member)
		Expect(err).NotTo(HaveOccurred())
		wsID = ws.ID
	})

	It("adds the creator as a workspace admin", func() {
		members, err := svc.ListMembers(ctx, wsID)
		Expect(err).NotTo(HaveOccurred())
		Expect(members).To(HaveLen(1))
		Expect(members[0].UserID).To(Equal("emp-1"))
		Expect(members[0].Role).To(Equal(workspace.MemberRoleAdmin))
	})

	Describe("List", func() {
		It("shows members the workspaces they belong to", func() {
			workspaces, err := svc.List(ctx, "", member)
			Expect(err).NotTo(HaveOccurred())
			Expect(workspaces).To(HaveLen(1))
			Expect(workspaces[0].ID).To(Equal(wsID))
		})

		It("hides workspaces from unrelated employees", func() {
			workspaces, err := svc.List(ctx, "", outsider)
			Expect(err).NotTo(HaveOccurred())
			Expect(workspaces).To(BeEmpty())
		})

		It("shows admins everything without membership", func() {
			workspaces, err := svc.List(ctx, "", admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(workspaces).To(HaveLen(1))
		})

		It("rejects an absent caller", func() {
			_, err := svc.List(ctx, "", nil)
			Expect(err).To(Equal(internal.ErrInsufficientPermissions))
		})
	})

	Describe("SendMessage", func() {
		It("lets members post", func() {
			msg, err := svc.SendMessage(ctx, wsID, workspace.SendMessageDTO{Content: "hello"}, member)
			Expect(err).NotTo(HaveOccurred())
			Expect(msg.MessageType).To(Equal(workspace.MessageTypeText))
			Expect(msg.SenderID).To(Equal("emp-1"))
		})

		It("rejects non-members, even admins", func() {
			_, err := svc.SendMessage(ctx, wsID, workspace.SendMessageDTO{Content: "hello"}, admin)
			Expect(err).To(Equal(internal.ErrInsufficientPermissions))
		})
	})

	Describe("ListMessages", func() {
		BeforeEach(func() {
			_, err := svc.SendMessage(ctx, wsID, workspace.SendMessageDTO{Content: "hello"}, member)
			Expect(err).NotTo(HaveOccurred())
		})

		It("lets members read", func() {
			page, err := svc.ListMessages(ctx, wsID, 1, 50, member)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Messages).To(HaveLen(1))
		})

		It("rejects non-member employees", func() {
			_, err := svc.ListMessages(ctx, wsID, 1, 50, outsider)
			Expect(err).To(Equal(internal.ErrInsufficientPermissions))
		})

		It("lets admins read without membership", func() {
			page, err := svc.ListMessages(ctx, wsID, 1, 50, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(Equal(int64(1)))
		})
	})

	Describe("EditMessage and DeleteMessage", func() {
		var msgID string

		BeforeEach(func() {
			msg, err := svc.SendMessage(ctx, wsID, workspace.SendMessageDTO{Content: "original"}, member)
			Expect(err).NotTo(HaveOccurred())
			msgID = msg.ID
		})

		It("lets the author edit and marks the message edited", func() {
			msg, err := svc.EditMessage(ctx, msgID, workspace.EditMessageDTO{Content: "revised"}, member)
			Expect(err).NotTo(HaveOccurred())
			Expect(msg.Content).To(Equal("revised"))
			Expect(msg.IsEdited).To(BeTrue())
		})

		It("rejects edits from anyone else", func() {
			_, err := svc.EditMessage(ctx, msgID, workspace.EditMessageDTO{Content: "hijack"}, outsider)
			Expect(err).To(Equal(internal.ErrInsufficientPermissions))
		})

		It("soft-deletes and blanks the content", func() {
			Expect(svc.DeleteMessage(ctx, msgID, member)).To(Succeed())

			stored := repo.messages[msgID]
			Expect(stored.IsDeleted).To(BeTrue())
			Expect(stored.Content).To(BeEmpty())
		})

		It("treats a deleted message as gone for further edits", func() {
			Expect(svc.DeleteMessage(ctx, msgID, member)).To(Succeed())

			_, err := svc.EditMessage(ctx, msgID, workspace.EditMessageDTO{Content: "zombie"}, member)
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeNotFound))
		})

		It("rejects deletion by anyone but the author", func() {
			err := svc.DeleteMessage(ctx, msgID, outsider)
			Expect(err).To(Equal(internal.ErrInsufficientPermissions))
			Expect(repo.messages[msgID].IsDeleted).To(BeFalse())
		})
	})
})

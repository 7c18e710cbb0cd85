package auth_test

import (
	"errors"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	internal "github.com/clinicore/hr-management/internal"
	"github.com/clinicore/hr-management/internal/auth"
	"github.com/clinicore/hr-management/internal/authz"
)

type mockAuthRepo struct {
	employees    map[string]*auth.Account
	clients      map[string]*auth.Account
	principals   map[string]*authz.Principal
	findErr      error
	touchedID    string
	touchedType  authz.UserType
	touchLoginFn func(userID string, userType authz.UserType) error
}

func newMockAuthRepo() *mockAuthRepo {
	return &mockAuthRepo{
		employees:  make(map[string]*auth.Account),
		clients:    make(map[string]*auth.Account),
		principals: make(map[string]*authz.Principal),
	}
}

func (m *mockAuthRepo) FindEmployeeAccount(email string) (*auth.Account, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.employees[email], nil
}

func (m *mockAuthRepo) FindClientAccount(email string) (*auth.Account, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.clients[email], nil
}

func (m *mockAuthRepo) GetPrincipal(userID string, userType authz.UserType) (*authz.Principal, error) {
	return m.principals[userID], nil
}

func (m *mockAuthRepo) TouchLastLogin(userID string, userType authz.UserType) error {
	m.touchedID = userID
	m.touchedType = userType
	if m.touchLoginFn != nil {
		return m.touchLoginFn(userID, userType)
	}
	return nil
}

func hashFor(password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	Expect(err).NotTo(HaveOccurred())
	return string(h)
}

var _ = Describe("Auth Service", func() {
	var (
		repo     *mockAuthRepo
		tokenGen *auth.JWTTokenGenerator
		svc      *auth.Service
	)

	BeforeEach(func() {
		repo = newMockAuthRepo()
		tokenGen = auth.NewJWTTokenGenerator(
			"access-secret-for-tests-0123456789ab",
			"refresh-secret-for-tests-0123456789a",
			15*time.Minute,
			7*24*time.Hour,
		)
		svc = auth.NewService(repo, tokenGen, slog.Default(), bcrypt.MinCost)
	})

	Describe("Authenticate", func() {
		BeforeEach(func() {
			repo.employees["ana@clinic.test"] = &auth.Account{
				ID:           "emp-1",
				Email:        "ana@clinic.test",
				PasswordHash: hashFor("correct horse"),
				Role:         authz.RoleAdmin,
				UserType:     authz.UserTypeEmployee,
				IsActive:     true,
			}
			repo.clients["acme@client.test"] = &auth.Account{
				ID:           "cli-1",
				Email:        "acme@client.test",
				PasswordHash: hashFor("client pass"),
				Role:         authz.RoleClient,
				UserType:     authz.UserTypeClient,
				IsActive:     true,
			}
		})

		It("returns a token pair for valid employee credentials", func() {
			tokens, err := svc.Authenticate(auth.LoginDTO{Email: "ana@clinic.test", Password: "correct horse"})
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())
			Expect(tokens.AccessToken).NotTo(Equal(tokens.RefreshToken))
		})

		It("falls back to the client table when no employee matches", func() {
			tokens, err := svc.Authenticate(auth.LoginDTO{Email: "acme@client.test", Password: "client pass"})
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())

			claims, err := tokenGen.ValidateToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("cli-1"))
			Expect(claims.UserType).To(Equal(string(authz.UserTypeClient)))
		})

		It("rejects a wrong password", func() {
			_, err := svc.Authenticate(auth.LoginDTO{Email: "ana@clinic.test", Password: "wrong"})
			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("rejects an unknown email", func() {
			_, err := svc.Authenticate(auth.LoginDTO{Email: "nobody@clinic.test", Password: "whatever"})
			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("rejects an inactive account even with the right password", func() {
			repo.employees["ana@clinic.test"].IsActive = false
			_, err := svc.Authenticate(auth.LoginDTO{Email: "ana@clinic.test", Password: "correct horse"})
			Expect(err).To(Equal(auth.ErrUserInactive))
		})

		It("rejects missing fields with a validation error", func() {
			_, err := svc.Authenticate(auth.LoginDTO{Email: "", Password: "x"})
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("records the last login of the authenticated account", func() {
			_, err := svc.Authenticate(auth.LoginDTO{Email: "ana@clinic.test", Password: "correct horse"})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.touchedID).To(Equal("emp-1"))
			Expect(repo.touchedType).To(Equal(authz.UserTypeEmployee))
		})

		It("still succeeds when last-login bookkeeping fails", func() {
			repo.touchLoginFn = func(string, authz.UserType) error { return errors.New("db down") }
			tokens, err := svc.Authenticate(auth.LoginDTO{Email: "ana@clinic.test", Password: "correct horse"})
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
		})
	})

	Describe("RefreshTokens", func() {
		BeforeEach(func() {
			repo.principals["emp-1"] = &authz.Principal{
				ID:       "emp-1",
				Role:     authz.RoleAdmin,
				UserType: authz.UserTypeEmployee,
				IsActive: true,
			}
		})

		It("rotates a valid refresh token", func() {
			refresh, err := tokenGen.GenerateRefreshToken("emp-1", "ana@clinic.test", string(authz.UserTypeEmployee))
			Expect(err).NotTo(HaveOccurred())

			tokens, err := svc.RefreshTokens(refresh)
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())
		})

		It("rejects garbage tokens", func() {
			_, err := svc.RefreshTokens("not-a-token")
			Expect(err).To(Equal(auth.ErrInvalidToken))
		})

		It("rejects a refresh token for a deactivated principal", func() {
			repo.principals["emp-1"].IsActive = false
			refresh, err := tokenGen.GenerateRefreshToken("emp-1", "ana@clinic.test", string(authz.UserTypeEmployee))
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.RefreshTokens(refresh)
			Expect(err).To(Equal(auth.ErrUserInactive))
		})

		It("rejects a refresh token whose principal no longer exists", func() {
			refresh, err := tokenGen.GenerateRefreshToken("emp-gone", "old@clinic.test", string(authz.UserTypeEmployee))
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.RefreshTokens(refresh)
			Expect(err).To(Equal(auth.ErrInvalidToken))
		})
	})

	Describe("CurrentPrincipal", func() {
		It("resolves the principal for valid claims", func() {
			repo.principals["emp-1"] = &authz.Principal{
				ID:           "emp-1",
				Role:         authz.RoleDeptManager,
				UserType:     authz.UserTypeEmployee,
				DepartmentID: "dept-1",
				IsActive:     true,
			}
			p, err := svc.CurrentPrincipal(&auth.Claims{UserID: "emp-1", UserType: string(authz.UserTypeEmployee)})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Role).To(Equal(authz.RoleDeptManager))
			Expect(p.DepartmentID).To(Equal("dept-1"))
		})

		It("rejects claims with an unknown user type", func() {
			_, err := svc.CurrentPrincipal(&auth.Claims{UserID: "emp-1", UserType: "robot"})
			Expect(err).To(Equal(auth.ErrInvalidToken))
		})

		It("rejects claims for a vanished account", func() {
			_, err := svc.CurrentPrincipal(&auth.Claims{UserID: "ghost", UserType: string(authz.UserTypeEmployee)})
			Expect(err).To(Equal(auth.ErrPrincipalNotFound))
		})
	})

	Describe("JWTTokenGenerator", func() {
		It("round-trips access token claims", func() {
			token, err := tokenGen.GenerateAccessToken("emp-1", "ana@clinic.test", string(authz.UserTypeEmployee))
			Expect(err).NotTo(HaveOccurred())

			claims, err := tokenGen.ValidateToken(token)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("emp-1"))
			Expect(claims.Email).To(Equal("ana@clinic.test"))
		})

		It("rejects tokens signed with a different secret", func() {
			other := auth.NewJWTTokenGenerator(
				"another-access-secret-0123456789abcd",
				"another-refresh-secret-0123456789abc",
				15*time.Minute,
				7*24*time.Hour,
			)
			token, err := other.GenerateAccessToken("emp-1", "ana@clinic.test", string(authz.UserTypeEmployee))
			Expect(err).NotTo(HaveOccurred())

			_, err = tokenGen.ValidateToken(token)
			Expect(err).To(Equal(auth.ErrInvalidToken))
		})
	})
})

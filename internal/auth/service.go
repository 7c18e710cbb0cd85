package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicore/hr-management/internal/authz"
)

// Repository resolves accounts and principals from the store. Employee and
// client identities live in separate tables; lookups try employees first.
type Repository interface {
	FindEmployeeAccount(email string) (*Account, error)
	FindClientAccount(email string) (*Account, error)
	GetPrincipal(userID string, userType authz.UserType) (*authz.Principal, error)
	TouchLastLogin(userID string, userType authz.UserType) error
}

type Service struct {
	repo           Repository
	tokenGenerator TokenGenerator
	logger         *slog.Logger
	bcryptCost     int
}

func NewService(repo Repository, tokenGen TokenGenerator, logger *slog.Logger, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		logger:         logger,
		bcryptCost:     bcryptCost,
	}
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	if accessTTL == 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL == 0 {
		refreshTTL = 24 * 7 * time.Hour
	}
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

// Authenticate validates credentials and returns a token pair. Lookup order
// follows the account tables: employees first, then clients.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	account, err := s.repo.FindEmployeeAccount(dto.Email)
	if err != nil || account == nil {
		account, err = s.repo.FindClientAccount(dto.Email)
	}
	if err != nil || account == nil || account.PasswordHash == "" {
		return AuthTokens{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(dto.Password)); err != nil {
		return AuthTokens{}, ErrInvalidCredentials
	}

	if !account.IsActive {
		return AuthTokens{}, ErrUserInactive
	}

	tokens, err := s.issueTokens(account.ID, account.Email, string(account.UserType))
	if err != nil {
		return AuthTokens{}, err
	}

	if err := s.repo.TouchLastLogin(account.ID, account.UserType); err != nil {
		s.logger.Warn("failed to record last login", "user_id", account.ID, "error", err)
	}

	s.logger.Info("user authenticated", "user_id", account.ID, "user_type", account.UserType, "role", account.Role)
	return tokens, nil
}

// RefreshTokens validates a refresh token and rotates the pair.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	principal, err := s.repo.GetPrincipal(claims.UserID, authz.UserType(claims.UserType))
	if err != nil || principal == nil {
		return AuthTokens{}, ErrInvalidToken
	}
	if !principal.IsActive {
		return AuthTokens{}, ErrUserInactive
	}

	return s.issueTokens(claims.UserID, claims.Email, claims.UserType)
}

// ValidateAccessToken validates access token and returns claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// CurrentPrincipal resolves the authz principal for validated claims.
func (s *Service) CurrentPrincipal(claims *Claims) (*authz.Principal, error) {
	userType := authz.UserType(claims.UserType)
	if !userType.Valid() {
		return nil, ErrInvalidToken
	}
	principal, err := s.repo.GetPrincipal(claims.UserID, userType)
	if err != nil {
		return nil, err
	}
	if principal == nil {
		return nil, ErrPrincipalNotFound
	}
	return principal, nil
}

func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Service) issueTokens(userID, email, userType string) (AuthTokens, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken(userID, email, userType)
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(userID, email, userType)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (j *JWTTokenGenerator) GenerateAccessToken(userID, email, userType string) (string, error) {
	return j.sign(userID, email, userType, j.AccessTokenTTL, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(userID, email, userType string) (string, error) {
	return j.sign(userID, email, userType, j.RefreshTokenTTL, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) sign(userID, email, userType string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Email:    email,
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		// Long-lived tokens were signed with the refresh secret.
		if claims, ok := token.Claims.(*Claims); ok {
			if time.Until(claims.ExpiresAt.Time) > j.AccessTokenTTL {
				return j.RefreshTokenSecret, nil
			}
		}
		return j.AccessTokenSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

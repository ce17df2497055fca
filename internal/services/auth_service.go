package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"orgblog/internal/config"
	"orgblog/internal/dto"
	"orgblog/internal/models"
	"orgblog/internal/store"
)

const verificationTTL = 24 * time.Hour

type AuthService struct {
	users         store.UserStore
	sessions      store.SessionStore
	members       store.MemberStore
	verifications store.VerificationStore
	cfg           *config.Config
	googleJWKS    *GoogleJWKSClient
}

func NewAuthService(
	users store.UserStore,
	sessions store.SessionStore,
	members store.MemberStore,
	verifications store.VerificationStore,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		users:         users,
		sessions:      sessions,
		members:       members,
		verifications: verifications,
		cfg:           cfg,
		googleJWKS:    NewGoogleJWKSClient(),
	}
}

// Register creates a member-role user with a credential account and issues an
// email-verification token. Token delivery is someone else's job.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	if _, err := s.users.UserByEmail(ctx, req.Email); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	user := models.User{
		ID:    uuid.New(),
		Name:  req.Name,
		Email: req.Email,
		Role:  models.RoleMember,
	}
	account := models.Account{
		ID:         uuid.New(),
		UserID:     user.ID,
		ProviderID: models.ProviderCredential,
		AccountID:  user.ID.String(),
		Password:   string(hash),
	}
	if err := s.users.CreateUserWithAccount(ctx, &user, &account); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	if err := s.issueVerification(ctx, user.Email); err != nil {
		// Registration stands even when the verification token write fails;
		// the user can request another.
		slog.Error("verification issue failed", "action", "register", "error", err.Error())
	}

	return s.createSession(ctx, &user)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	user, err := s.users.UserByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	account, err := s.users.CredentialAccount(ctx, user.ID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(ctx, user)
}

// Refresh rotates the session: the presented token's row is revoked and a
// fresh one issued, keeping the pinned active organization.
func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	session, err := s.sessions.SessionByTokenHash(ctx, hashToken(req.RefreshToken))
	if err != nil {
		return nil, ErrInvalidToken
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.RevokeSession(ctx, session.ID)
		return nil, ErrInvalidToken
	}
	if err := s.sessions.RevokeSession(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	user, err := s.users.UserByID(ctx, session.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return s.createSession(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	session, err := s.sessions.SessionByTokenHash(ctx, hashToken(req.RefreshToken))
	if err != nil {
		// Revoking an unknown token is a no-op, not an error.
		return nil
	}
	return s.sessions.RevokeSession(ctx, session.ID)
}

// VerifyEmail consumes a verification token and flips the flag on the user it
// was issued for.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	v, err := s.verifications.VerificationByValue(ctx, token)
	if err != nil {
		return ErrInvalidToken
	}
	if time.Now().After(v.ExpiresAt) {
		_ = s.verifications.DeleteVerification(ctx, v.ID)
		return ErrInvalidToken
	}

	user, err := s.users.UserByEmail(ctx, v.Identifier)
	if err != nil {
		return ErrInvalidToken
	}
	user.EmailVerified = true
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	return s.verifications.DeleteVerification(ctx, v.ID)
}

// GoogleSignIn verifies the ID token against Google's JWKS, then finds or
// creates the matching user and google account.
func (s *AuthService) GoogleSignIn(ctx context.Context, req *dto.GoogleSignInRequest) (*dto.AuthResponse, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	claims, err := s.googleJWKS.VerifyToken(req.IDToken, s.cfg.GoogleClientID)
	if err != nil {
		slog.Error("google token verification failed", "action", "google_sign_in", "error", err.Error())
		return nil, ErrInvalidToken
	}

	user, err := s.users.UserByEmail(ctx, claims.Email)
	if errors.Is(err, store.ErrNotFound) {
		name := claims.Name
		if name == "" {
			name = strings.Split(claims.Email, "@")[0]
		}
		created := models.User{
			ID:            uuid.New(),
			Name:          name,
			Email:         claims.Email,
			EmailVerified: true,
			Image:         claims.Picture,
			Role:          models.RoleMember,
		}
		account := models.Account{
			ID:         uuid.New(),
			UserID:     created.ID,
			ProviderID: models.ProviderGoogle,
			AccountID:  claims.Sub,
		}
		if err := s.users.CreateUserWithAccount(ctx, &created, &account); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
		}
		user = &created
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	return s.createSession(ctx, user)
}

// createSession writes the session row with its deterministic active
// organization and returns the token pair.
func (s *AuthService) createSession(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	var activeOrgID *uuid.UUID
	member, err := s.members.OldestMembership(ctx, user.ID)
	if err == nil {
		activeOrgID = &member.OrganizationID
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	session := models.Session{
		ID:                   uuid.New(),
		UserID:               user.ID,
		TokenHash:            hashToken(rawToken),
		ExpiresAt:            time.Now().Add(s.cfg.SessionExpiry),
		ActiveOrganizationID: activeOrgID,
	}
	if err := s.sessions.CreateSession(ctx, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	accessToken, err := s.generateAccessToken(user, session.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: rawToken,
		User:         dto.NewUserResponse(user),
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User, sessionID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"sid":   sessionID.String(),
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) issueVerification(ctx context.Context, email string) error {
	rawBytes := make([]byte, 24)
	if _, err := rand.Read(rawBytes); err != nil {
		return err
	}
	return s.verifications.CreateVerification(ctx, &models.Verification{
		ID:         uuid.New(),
		Identifier: email,
		Value:      base64.URLEncoding.EncodeToString(rawBytes),
		ExpiresAt:  time.Now().Add(verificationTTL),
	})
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}

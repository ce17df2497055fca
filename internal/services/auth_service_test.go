package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"orgblog/internal/config"
	"orgblog/internal/dto"
	"orgblog/internal/models"
	"orgblog/internal/services"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		JWTAccessExpiry: 15 * time.Minute,
		SessionExpiry:   168 * time.Hour,
	}
}

func newAuthService(st *memStore) *services.AuthService {
	return services.NewAuthService(st, st, st, st, testConfig())
}

func seedCredentialUser(t *testing.T, st *memStore, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	u := &models.User{ID: uuid.New(), Name: "Login User", Email: email, Role: models.RoleMember}
	st.users[u.ID] = u
	a := &models.Account{
		ID:         uuid.New(),
		UserID:     u.ID,
		ProviderID: models.ProviderCredential,
		AccountID:  u.ID.String(),
		Password:   string(hash),
	}
	st.accounts[a.ID] = a
	return u
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates member user and issues tokens", func(t *testing.T) {
		st := newMemStore()
		svc := newAuthService(st)

		resp, err := svc.Register(ctx, &dto.RegisterRequest{
			Name:     "Fresh User",
			Email:    "fresh@example.com",
			Password: "longenough",
		})
		require.NoError(t, err)
		require.NotEmpty(t, resp.AccessToken)
		require.NotEmpty(t, resp.RefreshToken)
		require.Equal(t, models.RoleMember, resp.User.Role)
		require.False(t, resp.User.EmailVerified)

		// One pending verification token for the new address.
		require.Len(t, st.verifications, 1)
		for _, v := range st.verifications {
			require.Equal(t, "fresh@example.com", v.Identifier)
		}
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		st := newMemStore()
		existing := seedCredentialUser(t, st, "taken@example.com", "longenough")
		svc := newAuthService(st)

		_, err := svc.Register(ctx, &dto.RegisterRequest{
			Name:     "Imposter",
			Email:    existing.Email,
			Password: "longenough",
		})
		require.ErrorIs(t, err, services.ErrConflict)
	})

	t.Run("access token carries the user and session claims", func(t *testing.T) {
		st := newMemStore()
		svc := newAuthService(st)

		resp, err := svc.Register(ctx, &dto.RegisterRequest{
			Name:     "Claims User",
			Email:    "claims@example.com",
			Password: "longenough",
		})
		require.NoError(t, err)

		parsed, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		require.Equal(t, resp.User.ID.String(), claims["sub"])
		require.Equal(t, "claims@example.com", claims["email"])
		require.NotEmpty(t, claims["sid"])
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		st := newMemStore()
		u := seedCredentialUser(t, st, "login@example.com", "correcthorse")
		svc := newAuthService(st)

		resp, err := svc.Login(ctx, &dto.LoginRequest{Email: u.Email, Password: "correcthorse"})
		require.NoError(t, err)
		require.Equal(t, u.ID, resp.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		st := newMemStore()
		u := seedCredentialUser(t, st, "login@example.com", "correcthorse")
		svc := newAuthService(st)

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: u.Email, Password: "wronghorse"})
		require.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("unknown email reads the same as wrong password", func(t *testing.T) {
		svc := newAuthService(newMemStore())
		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "whatever"})
		require.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("session pins the earliest membership as active org", func(t *testing.T) {
		st := newMemStore()
		u := seedCredentialUser(t, st, "orgs@example.com", "correcthorse")
		later := st.seedOrg("later")
		earlier := st.seedOrg("earlier")
		now := time.Now()
		st.seedMember(u.ID, later.ID, models.OrgRoleOwner, now)
		st.seedMember(u.ID, earlier.ID, models.OrgRoleMember, now.Add(-48*time.Hour))
		svc := newAuthService(st)

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: u.Email, Password: "correcthorse"})
		require.NoError(t, err)

		require.Len(t, st.sessions, 1)
		for _, s := range st.sessions {
			require.NotNil(t, s.ActiveOrganizationID)
			require.Equal(t, earlier.ID, *s.ActiveOrganizationID)
		}
	})

	t.Run("no memberships leaves active org unset", func(t *testing.T) {
		st := newMemStore()
		u := seedCredentialUser(t, st, "solo@example.com", "correcthorse")
		svc := newAuthService(st)

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: u.Email, Password: "correcthorse"})
		require.NoError(t, err)
		for _, s := range st.sessions {
			require.Nil(t, s.ActiveOrganizationID)
		}
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the session", func(t *testing.T) {
		st := newMemStore()
		u := seedCredentialUser(t, st, "refresh@example.com", "correcthorse")
		svc := newAuthService(st)

		first, err := svc.Login(ctx, &dto.LoginRequest{Email: u.Email, Password: "correcthorse"})
		require.NoError(t, err)

		second, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: first.RefreshToken})
		require.NoError(t, err)
		require.NotEqual(t, first.RefreshToken, second.RefreshToken)

		// The old token is revoked and cannot be replayed.
		_, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: first.RefreshToken})
		require.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := newAuthService(newMemStore())
		_, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: "nope"})
		require.ErrorIs(t, err, services.ErrInvalidToken)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	u := seedCredentialUser(t, st, "logout@example.com", "correcthorse")
	svc := newAuthService(st)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: u.Email, Password: "correcthorse"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, &dto.LogoutRequest{RefreshToken: resp.RefreshToken}))
	_, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.ErrorIs(t, err, services.ErrInvalidToken)

	// Logging out an unknown token is a silent no-op.
	require.NoError(t, svc.Logout(ctx, &dto.LogoutRequest{RefreshToken: "already-gone"}))
}

func TestVerifyEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("consumes the token and flips the flag", func(t *testing.T) {
		st := newMemStore()
		u := seedCredentialUser(t, st, "verify@example.com", "correcthorse")
		v := &models.Verification{
			ID:         uuid.New(),
			Identifier: u.Email,
			Value:      "verify-token",
			ExpiresAt:  time.Now().Add(time.Hour),
		}
		st.verifications[v.ID] = v
		svc := newAuthService(st)

		require.NoError(t, svc.VerifyEmail(ctx, "verify-token"))
		require.True(t, st.users[u.ID].EmailVerified)
		require.Empty(t, st.verifications)

		// Second use fails: the token is single-shot.
		require.ErrorIs(t, svc.VerifyEmail(ctx, "verify-token"), services.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		st := newMemStore()
		u := seedCredentialUser(t, st, "expired@example.com", "correcthorse")
		v := &models.Verification{
			ID:         uuid.New(),
			Identifier: u.Email,
			Value:      "stale-token",
			ExpiresAt:  time.Now().Add(-time.Hour),
		}
		st.verifications[v.ID] = v
		svc := newAuthService(st)

		require.ErrorIs(t, svc.VerifyEmail(ctx, "stale-token"), services.ErrInvalidToken)
		require.False(t, st.users[u.ID].EmailVerified)
	})
}

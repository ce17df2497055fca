package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"orgblog/internal/authz"
	"orgblog/internal/config"
	"orgblog/internal/dto"
	"orgblog/internal/handlers"
	"orgblog/internal/middleware"
	"orgblog/internal/models"
	"orgblog/internal/services"
	"orgblog/internal/store"
)

const testSecret = "handler-test-secret"

// userStore is the minimal in-memory store the admin routes touch. It
// doubles as the authz store.
type userStore struct {
	users    map[uuid.UUID]*models.User
	accounts map[uuid.UUID]*models.Account
}

func newUserStore() *userStore {
	return &userStore{
		users:    make(map[uuid.UUID]*models.User),
		accounts: make(map[uuid.UUID]*models.Account),
	}
}

func (s *userStore) seed(role models.GlobalRole) *models.User {
	id := uuid.New()
	u := &models.User{ID: id, Name: "Handler User", Email: id.String() + "@example.com", Role: role}
	s.users[id] = u
	return u
}

func (s *userStore) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *userStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *userStore) CreateUserWithAccount(_ context.Context, user *models.User, account *models.Account) error {
	uc, ac := *user, *account
	s.users[user.ID] = &uc
	s.accounts[account.ID] = &ac
	return nil
}

func (s *userStore) UpdateUser(_ context.Context, user *models.User) error {
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *userStore) SetCredentialPassword(_ context.Context, userID uuid.UUID, hash string) error {
	for _, a := range s.accounts {
		if a.UserID == userID && a.ProviderID == models.ProviderCredential {
			a.Password = hash
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *userStore) CredentialAccount(_ context.Context, userID uuid.UUID) (*models.Account, error) {
	for _, a := range s.accounts {
		if a.UserID == userID && a.ProviderID == models.ProviderCredential {
			cp := *a
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *userStore) DeleteUser(_ context.Context, id uuid.UUID) error {
	if _, ok := s.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *userStore) ListUsers(_ context.Context, limit, offset int) ([]models.User, int64, error) {
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (s *userStore) Membership(_ context.Context, userID, orgID uuid.UUID) (*models.Member, error) {
	return nil, store.ErrNotFound
}

func newTestApp(st *userStore) *fiber.App {
	cfg := &config.Config{JWTSecret: testSecret}
	az := authz.New(st)
	handler := handlers.NewAdminUserHandler(services.NewUserService(st))

	app := fiber.New()
	admin := app.Group("/api/v1/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(az))
	admin.Get("/users", handler.List)
	admin.Post("/users", handler.Create)
	admin.Get("/users/:id", handler.Get)
	admin.Patch("/users/:id", handler.Update)
	admin.Delete("/users/:id", handler.Delete)
	return app
}

func signToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var errResp dto.ErrorResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = json.Unmarshal(raw, &errResp)
	return resp, errResp
}

func TestAdminRoutesAuthorization(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		st := newUserStore()
		app := newTestApp(st)

		resp, errResp := doRequest(t, app, fiber.MethodGet, "/api/v1/admin/users", "", nil)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "not_authenticated", errResp.Code)
	})

	t.Run("member role is forbidden", func(t *testing.T) {
		st := newUserStore()
		member := st.seed(models.RoleMember)
		target := st.seed(models.RoleMember)
		app := newTestApp(st)

		resp, errResp := doRequest(t, app, fiber.MethodDelete, "/api/v1/admin/users/"+target.ID.String(), signToken(t, member.ID), nil)
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		require.Equal(t, "unauthorized", errResp.Code)
		require.Contains(t, st.users, target.ID, "target must be untouched")
	})

	t.Run("author role is forbidden", func(t *testing.T) {
		st := newUserStore()
		author := st.seed(models.RoleAuthor)
		app := newTestApp(st)

		resp, _ := doRequest(t, app, fiber.MethodGet, "/api/v1/admin/users", signToken(t, author.ID), nil)
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("token for a deleted user is forbidden", func(t *testing.T) {
		st := newUserStore()
		app := newTestApp(st)

		resp, _ := doRequest(t, app, fiber.MethodGet, "/api/v1/admin/users", signToken(t, uuid.New()), nil)
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestAdminCreateUser(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		st := newUserStore()
		admin := st.seed(models.RoleAdmin)
		app := newTestApp(st)

		resp, _ := doRequest(t, app, fiber.MethodPost, "/api/v1/admin/users", signToken(t, admin.ID), dto.CreateUserRequest{
			Name:     "Created User",
			Email:    "created@example.com",
			Password: "longenough",
			Role:     "author",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		created, err := st.UserByEmail(context.Background(), "created@example.com")
		require.NoError(t, err)
		require.Equal(t, models.RoleAuthor, created.Role)
	})

	t.Run("short password", func(t *testing.T) {
		st := newUserStore()
		admin := st.seed(models.RoleAdmin)
		app := newTestApp(st)

		resp, errResp := doRequest(t, app, fiber.MethodPost, "/api/v1/admin/users", signToken(t, admin.ID), dto.CreateUserRequest{
			Name:     "Short Password",
			Email:    "shortpw@example.com",
			Password: "short",
			Role:     "member",
		})
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "validation_error", errResp.Code)
		require.Contains(t, errResp.Details, "password")
	})
}

func TestAdminDeleteUser(t *testing.T) {
	t.Run("self-delete is rejected even for superAdmin", func(t *testing.T) {
		st := newUserStore()
		admin := st.seed(models.RoleSuperAdmin)
		app := newTestApp(st)

		resp, errResp := doRequest(t, app, fiber.MethodDelete, "/api/v1/admin/users/"+admin.ID.String(), signToken(t, admin.ID), nil)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "self_delete_forbidden", errResp.Code)
		require.Contains(t, st.users, admin.ID)
	})

	t.Run("deletes another user", func(t *testing.T) {
		st := newUserStore()
		admin := st.seed(models.RoleAdmin)
		target := st.seed(models.RoleMember)
		app := newTestApp(st)

		resp, _ := doRequest(t, app, fiber.MethodDelete, "/api/v1/admin/users/"+target.ID.String(), signToken(t, admin.ID), nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.NotContains(t, st.users, target.ID)
	})

	t.Run("unknown target", func(t *testing.T) {
		st := newUserStore()
		admin := st.seed(models.RoleAdmin)
		app := newTestApp(st)

		resp, errResp := doRequest(t, app, fiber.MethodDelete, "/api/v1/admin/users/"+uuid.NewString(), signToken(t, admin.ID), nil)
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		require.Equal(t, "not_found", errResp.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		st := newUserStore()
		admin := st.seed(models.RoleAdmin)
		app := newTestApp(st)

		resp, _ := doRequest(t, app, fiber.MethodDelete, "/api/v1/admin/users/not-a-uuid", signToken(t, admin.ID), nil)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

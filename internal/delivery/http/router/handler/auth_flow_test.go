package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftlink/config"
	"giftlink/internal/domain/entity"
	"giftlink/internal/domain/repository"
	"giftlink/internal/infra/auth"
	"giftlink/internal/usecase/impl"
)

// The flow test runs the register/login sequence through the wired echo
// stack with the real user service, real bcrypt hasher and real JWT
// service; only the store is an in-memory fake.

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user

	return &copied, nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memoryUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = uuid.New()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	copied := *user
	r.users[user.ID] = &copied

	return nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied

	return nil
}

type memoryTxManager struct {
	users *memoryUserRepo
}

func (tm *memoryTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(memoryRepoFactory{users: tm.users})
}

type memoryRepoFactory struct {
	users *memoryUserRepo
}

func (f memoryRepoFactory) UserRepo() repository.UserRepository { return f.users }

// GiftRepo is never reached by the auth flow.
func (f memoryRepoFactory) GiftRepo() repository.GiftRepository { return nil }

func postJSON(e *echo.Echo, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestAuthFlow_RegisterLoginWrongPassword(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.Secret = "end_to_end_flow_signing_secret"
	cfg.Auth.BcryptCost = 4 // minimum cost keeps the hashing cheap here
	cfg.Auth.TokenTTL = time.Hour

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	users := newMemoryUserRepo()
	userService := impl.NewUserService(impl.UserServiceParams{
		TxManager:    &memoryTxManager{users: users},
		UserRepo:     users,
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: tokens,
		Logger:       newDiscardLogger(),
	})

	e := newTestServerWithTokens(userService, &stubGiftUsecase{}, tokens)

	// Register alice.
	rec := postJSON(e, "/api/auth/register",
		`{"email":"alice@example.com","password":"correct horse","firstName":"Alice","lastName":"Walker"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var registered map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	assert.NotEmpty(t, registered["authtoken"])
	assert.Equal(t, "alice@example.com", registered["email"])

	// Login with the right password echoes the first name.
	rec = postJSON(e, "/api/auth/login",
		`{"email":"alice@example.com","password":"correct horse"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var loggedIn map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loggedIn))
	assert.Equal(t, "Alice", loggedIn["userName"])
	assert.Equal(t, "alice@example.com", loggedIn["userEmail"])

	// The issued token's subject is the stored account ID.
	claims, err := tokens.Validate(loggedIn["authtoken"])
	require.NoError(t, err)
	stored, err := users.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.UserID)

	// The token passes the auth middleware on a protected route.
	profileReq := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	profileReq.Header.Set("Authorization", "Bearer "+loggedIn["authtoken"])
	profileRec := httptest.NewRecorder()
	e.ServeHTTP(profileRec, profileReq)
	require.Equal(t, http.StatusOK, profileRec.Code)

	var profile map[string]string
	require.NoError(t, json.Unmarshal(profileRec.Body.Bytes(), &profile))
	assert.Equal(t, "alice@example.com", profile["email"])
	assert.Equal(t, "Alice", profile["firstName"])

	// Wrong password surfaces the observed 404.
	rec = postJSON(e, "/api/auth/login",
		`{"email":"alice@example.com","password":"incorrect horse"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var failed map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &failed))
	assert.Equal(t, "Wrong password", failed["error"])
}

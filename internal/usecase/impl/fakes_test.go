package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"giftlink/internal/domain/entity"
	"giftlink/internal/domain/repository"
	"giftlink/internal/domain/service"
	"giftlink/internal/errors"
)

// The services are tested against small in-memory fakes rather than a live
// database. Each fake honors the same sentinel-error contract as the real
// postgres repositories.

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- user repository fake ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User

	failWith error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user

	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
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

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	// Propagate generated values back to the entity like the real store does.
	user.ID = uuid.New()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	copied := *user
	r.users[user.ID] = &copied

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}

	// Touch UpdatedAt like the real store's save hook; keep it strictly
	// increasing so tests can observe advancement.
	user.UpdatedAt = time.Now()
	if !user.UpdatedAt.After(prev.UpdatedAt) {
		user.UpdatedAt = prev.UpdatedAt.Add(time.Nanosecond)
	}
	copied := *user
	r.users[user.ID] = &copied

	return nil
}

// count reports the number of stored rows.
func (r *fakeUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.users)
}

// --- gift repository fake ---

type fakeGiftRepo struct {
	mu    sync.Mutex
	gifts map[uuid.UUID]*entity.Gift

	failWith error
}

func newFakeGiftRepo() *fakeGiftRepo {
	return &fakeGiftRepo{gifts: make(map[uuid.UUID]*entity.Gift)}
}

func (r *fakeGiftRepo) FindAll(_ context.Context) ([]*entity.Gift, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	gifts := make([]*entity.Gift, 0, len(r.gifts))
	for _, gift := range r.gifts {
		copied := *gift
		gifts = append(gifts, &copied)
	}

	return gifts, nil
}

func (r *fakeGiftRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Gift, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	gift, ok := r.gifts[id]
	if !ok {
		return nil, repository.ErrGiftNotFound
	}
	copied := *gift

	return &copied, nil
}

func (r *fakeGiftRepo) Search(_ context.Context, filter repository.GiftFilter) ([]*entity.Gift, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var gifts []*entity.Gift
	for _, gift := range r.gifts {
		if filter.Name != "" && !strings.Contains(strings.ToLower(gift.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Category != "" && gift.Category != filter.Category {
			continue
		}
		if filter.Condition != "" && gift.Condition != filter.Condition {
			continue
		}
		if filter.MaxAgeYears != nil && gift.AgeYears > *filter.MaxAgeYears {
			continue
		}
		copied := *gift
		gifts = append(gifts, &copied)
	}

	return gifts, nil
}

func (r *fakeGiftRepo) Create(_ context.Context, gift *entity.Gift) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	gift.ID = uuid.New()
	copied := *gift
	r.gifts[gift.ID] = &copied

	return nil
}

func (r *fakeGiftRepo) Update(_ context.Context, gift *entity.Gift) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.gifts[gift.ID]; !ok {
		return repository.ErrGiftNotFound
	}
	copied := *gift
	r.gifts[gift.ID] = &copied

	return nil
}

func (r *fakeGiftRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.gifts[id]; !ok {
		return repository.ErrGiftNotFound
	}
	delete(r.gifts, id)

	return nil
}

// --- transaction manager fake ---

// fakeTxManager runs the callback against the same fakes the service holds
// directly. There is no rollback; tests assert on observable behavior only.
type fakeTxManager struct {
	userRepo *fakeUserRepo
	giftRepo *fakeGiftRepo

	failWith error
}

func (tm *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	if tm.failWith != nil {
		return tm.failWith
	}

	return fn(&fakeRepoFactory{userRepo: tm.userRepo, giftRepo: tm.giftRepo})
}

type fakeRepoFactory struct {
	userRepo *fakeUserRepo
	giftRepo *fakeGiftRepo
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository { return f.userRepo }
func (f *fakeRepoFactory) GiftRepo() repository.GiftRepository { return f.giftRepo }

// --- auth fakes ---

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

type fakeTokenService struct {
	failWith error
}

func (s *fakeTokenService) Issue(userID uuid.UUID) (string, error) {
	if s.failWith != nil {
		return "", s.failWith
	}

	return "token-for-" + userID.String(), nil
}

func (s *fakeTokenService) Validate(tokenString string) (*service.Claims, error) {
	id, err := uuid.Parse(strings.TrimPrefix(tokenString, "token-for-"))
	if err != nil {
		return nil, errors.New("invalid token")
	}

	return &service.Claims{UserID: id}, nil
}

// --- storage fakes ---

type fakeImageStore struct {
	saved    []string
	failWith error
}

func (s *fakeImageStore) Save(_ context.Context, filename, _ string, r io.Reader) (string, error) {
	if s.failWith != nil {
		return "", s.failWith
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	s.saved = append(s.saved, filename)

	return "http://images.local/gift_images/" + filename, nil
}

type fakeQRService struct {
	lastContent string
	failWith    error
}

func (s *fakeQRService) GenerateGiftQR(shareURL string) ([]byte, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	s.lastContent = shareURL

	return []byte("\x89PNG fake"), nil
}

package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/callscope/core/internal/models"
	"github.com/callscope/core/internal/pkg/token"
)

// memoryStore mimics the Mongo store's contract, including the unique index
// on email.
type memoryStore struct {
	mu    sync.Mutex
	users map[string]*models.UserAccount // keyed by hex id
}

func newMemoryStore() *memoryStore {
	return &memoryStore{users: map[string]*models.UserAccount{}}
}

func (m *memoryStore) FindByEmail(_ context.Context, email string) (*models.UserAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memoryStore) FindByID(_ context.Context, id string) (*models.UserAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memoryStore) Insert(_ context.Context, u *models.UserAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.users[u.ID.Hex()] = &cp
	return nil
}

func (m *memoryStore) UpdateByID(_ context.Context, id string, upd *ProfileUpdate) (*models.UserAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.PasswordHash != nil {
		u.Password = *upd.PasswordHash
	}
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

func newTestService(t *testing.T) (*Service, *memoryStore) {
	t.Helper()
	store := newMemoryStore()
	issuer := token.NewIssuer("test-secret-test-secret", time.Hour)
	return NewService(store, issuer, zap.NewNop()), store
}

func TestSignupNormalizesEmail(t *testing.T) {
	svc, _ := newTestService(t)

	u, err := svc.Signup(context.Background(), &SignupDTO{
		FirstName: "  Ada ",
		LastName:  "Lovelace",
		Email:     " Ada@Example.COM ",
		Password:  "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "Ada", u.FirstName)
	assert.NotEqual(t, "hunter22", u.Password, "password must be stored hashed")
	assert.True(t, strings.HasPrefix(u.Password, "$2"), "expected a bcrypt hash")
}

func TestSignupDuplicateEmailAnyCasing(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &SignupDTO{FirstName: "A", LastName: "B", Email: "dup@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, &SignupDTO{FirstName: "C", LastName: "D", Email: "DUP@Example.com", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, &SignupDTO{FirstName: "Ada", LastName: "L", Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)

	tok, u, err := svc.Login(ctx, &LoginDTO{Email: "ADA@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.Equal(t, created.ID, u.ID)

	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, created.ID.Hex(), claims.UserID())
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada", claims.FirstName)
}

func TestLoginMergesUnknownEmailAndWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &SignupDTO{FirstName: "Ada", LastName: "L", Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, _, errUnknown := svc.Login(ctx, &LoginDTO{Email: "nobody@example.com", Password: "hunter22"})
	_, _, errWrongPwd := svc.Login(ctx, &LoginDTO{Email: "ada@example.com", Password: "wrong"})

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPwd, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPwd.Error())
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, &SignupDTO{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)

	first := "Augusta"
	u, err := svc.UpdateProfile(ctx, created.ID.Hex(), &UpdateProfileDTO{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Augusta", u.FirstName)
	assert.Equal(t, "Lovelace", u.LastName)
	assert.Equal(t, "ada@example.com", u.Email)
}

func TestUpdateProfileRehashesPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, &SignupDTO{FirstName: "Ada", LastName: "L", Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)
	oldHash := created.Password

	newPwd := "correct-horse"
	u, err := svc.UpdateProfile(ctx, created.ID.Hex(), &UpdateProfileDTO{Password: &newPwd})
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, u.Password)
	assert.NotEqual(t, newPwd, u.Password)

	_, _, err = svc.Login(ctx, &LoginDTO{Email: "ada@example.com", Password: "correct-horse"})
	assert.NoError(t, err)
	_, _, err = svc.Login(ctx, &LoginDTO{Email: "ada@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	first := "X"
	_, err := svc.UpdateProfile(context.Background(), primitive.NewObjectID().Hex(), &UpdateProfileDTO{FirstName: &first})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetProfile(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

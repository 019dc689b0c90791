package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"mottars_backend/internal/config"
	"mottars_backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() (Service, Store) {
	store := NewMemoryStore(time.Hour)
	return NewService(store, &config.Config{DemoSellerID: "s1"}, zap.NewNop()), store
}

func TestGetSession_FreshSessionDefaults(t *testing.T) {
	svc, _ := newTestService()
	sess, err := svc.GetSession(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "sid-1", sess.ID)
	assert.False(t, sess.IsAuthenticated)
	assert.Empty(t, sess.CurrentSellerID)
	assert.Nil(t, sess.VerificationOverride)
}

func TestLoginLogout(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	sess, err := svc.Login(ctx, "sid", "")
	require.NoError(t, err)
	assert.True(t, sess.IsAuthenticated)
	assert.Equal(t, "s1", sess.CurrentSellerID)

	raw, ok, err := store.Get(ctx, "sid", KeyAuth)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", raw)

	require.NoError(t, svc.SetVerificationStatus(ctx, "sid", domain.VerificationPending))
	require.NoError(t, svc.Logout(ctx, "sid"))

	_, ok, err = store.Get(ctx, "sid", KeyAuth)
	require.NoError(t, err)
	assert.False(t, ok, "logout must remove the auth key")

	sess, err = svc.GetSession(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, sess.IsAuthenticated)
	assert.Empty(t, sess.CurrentSellerID)
	require.NotNil(t, sess.VerificationOverride)
	assert.Equal(t, domain.VerificationPending, *sess.VerificationOverride)
}

func TestLogin_ExplicitSeller(t *testing.T) {
	svc, _ := newTestService()
	sess, err := svc.Login(context.Background(), "sid", "s2")
	require.NoError(t, err)
	assert.Equal(t, "s2", sess.CurrentSellerID)
}

func TestAuthFlagMustBeExactlyTrue(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "sid", KeyAuth, "TRUE"))
	sess, err := svc.GetSession(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, sess.IsAuthenticated)

	require.NoError(t, svc.SetAuthenticated(ctx, "sid", true))
	sess, err = svc.GetSession(ctx, "sid")
	require.NoError(t, err)
	assert.True(t, sess.IsAuthenticated)

	require.NoError(t, svc.SetAuthenticated(ctx, "sid", false))
	sess, err = svc.GetSession(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, sess.IsAuthenticated)
}

func TestVerificationOverride(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	assert.Error(t, svc.SetVerificationStatus(ctx, "sid", domain.VerificationStatus("approved")))

	require.NoError(t, store.Set(ctx, "sid", KeySellerVerificationStatus, "garbage"))
	sess, err := svc.GetSession(ctx, "sid")
	require.NoError(t, err)
	assert.Nil(t, sess.VerificationOverride)

	require.NoError(t, svc.SetVerificationStatus(ctx, "sid", domain.VerificationRejected))
	sess, err = svc.GetSession(ctx, "sid")
	require.NoError(t, err)
	require.NotNil(t, sess.VerificationOverride)
	assert.Equal(t, domain.VerificationRejected, *sess.VerificationOverride)
}

func TestSessionsAreIsolated(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, err := svc.Login(ctx, "a", "")
	require.NoError(t, err)

	sess, err := svc.GetSession(ctx, "b")
	require.NoError(t, err)
	assert.False(t, sess.IsAuthenticated)
}

// MockStore is a mock type for session.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, sid, key string) (string, bool, error) {
	args := m.Called(ctx, sid, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockStore) Set(ctx context.Context, sid, key, value string) error {
	return m.Called(ctx, sid, key, value).Error(0)
}

func (m *MockStore) Delete(ctx context.Context, sid string, keys ...string) error {
	return m.Called(ctx, sid, keys).Error(0)
}

func TestGetSession_StoreErrorPropagates(t *testing.T) {
	store := new(MockStore)
	svc := NewService(store, &config.Config{DemoSellerID: "s1"}, zap.NewNop())
	ctx := context.Background()
	boom := errors.New("connection refused")

	store.On("Get", ctx, "sid", KeyAuth).Return("", false, boom).Once()
	_, err := svc.GetSession(ctx, "sid")
	assert.ErrorIs(t, err, boom)

	store.On("Delete", ctx, "sid", []string{KeyAuth, KeyCurrentSellerID}).Return(boom).Once()
	assert.ErrorIs(t, svc.Logout(ctx, "sid"), boom)
	store.AssertExpectations(t)
}

func TestNewStore(t *testing.T) {
	_, err := NewStore(&config.Config{SessionStore: "redis"}, nil, zap.NewNop())
	assert.Error(t, err)

	s, err := NewStore(&config.Config{SessionStore: "memory", SessionTTL: time.Hour}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, s)

	_, err = NewStore(&config.Config{SessionStore: "etcd"}, nil, zap.NewNop())
	assert.Error(t, err)
}

func TestMemoryStore_WriteRenewsWholeSession(t *testing.T) {
	store := NewMemoryStore(300 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sid", KeyAuth, "true"))
	require.NoError(t, store.Set(ctx, "sid", KeyCurrentSellerID, "s1"))
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, store.Set(ctx, "sid", KeySellerVerificationStatus, "pending"))
	time.Sleep(200 * time.Millisecond)

	for _, key := range []string{KeyAuth, KeyCurrentSellerID, KeySellerVerificationStatus} {
		_, ok, err := store.Get(ctx, "sid", key)
		require.NoError(t, err)
		assert.True(t, ok, "%s outlived its own write because a sibling was written", key)
	}

	require.NoError(t, store.Delete(ctx, "sid", KeyAuth))
	assert.Eventually(t, func() bool {
		_, ok, _ := store.Get(ctx, "sid", KeyCurrentSellerID)
		return !ok
	}, time.Second, 10*time.Millisecond, "a delete must not renew the session")
	_, ok, err := store.Get(ctx, "sid", KeySellerVerificationStatus)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_DeleteLastKeyDropsSession(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sid", KeyAuth, "true"))
	require.NoError(t, store.Delete(ctx, "sid", KeyAuth, KeyCurrentSellerID))
	_, ok, err := store.Get(ctx, "sid", KeyAuth)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, store.Delete(ctx, "missing", KeyAuth))
}

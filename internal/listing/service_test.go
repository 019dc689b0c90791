package listing

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"mottars_backend/internal/common"
	"mottars_backend/internal/platform/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockListingRepository is a mock type for listing.Repository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) ListCars(ctx context.Context) ([]Car, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Car), args.Error(1)
}

func (m *MockListingRepository) ListCarsBySeller(ctx context.Context, sellerID string) ([]Car, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Car), args.Error(1)
}

func (m *MockListingRepository) FindCarByID(ctx context.Context, id string) (*Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Car), args.Error(1)
}

func (m *MockListingRepository) FindSellerByID(ctx context.Context, id string) (*Seller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Seller), args.Error(1)
}

func (m *MockListingRepository) ListReviews(ctx context.Context) ([]Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Review), args.Error(1)
}

func TestService_GetCarDetail_NotFound(t *testing.T) {
	repo := new(MockListingRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	repo.On("FindCarByID", ctx, "nope").Return(nil, ErrRecordNotFound).Once()

	_, err := svc.GetCarDetail(ctx, "nope")
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Listing Not Found", apiErr.Message)
	assert.Equal(t, common.RedirectDetails{Redirect: "/", Label: "Back to Home"}, apiErr.Details)
	repo.AssertExpectations(t)
}

func TestService_GetCar_ImagelessIsNotFound(t *testing.T) {
	repo := new(MockListingRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	car := FixtureCars()[0]
	car.Images = []string{}
	repo.On("FindCarByID", ctx, "c1").Return(&car, nil).Once()

	_, err := svc.GetCar(ctx, "c1")
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "LISTING_NOT_FOUND", apiErr.Code)
}

func TestService_GetCar_MissingSellerIsNotFound(t *testing.T) {
	repo := new(MockListingRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	car := FixtureCars()[0]
	car.Seller = nil
	repo.On("FindCarByID", ctx, "c1").Return(&car, nil).Once()

	_, err := svc.GetCarDetail(ctx, "c1")
	require.ErrorIs(t, err, common.ErrListingNotFound)
	repo.AssertExpectations(t)
}

func TestService_GetCar_DanglingSellerRowIsNotFound(t *testing.T) {
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	_, err = SeedIfEmpty(context.Background(), db)
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = OFF").Error)
	require.NoError(t, db.Exec("UPDATE cars SET seller_id = ? WHERE id = ?", "s-gone", "c1").Error)

	svc := NewService(NewGORMRepository(db), zap.NewNop())
	_, err = svc.GetCar(context.Background(), "c1")
	require.ErrorIs(t, err, common.ErrListingNotFound)

	car, err := svc.GetCar(context.Background(), "c2")
	require.NoError(t, err)
	assert.NotNil(t, car.Seller)
}

func TestService_GetCarDetail_Success(t *testing.T) {
	repo := new(MockListingRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	sellers := FixtureSellers()
	car := FixtureCars()[0]
	car.Seller = &sellers[0]
	repo.On("FindCarByID", ctx, "c1").Return(&car, nil).Once()
	repo.On("ListReviews", ctx).Return(FixtureReviews(), nil).Once()

	detail, err := svc.GetCarDetail(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", detail.Car.ID)
	assert.Equal(t, "Mikano Motors Verified", detail.Seller.Name)
	assert.Len(t, detail.Reviews, 2)
	repo.AssertExpectations(t)
}

func TestService_RepositoryErrorsPropagate(t *testing.T) {
	repo := new(MockListingRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()
	boom := errors.New("db down")

	repo.On("ListCars", ctx).Return(nil, boom)
	repo.On("FindCarByID", ctx, "c1").Return(nil, boom)

	_, err := svc.Catalog(ctx, "")
	assert.ErrorIs(t, err, boom)
	_, err = svc.GetCar(ctx, "c1")
	assert.ErrorIs(t, err, boom)
	_, isAPI := common.IsAPIError(err)
	assert.False(t, isAPI)
}

func TestService_SellerListingsOnlyVisible(t *testing.T) {
	repo := new(MockListingRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	cars := FixtureCars()[:3]
	cars[1].Images = nil
	repo.On("ListCarsBySeller", ctx, "s1").Return(cars, nil).Once()

	got, err := svc.SellerListings(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c3"}, ids(got))
}

func TestService_GetSeller_NotFound(t *testing.T) {
	repo := new(MockListingRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()
	repo.On("FindSellerByID", ctx, "s9").Return(nil, ErrRecordNotFound).Once()

	_, err := svc.GetSeller(ctx, "s9")
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

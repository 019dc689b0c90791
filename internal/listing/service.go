// File: internal/listing/service.go
package listing

import (
	"context"
	"errors"

	"mottars_backend/internal/common"
	"mottars_backend/internal/domain"

	"go.uber.org/zap"
)

// Service defines the read-side catalog operations every page uses.
type Service interface {
	Catalog(ctx context.Context, query string) ([]Car, error)
	Featured(ctx context.Context, query string) ([]Car, error)
	Suggestions(ctx context.Context, partial string) ([]string, error)
	GetCar(ctx context.Context, id string) (*Car, error)
	GetCarDetail(ctx context.Context, id string) (*CarDetail, error)
	GetSeller(ctx context.Context, id string) (*Seller, error)
	SellerListings(ctx context.Context, sellerID string) ([]Car, error)
	ExportableCars(ctx context.Context) ([]Car, error)
	Brands() []Brand
}

// ServiceImplementation implements the listing Service interface.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new listing service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &ServiceImplementation{
		repo:   repo,
		logger: logger.Named("ListingService"),
	}
}

// ListingNotFound is the not-found outcome of a detail page, with the way back home.
func ListingNotFound() *common.APIError {
	return common.ErrListingNotFound.WithDetails(common.RedirectDetails{
		Redirect: domain.RouteHome,
		Label:    "Back to Home",
	})
}

func (s *ServiceImplementation) Catalog(ctx context.Context, query string) ([]Car, error) {
	cars, err := s.repo.ListCars(ctx)
	if err != nil {
		return nil, err
	}
	return FilterListings(cars, query), nil
}

func (s *ServiceImplementation) Featured(ctx context.Context, query string) ([]Car, error) {
	cars, err := s.repo.ListCars(ctx)
	if err != nil {
		return nil, err
	}
	return Featured(cars, query), nil
}

func (s *ServiceImplementation) Suggestions(ctx context.Context, partial string) ([]string, error) {
	cars, err := s.repo.ListCars(ctx)
	if err != nil {
		return nil, err
	}
	return Suggest(cars, partial), nil
}

// GetCar returns a visible car. Unknown, imageless and sellerless cars are all
// "Listing Not Found".
func (s *ServiceImplementation) GetCar(ctx context.Context, id string) (*Car, error) {
	car, err := s.repo.FindCarByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, ListingNotFound()
		}
		return nil, err
	}
	if !car.IsVisible() {
		s.logger.Debug("Car has no usable images, treating as not found", zap.String("carID", id))
		return nil, ListingNotFound()
	}
	if car.Seller == nil {
		s.logger.Warn("Car references a missing seller, treating as not found", zap.String("carID", id), zap.String("sellerID", car.SellerID))
		return nil, ListingNotFound()
	}
	return car, nil
}

func (s *ServiceImplementation) GetCarDetail(ctx context.Context, id string) (*CarDetail, error) {
	car, err := s.GetCar(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.repo.ListReviews(ctx)
	if err != nil {
		return nil, err
	}
	return &CarDetail{Car: *car, Seller: car.Seller, Reviews: reviews}, nil
}

func (s *ServiceImplementation) GetSeller(ctx context.Context, id string) (*Seller, error) {
	seller, err := s.repo.FindSellerByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Seller not found.")
		}
		return nil, err
	}
	return seller, nil
}

// SellerListings returns the seller's visible cars in dataset order.
func (s *ServiceImplementation) SellerListings(ctx context.Context, sellerID string) ([]Car, error) {
	cars, err := s.repo.ListCarsBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return Visible(cars), nil
}

// ExportableCars returns every visible car with its seller loaded.
func (s *ServiceImplementation) ExportableCars(ctx context.Context) ([]Car, error) {
	cars, err := s.repo.ListCars(ctx)
	if err != nil {
		return nil, err
	}
	return Visible(cars), nil
}

func (s *ServiceImplementation) Brands() []Brand {
	out := make([]Brand, len(Brands))
	copy(out, Brands)
	return out
}

// File: internal/seller/service.go
package seller

import (
	"context"

	"mottars_backend/internal/common"
	"mottars_backend/internal/domain"
	"mottars_backend/internal/listing"
	"mottars_backend/internal/session"
	"mottars_backend/internal/verification"

	"go.uber.org/zap"
)

// Service defines the seller dashboard operations.
type Service interface {
	Dashboard(ctx context.Context, sess *session.Session) (*Dashboard, error)
	CreateListingIntent(ctx context.Context, sess *session.Session) (verification.GateDecision, error)
}

// ServiceImplementation implements the seller Service interface.
type ServiceImplementation struct {
	listings      listing.Service
	verifications verification.Service
	logger        *zap.Logger
}

// NewService creates a new seller service.
func NewService(listings listing.Service, verifications verification.Service, logger *zap.Logger) Service {
	return &ServiceImplementation{
		listings:      listings,
		verifications: verifications,
		logger:        logger.Named("SellerService"),
	}
}

// Dashboard assembles the dashboard for the signed-in seller. The status is
// resolved from the store on every call, so a verification submitted on
// another page shows up immediately.
func (s *ServiceImplementation) Dashboard(ctx context.Context, sess *session.Session) (*Dashboard, error) {
	status, seller, err := s.verifications.ResolveForSession(ctx, sess)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, common.ErrNotFound.WithDetails("Seller profile not found.")
	}

	cars, err := s.listings.SellerListings(ctx, seller.ID)
	if err != nil {
		return nil, err
	}

	recent := make([]RecentListing, 0, RecentListingsLimit)
	for i := range cars {
		if i == RecentListingsLimit {
			break
		}
		recent = append(recent, RecentListing{
			ID:         cars[i].ID,
			Title:      cars[i].Title(),
			CoverImage: cars[i].CoverImage(),
			ListedAgo:  "2 days ago",
			Status:     "Active",
			Route:      domain.CarDetailsRoute(cars[i].ID),
		})
	}

	return &Dashboard{
		Seller:        seller,
		Greeting:      "Welcome back, " + seller.Name + ".",
		Status:        status,
		Advisory:      verification.AdvisoryFor(status),
		CreateListing: verification.CreateListingGate(status),
		Stats: Stats{
			TotalViews:       "24.5k",
			TotalViewsChange: "+12% this week",
			ActiveListings:   len(cars),
			NewMessages:      8,
			UnreadMessages:   3,
		},
		ProfileViews:   sampleProfileViews(),
		RecentListings: recent,
	}, nil
}

// CreateListingIntent is the "Create New Listing" button.
func (s *ServiceImplementation) CreateListingIntent(ctx context.Context, sess *session.Session) (verification.GateDecision, error) {
	decision, err := s.verifications.Gate(ctx, sess)
	if err != nil {
		return verification.GateDecision{}, err
	}
	s.logger.Debug("Create listing requested",
		zap.String("status", string(decision.Status)),
		zap.String("action", string(decision.Action)),
	)
	return decision, nil
}

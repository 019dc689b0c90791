// File: internal/detail/service.go
package detail

import (
	"context"
	"fmt"

	"mottars_backend/internal/config"
	"mottars_backend/internal/listing"
	"mottars_backend/internal/session"
	"mottars_backend/internal/view"

	"go.uber.org/zap"
)

// Service defines the detail-page visit operations.
type Service interface {
	Open(ctx context.Context, sessionID, carID string) (*VisitState, error)
	Get(sessionID, visitID string) (*VisitState, error)
	Close(sessionID, visitID string) error

	OpenOffer(ctx context.Context, sessionID, visitID string) (*VisitState, error)
	SubmitOffer(ctx context.Context, sessionID, visitID string, req OfferRequest) (*VisitState, error)
	CloseOffer(sessionID, visitID string) (*VisitState, error)

	OpenChat(sessionID, visitID string) (*VisitState, error)
	SendMessage(sessionID, visitID, text string) (*VisitState, error)
	CloseChat(sessionID, visitID string) (*VisitState, error)
}

// ServiceImplementation implements the detail Service interface.
type ServiceImplementation struct {
	listings listing.Service
	sessions session.Service
	views    *view.Registry
	delays   Delays
	logger   *zap.Logger
}

// NewService creates a new detail service.
func NewService(listings listing.Service, sessions session.Service, views *view.Registry, cfg *config.Config, logger *zap.Logger) Service {
	return &ServiceImplementation{
		listings: listings,
		sessions: sessions,
		views:    views,
		delays: Delays{
			OfferSubmit:       cfg.OfferSubmitDelay,
			OfferConfirmation: cfg.OfferConfirmationDelay,
			ChatReply:         cfg.ChatReplyDelay,
		},
		logger: logger.Named("DetailService"),
	}
}

// Open starts a visit of a visible car. Cars GetCar rejects are "Listing Not Found".
func (s *ServiceImplementation) Open(ctx context.Context, sessionID, carID string) (*VisitState, error) {
	car, err := s.listings.GetCar(ctx, carID)
	if err != nil {
		return nil, err
	}
	sellerName := car.Seller.Name

	var visit *Visit
	_, err = s.views.Open(sessionID, view.KindDetailVisit, func(id string, scope *view.Scope) (view.Closer, error) {
		visit = newVisit(id, car.ID, car.Title(), sellerName, scope, s.delays, s.logger)
		return visit, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open visit: %w", err)
	}
	return visit.State(), nil
}

func (s *ServiceImplementation) visit(sessionID, visitID string) (*Visit, error) {
	return view.Lookup[*Visit](s.views, sessionID, visitID)
}

func (s *ServiceImplementation) authenticated(ctx context.Context, sessionID string) (bool, error) {
	sess, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return sess.IsAuthenticated, nil
}

func (s *ServiceImplementation) Get(sessionID, visitID string) (*VisitState, error) {
	v, err := s.visit(sessionID, visitID)
	if err != nil {
		return nil, err
	}
	return v.State(), nil
}

func (s *ServiceImplementation) Close(sessionID, visitID string) error {
	return s.views.Close(sessionID, visitID)
}

func (s *ServiceImplementation) OpenOffer(ctx context.Context, sessionID, visitID string) (*VisitState, error) {
	v, err := s.visit(sessionID, visitID)
	if err != nil {
		return nil, err
	}
	authed, err := s.authenticated(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return v.OpenOffer(authed)
}

func (s *ServiceImplementation) SubmitOffer(ctx context.Context, sessionID, visitID string, req OfferRequest) (*VisitState, error) {
	v, err := s.visit(sessionID, visitID)
	if err != nil {
		return nil, err
	}
	authed, err := s.authenticated(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return v.SubmitOffer(authed, req)
}

func (s *ServiceImplementation) CloseOffer(sessionID, visitID string) (*VisitState, error) {
	v, err := s.visit(sessionID, visitID)
	if err != nil {
		return nil, err
	}
	return v.CloseOffer(), nil
}

func (s *ServiceImplementation) OpenChat(sessionID, visitID string) (*VisitState, error) {
	v, err := s.visit(sessionID, visitID)
	if err != nil {
		return nil, err
	}
	return v.OpenChat(), nil
}

func (s *ServiceImplementation) SendMessage(sessionID, visitID, text string) (*VisitState, error) {
	v, err := s.visit(sessionID, visitID)
	if err != nil {
		return nil, err
	}
	return v.SendMessage(text)
}

func (s *ServiceImplementation) CloseChat(sessionID, visitID string) (*VisitState, error) {
	v, err := s.visit(sessionID, visitID)
	if err != nil {
		return nil, err
	}
	return v.CloseChat(), nil
}

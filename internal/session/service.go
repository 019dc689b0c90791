// File: internal/session/service.go
package session

import (
	"context"
	"fmt"

	"mottars_backend/internal/config"
	"mottars_backend/internal/domain"

	"go.uber.org/zap"
)

// Session is a snapshot of the persisted session keys. Read it, act on it,
// and drop it; never cache it across requests.
type Session struct {
	ID                   string                     `json:"id"`
	IsAuthenticated      bool                       `json:"is_authenticated"`
	CurrentSellerID      string                     `json:"current_seller_id,omitempty"`
	VerificationOverride *domain.VerificationStatus `json:"verification_override,omitempty"`
}

// Service defines the read/write operations on a browser session.
type Service interface {
	GetSession(ctx context.Context, sid string) (*Session, error)
	SetAuthenticated(ctx context.Context, sid string, authenticated bool) error
	SetVerificationStatus(ctx context.Context, sid string, status domain.VerificationStatus) error
	Login(ctx context.Context, sid, sellerID string) (*Session, error)
	Logout(ctx context.Context, sid string) error
}

// ServiceImplementation implements Service on top of a Store.
type ServiceImplementation struct {
	store        Store
	demoSellerID string
	logger       *zap.Logger
}

// NewService creates a new session service.
func NewService(store Store, cfg *config.Config, logger *zap.Logger) Service {
	return &ServiceImplementation{
		store:        store,
		demoSellerID: cfg.DemoSellerID,
		logger:       logger.Named("SessionService"),
	}
}

// GetSession reads every key from the store. A session that was never written
// is unauthenticated with no override.
func (s *ServiceImplementation) GetSession(ctx context.Context, sid string) (*Session, error) {
	sess := &Session{ID: sid}

	auth, _, err := s.store.Get(ctx, sid, KeyAuth)
	if err != nil {
		return nil, fmt.Errorf("failed to read auth flag: %w", err)
	}
	sess.IsAuthenticated = auth == "true"

	raw, ok, err := s.store.Get(ctx, sid, KeySellerVerificationStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to read verification status: %w", err)
	}
	if ok {
		if status, valid := domain.ParseVerificationStatus(raw); valid {
			sess.VerificationOverride = &status
		} else {
			s.logger.Warn("Ignoring unknown persisted verification status", zap.String("value", raw))
		}
	}

	if sess.IsAuthenticated {
		sellerID, ok, err := s.store.Get(ctx, sid, KeyCurrentSellerID)
		if err != nil {
			return nil, fmt.Errorf("failed to read current seller: %w", err)
		}
		if !ok || sellerID == "" {
			sellerID = s.demoSellerID
		}
		sess.CurrentSellerID = sellerID
	}
	return sess, nil
}

func (s *ServiceImplementation) SetAuthenticated(ctx context.Context, sid string, authenticated bool) error {
	if authenticated {
		return s.store.Set(ctx, sid, KeyAuth, "true")
	}
	return s.store.Delete(ctx, sid, KeyAuth)
}

func (s *ServiceImplementation) SetVerificationStatus(ctx context.Context, sid string, status domain.VerificationStatus) error {
	if _, ok := domain.ParseVerificationStatus(string(status)); !ok {
		return fmt.Errorf("invalid verification status %q", status)
	}
	return s.store.Set(ctx, sid, KeySellerVerificationStatus, string(status))
}

// Login marks the session authenticated as sellerID, or the demo seller when empty.
func (s *ServiceImplementation) Login(ctx context.Context, sid, sellerID string) (*Session, error) {
	if sellerID == "" {
		sellerID = s.demoSellerID
	}
	if err := s.store.Set(ctx, sid, KeyCurrentSellerID, sellerID); err != nil {
		return nil, fmt.Errorf("failed to store current seller: %w", err)
	}
	if err := s.SetAuthenticated(ctx, sid, true); err != nil {
		return nil, fmt.Errorf("failed to store auth flag: %w", err)
	}
	s.logger.Info("Session authenticated", zap.String("sellerID", sellerID))
	return s.GetSession(ctx, sid)
}

// Logout removes the auth flag and the bound seller. The verification override
// belongs to the device and survives.
func (s *ServiceImplementation) Logout(ctx context.Context, sid string) error {
	if err := s.store.Delete(ctx, sid, KeyAuth, KeyCurrentSellerID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.logger.Info("Session logged out")
	return nil
}

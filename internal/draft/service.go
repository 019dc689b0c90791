// File: internal/draft/service.go
package draft

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"mottars_backend/internal/common"
	"mottars_backend/internal/config"
	"mottars_backend/internal/session"
	"mottars_backend/internal/verification"
	"mottars_backend/internal/view"

	"go.uber.org/zap"
)

// Service defines the listing creation workflow.
type Service interface {
	Open(ctx context.Context, sess *session.Session) (*DraftState, error)
	Get(sessionID, draftID string) (*DraftState, error)
	SaveDetails(sessionID, draftID string, details Details) (*DraftState, error)
	Next(sessionID, draftID string) (*DraftState, error)
	Back(sessionID, draftID string) (*DraftState, error)
	AddPhotoURL(sessionID, draftID, url string) (*DraftState, error)
	UploadPhoto(sessionID, draftID string, fh *multipart.FileHeader) (*DraftState, error)
	RemovePhoto(sessionID, draftID string, index int) (*DraftState, error)
	Publish(ctx context.Context, sess *session.Session, draftID string) (*DraftState, error)
	Close(sessionID, draftID string) error
}

// ServiceImplementation implements the draft Service interface.
type ServiceImplementation struct {
	verifications verification.Service
	views         *view.Registry
	store         PhotoStore
	delay         time.Duration
	logger        *zap.Logger
}

// NewService creates a new draft service.
func NewService(
	verifications verification.Service,
	views *view.Registry,
	store PhotoStore,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &ServiceImplementation{
		verifications: verifications,
		views:         views,
		store:         store,
		delay:         cfg.PublishDelay,
		logger:        logger.Named("DraftService"),
	}
}

// requireGate stops unverified and pending sellers before any draft work happens.
func (s *ServiceImplementation) requireGate(ctx context.Context, sess *session.Session) error {
	decision, err := s.verifications.Gate(ctx, sess)
	if err != nil {
		return err
	}
	if !decision.Allowed() {
		return common.ErrVerificationRequired.WithDetails(decision)
	}
	return nil
}

// Open starts a new draft at the details stage, discarding any draft the session had.
func (s *ServiceImplementation) Open(ctx context.Context, sess *session.Session) (*DraftState, error) {
	if err := s.requireGate(ctx, sess); err != nil {
		return nil, err
	}
	s.views.CloseKind(sess.ID, view.KindListingDraft)

	var d *Draft
	_, err := s.views.Open(sess.ID, view.KindListingDraft, func(id string, scope *view.Scope) (view.Closer, error) {
		d = newDraft(id, scope, s.store, s.delay, s.logger)
		return d, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open listing draft: %w", err)
	}
	return d.State(), nil
}

func (s *ServiceImplementation) draft(sessionID, draftID string) (*Draft, error) {
	return view.Lookup[*Draft](s.views, sessionID, draftID)
}

func (s *ServiceImplementation) Get(sessionID, draftID string) (*DraftState, error) {
	d, err := s.draft(sessionID, draftID)
	if err != nil {
		return nil, err
	}
	return d.State(), nil
}

func (s *ServiceImplementation) SaveDetails(sessionID, draftID string, details Details) (*DraftState, error) {
	d, err := s.draft(sessionID, draftID)
	if err != nil {
		return nil, err
	}
	return d.SaveDetails(details)
}

func (s *ServiceImplementation) Next(sessionID, draftID string) (*DraftState, error) {
	d, err := s.draft(sessionID, draftID)
	if err != nil {
		return nil, err
	}
	return d.Next()
}

func (s *ServiceImplementation) Back(sessionID, draftID string) (*DraftState, error) {
	d, err := s.draft(sessionID, draftID)
	if err != nil {
		return nil, err
	}
	return d.Back()
}

func (s *ServiceImplementation) AddPhotoURL(sessionID, draftID, url string) (*DraftState, error) {
	d, err := s.draft(sessionID, draftID)
	if err != nil {
		return nil, err
	}
	return d.AddPhotoURL(url)
}

func (s *ServiceImplementation) UploadPhoto(sessionID, draftID string, fh *multipart.FileHeader) (*DraftState, error) {
	d, err := s.draft(sessionID, draftID)
	if err != nil {
		return nil, err
	}
	return d.UploadPhoto(fh)
}

func (s *ServiceImplementation) RemovePhoto(sessionID, draftID string, index int) (*DraftState, error) {
	d, err := s.draft(sessionID, draftID)
	if err != nil {
		return nil, err
	}
	return d.RemovePhoto(index)
}

// Publish re-checks the gate, since the seller's status may have changed since the draft opened.
func (s *ServiceImplementation) Publish(ctx context.Context, sess *session.Session, draftID string) (*DraftState, error) {
	d, err := s.draft(sess.ID, draftID)
	if err != nil {
		return nil, err
	}
	if err := s.requireGate(ctx, sess); err != nil {
		return nil, err
	}
	return d.Publish()
}

func (s *ServiceImplementation) Close(sessionID, draftID string) error {
	return s.views.Close(sessionID, draftID)
}

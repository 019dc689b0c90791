// File: internal/verification/service.go
package verification

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"mottars_backend/internal/common"
	"mottars_backend/internal/config"
	"mottars_backend/internal/domain"
	"mottars_backend/internal/listing"
	"mottars_backend/internal/session"
	"mottars_backend/internal/view"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the verification operations.
type Service interface {
	ResolveForSession(ctx context.Context, sess *session.Session) (domain.VerificationStatus, *listing.Seller, error)
	Status(ctx context.Context, sess *session.Session) (*StatusResponse, error)
	Gate(ctx context.Context, sess *session.Session) (GateDecision, error)

	StartFlow(ctx context.Context, sess *session.Session) (*FlowState, error)
	GetFlow(sessionID, flowID string) (*FlowState, error)
	SavePersonal(sessionID, flowID string, info PersonalInfo) (*FlowState, error)
	Back(sessionID, flowID string) (*FlowState, error)
	Submit(sessionID, flowID string, docs DocumentInfo) (*FlowState, error)
	CloseFlow(sessionID, flowID string) error

	ListSubmissions(ctx context.Context, status domain.VerificationStatus) ([]Submission, error)
	Review(ctx context.Context, id uuid.UUID, status domain.VerificationStatus) (*Submission, error)
}

// ServiceImplementation implements the verification Service interface.
type ServiceImplementation struct {
	repo     Repository
	sessions session.Service
	listings listing.Service
	views    *view.Registry
	delay    time.Duration
	logger   *zap.Logger
}

// NewService creates a new verification service.
func NewService(
	repo Repository,
	sessions session.Service,
	listings listing.Service,
	views *view.Registry,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &ServiceImplementation{
		repo:     repo,
		sessions: sessions,
		listings: listings,
		views:    views,
		delay:    cfg.VerificationDelay,
		logger:   logger.Named("VerificationService"),
	}
}

// ResolveForSession combines the signed-in seller's record with the session override.
// An unknown seller id resolves as if there were no record.
func (s *ServiceImplementation) ResolveForSession(ctx context.Context, sess *session.Session) (domain.VerificationStatus, *listing.Seller, error) {
	var seller *listing.Seller
	if sess.CurrentSellerID != "" {
		found, err := s.listings.GetSeller(ctx, sess.CurrentSellerID)
		if err != nil {
			if apiErr, ok := common.IsAPIError(err); !ok || apiErr.StatusCode != http.StatusNotFound {
				return "", nil, err
			}
			s.logger.Warn("Session points at an unknown seller", zap.String("sellerID", sess.CurrentSellerID))
		} else {
			seller = found
		}
	}
	return ResolveStatus(seller, sess.VerificationOverride), seller, nil
}

func (s *ServiceImplementation) Status(ctx context.Context, sess *session.Session) (*StatusResponse, error) {
	status, _, err := s.ResolveForSession(ctx, sess)
	if err != nil {
		return nil, err
	}
	return &StatusResponse{
		Status:   status,
		Advisory: AdvisoryFor(status),
		Gate:     CreateListingGate(status),
		CanStart: CanStartFlow(status),
	}, nil
}

func (s *ServiceImplementation) Gate(ctx context.Context, sess *session.Session) (GateDecision, error) {
	status, _, err := s.ResolveForSession(ctx, sess)
	if err != nil {
		return GateDecision{}, err
	}
	return CreateListingGate(status), nil
}

// StartFlow opens a fresh flow at step 1, replacing any flow the session already had.
func (s *ServiceImplementation) StartFlow(ctx context.Context, sess *session.Session) (*FlowState, error) {
	status, _, err := s.ResolveForSession(ctx, sess)
	if err != nil {
		return nil, err
	}
	if !CanStartFlow(status) {
		msg := "Your verification is already under review."
		if status == domain.VerificationVerified {
			msg = "Your account is already verified."
		}
		return nil, common.ErrConflict.WithDetails(msg)
	}

	if n := s.views.CloseKind(sess.ID, view.KindVerificationFlow); n > 0 {
		s.logger.Debug("Replaced open verification flows", zap.Int("count", n))
	}

	var flow *Flow
	sessionID, sellerID := sess.ID, sess.CurrentSellerID
	_, err = s.views.Open(sess.ID, view.KindVerificationFlow, func(id string, scope *view.Scope) (view.Closer, error) {
		flow = newFlow(id, sessionID, sellerID, scope, s.delay, s, s.logger)
		return flow, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open verification flow: %w", err)
	}
	return flow.State(), nil
}

func (s *ServiceImplementation) createSubmission(ctx context.Context, sub *Submission) error {
	return s.repo.Create(ctx, sub)
}

// markPending makes every page see the pending review on its next read.
func (s *ServiceImplementation) markPending(ctx context.Context, sessionID string) error {
	return s.sessions.SetVerificationStatus(ctx, sessionID, domain.VerificationPending)
}

func (s *ServiceImplementation) flow(sessionID, flowID string) (*Flow, error) {
	return view.Lookup[*Flow](s.views, sessionID, flowID)
}

func (s *ServiceImplementation) GetFlow(sessionID, flowID string) (*FlowState, error) {
	f, err := s.flow(sessionID, flowID)
	if err != nil {
		return nil, err
	}
	return f.State(), nil
}

func (s *ServiceImplementation) SavePersonal(sessionID, flowID string, info PersonalInfo) (*FlowState, error) {
	f, err := s.flow(sessionID, flowID)
	if err != nil {
		return nil, err
	}
	return f.SavePersonal(info)
}

func (s *ServiceImplementation) Back(sessionID, flowID string) (*FlowState, error) {
	f, err := s.flow(sessionID, flowID)
	if err != nil {
		return nil, err
	}
	return f.Back()
}

func (s *ServiceImplementation) Submit(sessionID, flowID string, docs DocumentInfo) (*FlowState, error) {
	f, err := s.flow(sessionID, flowID)
	if err != nil {
		return nil, err
	}
	return f.Submit(docs)
}

func (s *ServiceImplementation) CloseFlow(sessionID, flowID string) error {
	return s.views.Close(sessionID, flowID)
}

func (s *ServiceImplementation) ListSubmissions(ctx context.Context, status domain.VerificationStatus) ([]Submission, error) {
	return s.repo.List(ctx, status)
}

// Review records the out-of-band decision on a pending submission and pushes
// it to the submitting session.
func (s *ServiceImplementation) Review(ctx context.Context, id uuid.UUID, status domain.VerificationStatus) (*Submission, error) {
	if status != domain.VerificationVerified && status != domain.VerificationRejected {
		return nil, common.ErrBadRequest.WithDetails("A review decision must be 'verified' or 'rejected'.")
	}
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != domain.VerificationPending {
		return nil, common.ErrConflict.WithDetails(fmt.Sprintf("Submission was already %s.", sub.Status))
	}

	now := s.views.Clock().Now().UTC()
	if err := s.repo.UpdateStatus(ctx, id, status, now); err != nil {
		return nil, err
	}
	if err := s.sessions.SetVerificationStatus(ctx, sub.SessionID, status); err != nil {
		return nil, fmt.Errorf("failed to update session verification status: %w", err)
	}

	sub.Status = status
	sub.ReviewedAt = &now
	s.logger.Info("Verification reviewed",
		zap.String("submissionID", id.String()),
		zap.String("status", string(status)),
	)
	return sub, nil
}

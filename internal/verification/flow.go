package verification

import (
	"context"
	"strings"
	"sync"
	"time"

	"mottars_backend/internal/common"
	"mottars_backend/internal/domain"
	"mottars_backend/internal/view"

	"go.uber.org/zap"
)

// submitter completes a flow in two writes. A flow that stored its row but
// failed to mark the session only repeats the second write.
type submitter interface {
	createSubmission(ctx context.Context, sub *Submission) error
	markPending(ctx context.Context, sessionID string) error
}

// Flow is the server-held state of one verification page.
type Flow struct {
	mu sync.Mutex

	id        string
	sessionID string
	sellerID  string
	scope     *view.Scope
	delay     time.Duration
	submitter submitter
	logger    *zap.Logger

	step         Step
	personal     *PersonalInfo
	documents    *DocumentInfo
	submitting   bool
	stored       *Submission
	submissionID string
	lastError    string
}

func newFlow(id, sessionID, sellerID string, scope *view.Scope, delay time.Duration, sub submitter, logger *zap.Logger) *Flow {
	return &Flow{
		id:        id,
		sessionID: sessionID,
		sellerID:  sellerID,
		scope:     scope,
		delay:     delay,
		submitter: sub,
		logger:    logger,
		step:      StepPersonal,
	}
}

// Close implements view.Closer. Pending submissions die with the scope.
func (f *Flow) Close() {}

// State returns a snapshot for rendering.
func (f *Flow) State() *FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stateLocked()
}

func (f *Flow) stateLocked() *FlowState {
	st := &FlowState{
		ID:           f.id,
		Step:         f.step,
		StepName:     f.step.String(),
		Submitting:   f.submitting,
		SubmissionID: f.submissionID,
		Error:        f.lastError,
	}
	if f.personal != nil {
		p := *f.personal
		st.Personal = &p
	}
	if f.documents != nil {
		d := *f.documents
		st.Documents = &d
	}
	switch f.step {
	case StepPersonal:
		st.Title = "Step 1: Personal Information"
		st.Message = "Provide your legal details as they appear on your ID."
	case StepDocuments:
		st.Title = "Step 2: Documentation"
		st.Message = "Upload a valid government issued ID."
		st.IDTypes = IDTypes
	case StepConfirmation:
		st.Title = "Verification Submitted!"
		st.Message = confirmationMessage
		st.Redirect = domain.RouteSellerDashboard
	}
	return st
}

// SavePersonal records step 1 and advances to step 2.
func (f *Flow) SavePersonal(in PersonalInfo) (*FlowState, error) {
	info, err := normalizePersonal(in, f.scope.Now())
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepPersonal {
		return nil, common.ErrConflict.WithDetails("Personal information can only be edited on step 1.")
	}
	f.personal = &info
	f.step = StepDocuments
	f.lastError = ""
	return f.stateLocked(), nil
}

// Back returns from step 2 to step 1. Entered data is kept.
func (f *Flow) Back() (*FlowState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepDocuments || f.submitting {
		return nil, common.ErrConflict.WithDetails("Cannot go back from this step.")
	}
	if f.stored != nil {
		return nil, common.ErrConflict.WithDetails("Your details are already saved. Submit again to finish.")
	}
	f.step = StepPersonal
	return f.stateLocked(), nil
}

// Submit records step 2 and schedules the simulated submission. The returned
// state has Submitting set; step 3 appears once the delay has elapsed.
func (f *Flow) Submit(in DocumentInfo) (*FlowState, error) {
	docs, err := normalizeDocuments(in)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepDocuments || f.personal == nil {
		return nil, common.ErrConflict.WithDetails("Complete step 1 before submitting documents.")
	}
	if f.submitting {
		return nil, common.ErrConflict.WithDetails("Verification is already being submitted.")
	}
	if f.stored == nil {
		f.documents = &docs
	}
	f.submitting = true
	f.lastError = ""
	f.scope.After(f.delay, f.complete)
	return f.stateLocked(), nil
}

func (f *Flow) complete() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.scope.Closed() || !f.submitting {
		return
	}
	f.submitting = false

	ctx := context.Background()
	if f.stored == nil {
		sub := &Submission{
			SessionID:    f.sessionID,
			SellerID:     f.sellerID,
			FirstName:    f.personal.FirstName,
			LastName:     f.personal.LastName,
			DateOfBirth:  f.personal.DateOfBirth,
			Gender:       f.personal.Gender,
			BusinessName: f.personal.BusinessName,
			Phone:        f.personal.Phone,
			IDType:       f.documents.IDType,
			IDNumber:     f.documents.IDNumber,
			IDImageRef:   f.documents.IDImageRef,
			Status:       domain.VerificationPending,
		}
		if err := f.submitter.createSubmission(ctx, sub); err != nil {
			f.fail("Failed to persist verification submission", err)
			return
		}
		f.stored = sub
	}
	if err := f.submitter.markPending(ctx, f.sessionID); err != nil {
		f.fail("Failed to mark session verification pending", err)
		return
	}
	f.submissionID = f.stored.ID.String()
	f.step = StepConfirmation
	f.logger.Info("Verification submitted", zap.String("flowID", f.id), zap.String("submissionID", f.submissionID))
}

func (f *Flow) fail(msg string, err error) {
	f.logger.Error(msg, zap.String("flowID", f.id), zap.Error(err))
	f.lastError = "We could not submit your verification. Please try again."
}

func normalizePersonal(in PersonalInfo, now time.Time) (PersonalInfo, error) {
	out := PersonalInfo{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		DateOfBirth:  strings.TrimSpace(in.DateOfBirth),
		Gender:       strings.TrimSpace(in.Gender),
		BusinessName: strings.TrimSpace(in.BusinessName),
		Phone:        strings.TrimSpace(in.Phone),
	}
	errs := map[string]string{}
	if out.FirstName == "" {
		errs["FirstName"] = "The firstname field is required."
	}
	if out.LastName == "" {
		errs["LastName"] = "The lastname field is required."
	}
	if dob, err := time.Parse("2006-01-02", out.DateOfBirth); err != nil {
		errs["DateOfBirth"] = "The dateofbirth field must be a valid date in the format 2006-01-02."
	} else if dob.After(now) {
		errs["DateOfBirth"] = "The dateofbirth field cannot be in the future."
	}
	if len(errs) > 0 {
		return PersonalInfo{}, common.NewValidationAPIError(errs)
	}
	return out, nil
}

func normalizeDocuments(in DocumentInfo) (DocumentInfo, error) {
	out := DocumentInfo{
		IDType:     strings.TrimSpace(in.IDType),
		IDNumber:   strings.TrimSpace(in.IDNumber),
		IDImageRef: strings.TrimSpace(in.IDImageRef),
	}
	errs := map[string]string{}
	if out.IDType == "" {
		errs["IDType"] = "The idtype field is required."
	}
	if out.IDNumber == "" {
		errs["IDNumber"] = "The idnumber field is required."
	}
	if len(errs) > 0 {
		return DocumentInfo{}, common.NewValidationAPIError(errs)
	}
	return out, nil
}

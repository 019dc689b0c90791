// Package verification owns the seller identity-verification state: how the
// effective status is resolved, what it permits, and the two-step flow that
// moves a seller from unverified to pending.
package verification

import (
	"mottars_backend/internal/domain"
	"mottars_backend/internal/listing"
)

// ResolveStatus returns the session override when present, else the seller
// record's default. A seller record with no usable status falls back to its
// legacy IsVerified flag.
func ResolveStatus(seller *listing.Seller, override *domain.VerificationStatus) domain.VerificationStatus {
	if override != nil {
		if status, ok := domain.ParseVerificationStatus(string(*override)); ok {
			return status
		}
	}
	if seller == nil {
		return domain.VerificationUnverified
	}
	if status, ok := domain.ParseVerificationStatus(string(seller.VerificationStatus)); ok {
		return status
	}
	if seller.IsVerified {
		return domain.VerificationVerified
	}
	return domain.VerificationUnverified
}

// GateAction is the outcome of trying to create a listing.
type GateAction string

const (
	GateProceed  GateAction = "proceed"
	GateRedirect GateAction = "redirect"
	GateBlocked  GateAction = "blocked"
)

// GateDecision tells the client what happens when "Create Listing" is pressed.
// Route is empty when the action is blocked; the client stays where it is.
type GateDecision struct {
	Status  domain.VerificationStatus `json:"status"`
	Action  GateAction                `json:"action"`
	Route   string                    `json:"route,omitempty"`
	Message string                    `json:"message,omitempty"`
}

// Allowed reports whether a listing may be created.
func (d GateDecision) Allowed() bool { return d.Action == GateProceed }

// CreateListingGate decides the create-listing action for a resolved status.
func CreateListingGate(status domain.VerificationStatus) GateDecision {
	switch status {
	case domain.VerificationVerified:
		return GateDecision{Status: status, Action: GateProceed, Route: domain.RouteCreateListing}
	case domain.VerificationPending:
		return GateDecision{
			Status:  status,
			Action:  GateBlocked,
			Message: "Your verification is under review. You can create listings once your account has been approved.",
		}
	case domain.VerificationRejected:
		return GateDecision{
			Status:  status,
			Action:  GateRedirect,
			Route:   domain.RouteSellerVerification,
			Message: "Your previous verification was not approved. Please resubmit your details.",
		}
	default:
		return GateDecision{
			Status:  domain.VerificationUnverified,
			Action:  GateRedirect,
			Route:   domain.RouteSellerVerification,
			Message: "Please verify your identity before creating a listing.",
		}
	}
}

// Advisory is the single status panel shown on the seller dashboard.
type Advisory struct {
	Panel       domain.VerificationStatus `json:"panel"`
	Title       string                    `json:"title"`
	Message     string                    `json:"message"`
	ActionLabel string                    `json:"action_label,omitempty"`
	ActionRoute string                    `json:"action_route,omitempty"`
}

// AdvisoryFor maps a status to exactly one of the unverified, pending or
// verified panels. Rejected sellers see the unverified panel with a resubmit prompt.
func AdvisoryFor(status domain.VerificationStatus) Advisory {
	switch status {
	case domain.VerificationVerified:
		return Advisory{
			Panel:   domain.VerificationVerified,
			Title:   "Verified Seller",
			Message: "Your account is fully verified. You have access to all premium features.",
		}
	case domain.VerificationPending:
		return Advisory{
			Panel:   domain.VerificationPending,
			Title:   "Verification Pending",
			Message: "We are reviewing your documents. This usually takes 2-3 business days.",
		}
	case domain.VerificationRejected:
		return Advisory{
			Panel:       domain.VerificationUnverified,
			Title:       "Verification Not Approved",
			Message:     "We could not approve your last submission. Please check your details and submit again.",
			ActionLabel: "Resubmit Verification",
			ActionRoute: domain.RouteSellerVerification,
		}
	default:
		return Advisory{
			Panel:       domain.VerificationUnverified,
			Title:       "Verify your Identity",
			Message:     "Verify your identity to start selling on Mottars.",
			ActionLabel: "Verify Now",
			ActionRoute: domain.RouteSellerVerification,
		}
	}
}

// CanStartFlow reports whether a new verification flow may begin from status.
func CanStartFlow(status domain.VerificationStatus) bool {
	return status == domain.VerificationUnverified || status == domain.VerificationRejected
}

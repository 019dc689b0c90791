package domain

import "strings"

// VerificationStatus is the identity-verification state of a seller.
type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
	VerificationRejected   VerificationStatus = "rejected"
)

// ParseVerificationStatus accepts the four known statuses, case-insensitively.
func ParseVerificationStatus(s string) (VerificationStatus, bool) {
	switch VerificationStatus(strings.ToLower(strings.TrimSpace(s))) {
	case VerificationUnverified:
		return VerificationUnverified, true
	case VerificationPending:
		return VerificationPending, true
	case VerificationVerified:
		return VerificationVerified, true
	case VerificationRejected:
		return VerificationRejected, true
	}
	return "", false
}

// Condition describes how a car was used before the listing.
type Condition string

const (
	ConditionNew          Condition = "New"
	ConditionForeignUsed  Condition = "Foreign Used"
	ConditionNigerianUsed Condition = "Nigerian Used"
)

// Conditions lists every accepted Condition in display order.
var Conditions = []Condition{ConditionNew, ConditionForeignUsed, ConditionNigerianUsed}

// Valid reports whether c is one of the known conditions.
func (c Condition) Valid() bool {
	for _, known := range Conditions {
		if c == known {
			return true
		}
	}
	return false
}

type Transmission string

const (
	TransmissionAutomatic Transmission = "Automatic"
	TransmissionManual    Transmission = "Manual"
)

type SellerType string

const (
	SellerPrivate SellerType = "Private"
	SellerDealer  SellerType = "Dealer"
)

// Client routes. Redirects and navigation targets returned by the API use these.
const (
	RouteHome               = "/"
	RouteCatalog            = "/cars"
	RouteLogin              = "/login"
	RouteSellerDashboard    = "/seller/dashboard"
	RouteCreateListing      = "/seller/create"
	RouteSellerVerification = "/seller/verification"
)

// CarDetailsRoute returns the detail page route for a car.
func CarDetailsRoute(carID string) string {
	return "/car/" + carID
}

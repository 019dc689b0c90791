// File: internal/seller/model.go
package seller

import (
	"mottars_backend/internal/domain"
	"mottars_backend/internal/listing"
	"mottars_backend/internal/verification"
)

// RecentListingsLimit is how many listings the dashboard previews.
const RecentListingsLimit = 3

// DailyViews is one bar of the profile views chart.
type DailyViews struct {
	Day   string `json:"name"`
	Views int    `json:"views"`
}

// Stats are the dashboard counters. They are sample figures, not measurements.
type Stats struct {
	TotalViews       string `json:"total_views"`
	TotalViewsChange string `json:"total_views_change"`
	ActiveListings   int    `json:"active_listings"`
	NewMessages      int    `json:"new_messages"`
	UnreadMessages   int    `json:"unread_messages"`
}

// RecentListing is one row of the "Your Listings" panel.
type RecentListing struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	CoverImage string `json:"cover_image"`
	ListedAgo  string `json:"listed_ago"`
	Status     string `json:"status"`
	Route      string `json:"route"`
}

// Dashboard is the seller dashboard page.
type Dashboard struct {
	Seller         *listing.Seller           `json:"seller"`
	Greeting       string                    `json:"greeting"`
	Status         domain.VerificationStatus `json:"verification_status"`
	Advisory       verification.Advisory     `json:"advisory"`
	CreateListing  verification.GateDecision `json:"create_listing"`
	Stats          Stats                     `json:"stats"`
	ProfileViews   []DailyViews              `json:"profile_views"`
	RecentListings []RecentListing           `json:"recent_listings"`
}

func sampleProfileViews() []DailyViews {
	return []DailyViews{
		{Day: "Mon", Views: 40},
		{Day: "Tue", Views: 30},
		{Day: "Wed", Views: 78},
		{Day: "Thu", Views: 50},
		{Day: "Fri", Views: 90},
		{Day: "Sat", Views: 120},
		{Day: "Sun", Views: 80},
	}
}

// File: internal/listing/model.go
package listing

import (
	"fmt"
	"time"

	"mottars_backend/internal/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Seller owns zero or more cars. VerificationStatus is the record default;
// a session override may replace it (see verification.ResolveStatus).
type Seller struct {
	ID                 string                    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Name               string                    `gorm:"type:varchar(255);not null" json:"name"`
	IsVerified         bool                      `gorm:"not null;default:false" json:"is_verified"`
	VerificationStatus domain.VerificationStatus `gorm:"type:varchar(20);not null" json:"verification_status"`
	Rating             float64                   `gorm:"not null;default:0" json:"rating"`
	ReviewCount        int                       `gorm:"not null;default:0" json:"review_count"`
	JoinedDate         string                    `gorm:"type:varchar(10);not null" json:"joined_date"` // YYYY-MM-DD
	Type               domain.SellerType         `gorm:"type:varchar(20);not null" json:"type"`
	LogoURL            *string                   `gorm:"type:text" json:"logo_url,omitempty"`
	CreatedAt          time.Time                 `json:"-"`
	UpdatedAt          time.Time                 `json:"-"`
}

// Car is a listing. Position keeps the dataset order stable across queries.
type Car struct {
	ID           string              `gorm:"primaryKey;type:varchar(32)"`
	Position     int                 `gorm:"not null;index"`
	Make         string              `gorm:"type:varchar(100);not null"`
	Model        string              `gorm:"type:varchar(100);not null"`
	Year         int                 `gorm:"not null"`
	Price        int64               `gorm:"not null"` // whole naira
	Mileage      int                 `gorm:"not null"` // km
	Location     string              `gorm:"type:varchar(255);not null"`
	Condition    domain.Condition    `gorm:"type:varchar(20);not null"`
	Transmission domain.Transmission `gorm:"type:varchar(20);not null"`
	Images       []string            `gorm:"serializer:json;type:text"`
	Description  string              `gorm:"type:text"`
	Features     []string            `gorm:"serializer:json;type:text"`
	SellerID     string              `gorm:"type:varchar(32);not null;index"`
	Seller       *Seller             `gorm:"foreignKey:SellerID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Review is shared sample content shown on every detail page.
type Review struct {
	ID        string `gorm:"primaryKey;type:varchar(32)"`
	Position  int    `gorm:"not null;index"`
	Author    string `gorm:"type:varchar(100);not null"`
	Rating    int    `gorm:"not null"`
	Text      string `gorm:"type:text"`
	Date      string `gorm:"type:varchar(10);not null"`
	CreatedAt time.Time
}

// Brand is a logo tile on the home page.
type Brand struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// Title is the display name, e.g. "2021 Toyota Camry XSE".
func (c *Car) Title() string {
	return fmt.Sprintf("%d %s %s", c.Year, c.Make, c.Model)
}

// CoverImage returns the first image, or "" when there is none.
func (c *Car) CoverImage() string {
	if len(c.Images) == 0 {
		return ""
	}
	return c.Images[0]
}

// IsVisible reports whether the car may appear in any listing view.
// Cars without a usable cover image are treated as incomplete.
func (c *Car) IsVisible() bool {
	return len(c.Images) > 0 && c.Images[0] != ""
}

var numberPrinter = message.NewPrinter(language.English)

// FormatPrice renders a naira amount with digit grouping, e.g. "₦28,500,000".
func FormatPrice(amount int64) string {
	return numberPrinter.Sprintf("₦%d", amount)
}

// FormatMileage renders a distance with digit grouping, e.g. "15,000 km".
func FormatMileage(km int) string {
	return numberPrinter.Sprintf("%d km", km)
}

// CarResponse is the API representation of a car.
type CarResponse struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Make           string              `json:"make"`
	Model          string              `json:"model"`
	Year           int                 `json:"year"`
	Price          int64               `json:"price"`
	PriceDisplay   string              `json:"price_display"`
	Mileage        int                 `json:"mileage"`
	MileageDisplay string              `json:"mileage_display"`
	Location       string              `json:"location"`
	Condition      domain.Condition    `json:"condition"`
	Transmission   domain.Transmission `json:"transmission"`
	Images         []string            `json:"images"`
	CoverImage     string              `json:"cover_image"`
	Description    string              `json:"description"`
	Features       []string            `json:"features"`
	SellerID       string              `json:"seller_id"`
	Route          string              `json:"route"`
}

// ToCarResponse converts a Car into its API representation.
func ToCarResponse(c *Car) CarResponse {
	images := c.Images
	if images == nil {
		images = []string{}
	}
	features := c.Features
	if features == nil {
		features = []string{}
	}
	return CarResponse{
		ID:             c.ID,
		Title:          c.Title(),
		Make:           c.Make,
		Model:          c.Model,
		Year:           c.Year,
		Price:          c.Price,
		PriceDisplay:   FormatPrice(c.Price),
		Mileage:        c.Mileage,
		MileageDisplay: FormatMileage(c.Mileage),
		Location:       c.Location,
		Condition:      c.Condition,
		Transmission:   c.Transmission,
		Images:         images,
		CoverImage:     c.CoverImage(),
		Description:    c.Description,
		Features:       features,
		SellerID:       c.SellerID,
		Route:          domain.CarDetailsRoute(c.ID),
	}
}

// ToCarResponses converts a slice, preserving order.
func ToCarResponses(cars []Car) []CarResponse {
	out := make([]CarResponse, 0, len(cars))
	for i := range cars {
		out = append(out, ToCarResponse(&cars[i]))
	}
	return out
}

type ReviewResponse struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Rating int    `json:"rating"`
	Text   string `json:"text"`
	Date   string `json:"date"`
}

func ToReviewResponses(reviews []Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ReviewResponse{ID: r.ID, Author: r.Author, Rating: r.Rating, Text: r.Text, Date: r.Date})
	}
	return out
}

// CarDetail is everything the detail page renders.
type CarDetail struct {
	Car     Car
	Seller  *Seller
	Reviews []Review
}

type CarDetailResponse struct {
	Car     CarResponse      `json:"car"`
	Seller  *Seller          `json:"seller,omitempty"`
	Reviews []ReviewResponse `json:"reviews"`
}

func ToCarDetailResponse(d *CarDetail) CarDetailResponse {
	return CarDetailResponse{
		Car:     ToCarResponse(&d.Car),
		Seller:  d.Seller,
		Reviews: ToReviewResponses(d.Reviews),
	}
}

// SearchQuery binds the free-text search parameter shared by the home and catalog pages.
type SearchQuery struct {
	Search string `form:"search"`
}

// SuggestQuery binds the auto-suggest input.
type SuggestQuery struct {
	Q string `form:"q"`
}

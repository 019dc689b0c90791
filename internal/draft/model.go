// File: internal/draft/model.go
package draft

import (
	"mottars_backend/internal/domain"
)

// Stage is a step of the listing creation workflow.
type Stage int

const (
	StageDetails Stage = 1
	StagePhotos  Stage = 2
	StageReview  Stage = 3
)

func (s Stage) String() string {
	switch s {
	case StageDetails:
		return "details"
	case StagePhotos:
		return "photos"
	case StageReview:
		return "review"
	}
	return "unknown"
}

// MinYear is the oldest model year a listing may carry.
const MinYear = 1900

// Details is the car details form. Mileage is a pointer so that 0 km counts as present.
type Details struct {
	Make         string              `json:"make" binding:"required,max=100"`
	Model        string              `json:"model" binding:"required,max=100"`
	Year         int                 `json:"year" binding:"required,gte=1900"`
	Mileage      *int                `json:"mileage" binding:"required,gte=0"`
	Condition    domain.Condition    `json:"condition" binding:"required"`
	Price        int64               `json:"price" binding:"required,gt=0"`
	Description  string              `json:"description" binding:"required,max=5000"`
	Location     string              `json:"location,omitempty" binding:"omitempty,max=255"`
	Transmission domain.Transmission `json:"transmission,omitempty" binding:"omitempty,oneof=Automatic Manual"`
}

// PhotoURLRequest adds a photo that already has a URL.
type PhotoURLRequest struct {
	URL string `json:"url" binding:"required,url,max=2048"`
}

// Summary is the read-only card shown on the review stage.
type Summary struct {
	Title          string           `json:"title"`
	PriceDisplay   string           `json:"price_display"`
	MileageDisplay string           `json:"mileage_display"`
	Condition      domain.Condition `json:"condition"`
	Location       string           `json:"location,omitempty"`
	CoverImage     string           `json:"cover_image"`
	PhotoCount     int              `json:"photo_count"`
}

// DraftState is what the client renders for a draft.
type DraftState struct {
	ID         string             `json:"id"`
	Stage      Stage              `json:"stage"`
	StageName  string             `json:"stage_name"`
	Details    *Details           `json:"details,omitempty"`
	Photos     []string           `json:"photos"`
	CoverImage string             `json:"cover_image,omitempty"`
	CanAdvance bool               `json:"can_advance"`
	Summary    *Summary           `json:"summary,omitempty"`
	Publishing bool               `json:"publishing"`
	Published  bool               `json:"published"`
	Reference  string             `json:"reference,omitempty"`
	Redirect   string             `json:"redirect,omitempty"`
	Message    string             `json:"message,omitempty"`
	Conditions []domain.Condition `json:"conditions,omitempty"`
}

// File: internal/verification/model.go
package verification

import (
	"time"

	"mottars_backend/internal/common"
	"mottars_backend/internal/domain"
)

// Submission is a completed verification form awaiting an out-of-band decision.
type Submission struct {
	common.BaseModel
	SessionID    string                    `gorm:"type:varchar(128);not null;index" json:"-"`
	SellerID     string                    `gorm:"type:varchar(32);index" json:"seller_id"`
	FirstName    string                    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string                    `gorm:"type:varchar(100);not null" json:"last_name"`
	DateOfBirth  string                    `gorm:"type:varchar(10);not null" json:"date_of_birth"`
	Gender       string                    `gorm:"type:varchar(20)" json:"gender,omitempty"`
	BusinessName string                    `gorm:"type:varchar(255)" json:"business_name,omitempty"`
	Phone        string                    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	IDType       string                    `gorm:"type:varchar(100);not null" json:"id_type"`
	IDNumber     string                    `gorm:"type:varchar(100);not null" json:"id_number"`
	IDImageRef   string                    `gorm:"type:text" json:"id_image_ref,omitempty"`
	Status       domain.VerificationStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	ReviewedAt   *time.Time                `json:"reviewed_at,omitempty"`
}

// TableName specifies the table name for Submission.
func (Submission) TableName() string {
	return "verification_submissions"
}

// PersonalInfo is step 1 of the flow.
type PersonalInfo struct {
	FirstName    string `json:"first_name" binding:"required,max=100"`
	LastName     string `json:"last_name" binding:"required,max=100"`
	DateOfBirth  string `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Gender       string `json:"gender,omitempty" binding:"omitempty,oneof=Male Female male female"`
	BusinessName string `json:"business_name,omitempty" binding:"omitempty,max=255"`
	Phone        string `json:"phone,omitempty" binding:"omitempty,max=30"`
}

// DocumentInfo is step 2 of the flow.
type DocumentInfo struct {
	IDType     string `json:"id_type" binding:"required,max=100"`
	IDNumber   string `json:"id_number" binding:"required,max=100"`
	IDImageRef string `json:"id_image_ref,omitempty" binding:"omitempty,max=2048"`
}

// IDTypes are the documents offered by the form. Other values are accepted.
var IDTypes = []string{
	"National ID Card (NIN)",
	"Drivers License",
	"International Passport",
	"Voters Card",
}

// Step is the position of a verification flow.
type Step int

const (
	StepPersonal     Step = 1
	StepDocuments    Step = 2
	StepConfirmation Step = 3
)

func (s Step) String() string {
	switch s {
	case StepPersonal:
		return "personal"
	case StepDocuments:
		return "documents"
	case StepConfirmation:
		return "confirmation"
	}
	return "unknown"
}

// FlowState is what the client renders for a flow.
type FlowState struct {
	ID           string        `json:"id"`
	Step         Step          `json:"step"`
	StepName     string        `json:"step_name"`
	Personal     *PersonalInfo `json:"personal,omitempty"`
	Documents    *DocumentInfo `json:"documents,omitempty"`
	Submitting   bool          `json:"submitting"`
	SubmissionID string        `json:"submission_id,omitempty"`
	Title        string        `json:"title,omitempty"`
	Message      string        `json:"message,omitempty"`
	Redirect     string        `json:"redirect,omitempty"`
	Error        string        `json:"error,omitempty"`
	IDTypes      []string      `json:"id_types,omitempty"`
}

// StatusResponse is returned by the status endpoint.
type StatusResponse struct {
	Status   domain.VerificationStatus `json:"status"`
	Advisory Advisory                  `json:"advisory"`
	Gate     GateDecision              `json:"create_listing"`
	CanStart bool                      `json:"can_start_verification"`
}

const confirmationMessage = "Thank you for submitting your details. Our team will review your documents within 2-3 business days. You will be notified via email once approved."

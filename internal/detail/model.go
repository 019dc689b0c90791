// File: internal/detail/model.go
package detail

import "time"

// OfferState is the position of the offer dialog.
type OfferState string

const (
	OfferClosed         OfferState = "closed"
	OfferFormOpen       OfferState = "form_open"
	OfferSignInRequired OfferState = "sign_in_required"
	OfferSubmitting     OfferState = "submitting"
	OfferSent           OfferState = "sent"
)

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderSelf         Sender = "self"
	SenderCounterparty Sender = "counterparty"
)

const (
	chatGreetingFormat = "Hello! Thanks for your interest in the %s. How can I help you today?"
	chatReply          = "Thanks for your message! The car is still available. Would you like to schedule an inspection?"
)

// ChatMessage is one line of a visit's chat.
type ChatMessage struct {
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// OfferRequest is the offer form.
type OfferRequest struct {
	Amount  int64  `json:"amount" binding:"required,gt=0"`
	Message string `json:"message,omitempty" binding:"omitempty,max=1000"`
}

// ChatRequest is a message typed into the chat box.
type ChatRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

// OfferView is the offer dialog as the client renders it.
type OfferView struct {
	State    OfferState `json:"state"`
	Title    string     `json:"title,omitempty"`
	Message  string     `json:"message,omitempty"`
	Amount   int64      `json:"amount,omitempty"`
	Note     string     `json:"note,omitempty"`
	Redirect string     `json:"redirect,omitempty"`
}

// ChatView is the chat dialog with its full history for this visit.
type ChatView struct {
	Open     bool          `json:"open"`
	Messages []ChatMessage `json:"messages"`
	Typing   bool          `json:"typing"`
}

// VisitState is one detail-page visit.
type VisitState struct {
	ID       string    `json:"id"`
	CarID    string    `json:"car_id"`
	CarTitle string    `json:"car_title"`
	Offer    OfferView `json:"offer"`
	Chat     ChatView  `json:"chat"`
}

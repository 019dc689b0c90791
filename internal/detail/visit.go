package detail

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"mottars_backend/internal/common"
	"mottars_backend/internal/domain"
	"mottars_backend/internal/middleware"
	"mottars_backend/internal/view"

	"go.uber.org/zap"
)

// Delays are the simulated latencies of a visit.
type Delays struct {
	OfferSubmit       time.Duration
	OfferConfirmation time.Duration
	ChatReply         time.Duration
}

// Visit holds the offer and chat state of one detail page. Neither flow has
// any effect outside the visit.
type Visit struct {
	mu sync.Mutex

	id         string
	carID      string
	carTitle   string
	sellerName string
	scope      *view.Scope
	delays     Delays
	logger     *zap.Logger

	offer       OfferState
	offerAmount int64
	offerNote   string
	cancelOffer []func()
	chatOpen    bool
	chatSeeded  bool
	messages    []ChatMessage
	repliesOwed int
}

func newVisit(id, carID, carTitle, sellerName string, scope *view.Scope, delays Delays, logger *zap.Logger) *Visit {
	return &Visit{
		id:         id,
		carID:      carID,
		carTitle:   carTitle,
		sellerName: sellerName,
		scope:      scope,
		delays:     delays,
		logger:     logger,
		offer:      OfferClosed,
	}
}

// Close implements view.Closer. The scope cancels outstanding timers.
func (v *Visit) Close() {}

// State returns a snapshot for rendering.
func (v *Visit) State() *VisitState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stateLocked()
}

func (v *Visit) stateLocked() *VisitState {
	st := &VisitState{
		ID:       v.id,
		CarID:    v.carID,
		CarTitle: v.carTitle,
		Offer:    v.offerViewLocked(),
		Chat: ChatView{
			Open:     v.chatOpen,
			Messages: append([]ChatMessage(nil), v.messages...),
			Typing:   v.repliesOwed > 0,
		},
	}
	if st.Chat.Messages == nil {
		st.Chat.Messages = []ChatMessage{}
	}
	return st
}

func (v *Visit) offerViewLocked() OfferView {
	ov := OfferView{State: v.offer}
	switch v.offer {
	case OfferFormOpen:
		ov.Title = "Make an Offer"
	case OfferSignInRequired:
		ov.Title = "Make an Offer"
		ov.Message = "You need to sign in to make an offer."
		ov.Redirect = domain.RouteLogin
	case OfferSubmitting:
		ov.Title = "Make an Offer"
		ov.Amount = v.offerAmount
		ov.Note = v.offerNote
	case OfferSent:
		ov.Title = "Offer Sent!"
		ov.Message = fmt.Sprintf("Your offer has been sent to %s. You will be notified when they respond.", v.sellerName)
		ov.Amount = v.offerAmount
		ov.Note = v.offerNote
	}
	return ov
}

// OpenOffer shows the offer dialog: the form when signed in, a sign-in prompt otherwise.
func (v *Visit) OpenOffer(authenticated bool) (*VisitState, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch v.offer {
	case OfferSubmitting, OfferSent:
		return nil, common.ErrConflict.WithDetails("An offer is already being sent.")
	}
	if authenticated {
		v.offer = OfferFormOpen
	} else {
		v.offer = OfferSignInRequired
	}
	return v.stateLocked(), nil
}

// SubmitOffer sends the offer. Authentication is checked again here so a
// sign-out between opening and submitting falls back to the sign-in prompt.
func (v *Visit) SubmitOffer(authenticated bool, req OfferRequest) (*VisitState, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch v.offer {
	case OfferSubmitting, OfferSent:
		return nil, common.ErrConflict.WithDetails("An offer is already being sent.")
	case OfferClosed:
		return nil, common.ErrConflict.WithDetails("Open the offer form first.")
	}
	if !authenticated {
		v.offer = OfferSignInRequired
		return nil, middleware.SignInRequired()
	}
	if v.offer != OfferFormOpen {
		return nil, common.ErrConflict.WithDetails("Open the offer form first.")
	}
	if req.Amount <= 0 {
		return nil, common.NewValidationAPIError(map[string]string{"Amount": "The amount field must be greater than 0."})
	}

	v.offer = OfferSubmitting
	v.offerAmount = req.Amount
	v.offerNote = strings.TrimSpace(req.Message)
	v.cancelOffer = append(v.cancelOffer, v.scope.After(v.delays.OfferSubmit, v.offerDelivered))
	return v.stateLocked(), nil
}

func (v *Visit) offerDelivered() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.scope.Closed() || v.offer != OfferSubmitting {
		return
	}
	v.offer = OfferSent
	v.logger.Debug("Offer sent", zap.String("visitID", v.id), zap.Int64("amount", v.offerAmount))
	v.cancelOffer = append(v.cancelOffer, v.scope.After(v.delays.OfferConfirmation, v.offerDismissed))
}

func (v *Visit) offerDismissed() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.scope.Closed() || v.offer != OfferSent {
		return
	}
	v.resetOfferLocked()
}

// CloseOffer dismisses the dialog and cancels anything it still had scheduled.
func (v *Visit) CloseOffer() *VisitState {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resetOfferLocked()
	return v.stateLocked()
}

func (v *Visit) resetOfferLocked() {
	for _, cancel := range v.cancelOffer {
		cancel()
	}
	v.cancelOffer = nil
	v.offer = OfferClosed
	v.offerAmount = 0
	v.offerNote = ""
}

// OpenChat opens the chat dialog. The first open seeds the greeting.
func (v *Visit) OpenChat() *VisitState {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.chatOpen = true
	if !v.chatSeeded {
		v.chatSeeded = true
		v.messages = append(v.messages, ChatMessage{
			Sender:    SenderCounterparty,
			Text:      fmt.Sprintf(chatGreetingFormat, v.carTitle),
			Timestamp: v.scope.Now(),
		})
	}
	return v.stateLocked()
}

// SendMessage appends the user's message at once and schedules one scripted reply.
func (v *Visit) SendMessage(text string) (*VisitState, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, common.NewValidationAPIError(map[string]string{"Text": "The text field is required."})
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.chatOpen {
		return nil, common.ErrConflict.WithDetails("Open the chat first.")
	}
	v.messages = append(v.messages, ChatMessage{Sender: SenderSelf, Text: text, Timestamp: v.scope.Now()})
	v.repliesOwed++
	v.scope.After(v.delays.ChatReply, v.reply)
	return v.stateLocked(), nil
}

func (v *Visit) reply() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.scope.Closed() {
		return
	}
	v.repliesOwed--
	v.messages = append(v.messages, ChatMessage{Sender: SenderCounterparty, Text: chatReply, Timestamp: v.scope.Now()})
}

// CloseChat hides the dialog. History stays for the rest of the visit.
func (v *Visit) CloseChat() *VisitState {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.chatOpen = false
	return v.stateLocked()
}

package detail

import (
	"context"
	"testing"
	"time"

	"mottars_backend/internal/common"
	"mottars_backend/internal/config"
	"mottars_backend/internal/domain"
	"mottars_backend/internal/listing"
	"mottars_backend/internal/platform/database"
	"mottars_backend/internal/session"
	"mottars_backend/internal/view"
	"mottars_backend/internal/view/viewtest"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

var testDelays = Delays{
	OfferSubmit:       time.Second,
	OfferConfirmation: 3 * time.Second,
	ChatReply:         1500 * time.Millisecond,
}

type VisitServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	clock    *clockwork.FakeClock
	views    *view.Registry
	sessions session.Service
	service  Service
	sid      string
}

func (s *VisitServiceTestSuite) SetupTest() {
	db, err := database.OpenInMemory()
	s.Require().NoError(err)
	s.Require().NoError(listing.Migrate(db))
	_, err = listing.SeedIfEmpty(context.Background(), db)
	s.Require().NoError(err)
	s.Require().NoError(db.Exec("UPDATE cars SET images = ? WHERE id = ?", "[]", "c10").Error)

	cfg := &config.Config{
		DemoSellerID:           "s1",
		OfferSubmitDelay:       testDelays.OfferSubmit,
		OfferConfirmationDelay: testDelays.OfferConfirmation,
		ChatReplyDelay:         testDelays.ChatReply,
	}
	logger := zap.NewNop()

	s.ctx = context.Background()
	s.clock = viewtest.NewClock()
	s.views = view.NewRegistry(s.clock, logger)
	s.sessions = session.NewService(session.NewMemoryStore(time.Hour), cfg, logger)
	s.service = NewService(listing.NewService(listing.NewGORMRepository(db), logger), s.sessions, s.views, cfg, logger)
	s.sid = "visitor-session-0001"
}

func (s *VisitServiceTestSuite) openVisit(carID string) *VisitState {
	st, err := s.service.Open(s.ctx, s.sid, carID)
	s.Require().NoError(err)
	return st
}

func (s *VisitServiceTestSuite) TestUnknownCarIsListingNotFound() {
	_, err := s.service.Open(s.ctx, s.sid, "does-not-exist")
	s.Require().ErrorIs(err, common.ErrListingNotFound)
	apiErr, _ := common.IsAPIError(err)
	s.Equal(common.RedirectDetails{Redirect: domain.RouteHome, Label: "Back to Home"}, apiErr.Details)

	_, err = s.service.Open(s.ctx, s.sid, "c10")
	s.ErrorIs(err, common.ErrListingNotFound, "imageless cars are not found either")
	s.Zero(s.views.Count())
}

func (s *VisitServiceTestSuite) TestChatScenario() {
	st := s.openVisit("c1")
	s.Equal("2021 Toyota Camry XSE", st.CarTitle)
	s.Empty(st.Chat.Messages)

	st, err := s.service.OpenChat(s.sid, st.ID)
	s.Require().NoError(err)
	s.Require().Len(st.Chat.Messages, 1)
	s.Equal(SenderCounterparty, st.Chat.Messages[0].Sender)
	s.Contains(st.Chat.Messages[0].Text, "2021 Toyota Camry XSE")

	st, err = s.service.SendMessage(s.sid, st.ID, "Hi")
	s.Require().NoError(err)
	s.Require().Len(st.Chat.Messages, 2)
	s.Equal(ChatMessage{Sender: SenderSelf, Text: "Hi", Timestamp: s.clock.Now()}, st.Chat.Messages[1])
	s.True(st.Chat.Typing)

	viewtest.Advance(s.T(), s.clock, s.views, testDelays.ChatReply-time.Millisecond)
	st, err = s.service.Get(s.sid, st.ID)
	s.Require().NoError(err)
	s.Len(st.Chat.Messages, 2)

	viewtest.Advance(s.T(), s.clock, s.views, time.Millisecond)
	st, err = s.service.Get(s.sid, st.ID)
	s.Require().NoError(err)
	s.Require().Len(st.Chat.Messages, 3)
	s.Equal(SenderCounterparty, st.Chat.Messages[2].Sender)
	s.Equal(chatReply, st.Chat.Messages[2].Text)
	s.False(st.Chat.Typing)

	viewtest.Advance(s.T(), s.clock, s.views, time.Minute)
	st, err = s.service.Get(s.sid, st.ID)
	s.Require().NoError(err)
	s.Len(st.Chat.Messages, 3, "exactly one reply per message")
}

func (s *VisitServiceTestSuite) TestChatGreetingSeededOnce() {
	st := s.openVisit("c1")
	_, err := s.service.OpenChat(s.sid, st.ID)
	s.Require().NoError(err)
	_, err = s.service.CloseChat(s.sid, st.ID)
	s.Require().NoError(err)
	st, err = s.service.OpenChat(s.sid, st.ID)
	s.Require().NoError(err)
	s.Len(st.Chat.Messages, 1)
}

func (s *VisitServiceTestSuite) TestChatRejectsBlankAndClosedChat() {
	st := s.openVisit("c2")
	_, err := s.service.SendMessage(s.sid, st.ID, "hello")
	s.ErrorIs(err, common.ErrConflict)

	_, err = s.service.OpenChat(s.sid, st.ID)
	s.Require().NoError(err)
	_, err = s.service.SendMessage(s.sid, st.ID, "   ")
	apiErr, ok := common.IsAPIError(err)
	s.Require().True(ok)
	s.Equal("VALIDATION_ERROR", apiErr.Code)
	s.Zero(s.views.Pending())
}

func (s *VisitServiceTestSuite) TestChatIsPerVisit() {
	first := s.openVisit("c1")
	_, err := s.service.OpenChat(s.sid, first.ID)
	s.Require().NoError(err)
	_, err = s.service.SendMessage(s.sid, first.ID, "Hi")
	s.Require().NoError(err)

	second := s.openVisit("c2")
	st, err := s.service.OpenChat(s.sid, second.ID)
	s.Require().NoError(err)
	s.Require().Len(st.Chat.Messages, 1)
	s.Contains(st.Chat.Messages[0].Text, "2020 Lexus RX 350")
}

func (s *VisitServiceTestSuite) TestOfferLifecycle() {
	_, err := s.sessions.Login(s.ctx, s.sid, "")
	s.Require().NoError(err)
	st := s.openVisit("c1")
	s.Equal(OfferClosed, st.Offer.State)

	_, err = s.service.SubmitOffer(s.ctx, s.sid, st.ID, OfferRequest{Amount: 1})
	s.ErrorIs(err, common.ErrConflict, "the form must be open")

	st, err = s.service.OpenOffer(s.ctx, s.sid, st.ID)
	s.Require().NoError(err)
	s.Equal(OfferFormOpen, st.Offer.State)

	st, err = s.service.SubmitOffer(s.ctx, s.sid, st.ID, OfferRequest{Amount: 27000000, Message: " Can we talk? "})
	s.Require().NoError(err)
	s.Equal(OfferSubmitting, st.Offer.State)
	s.Equal("Can we talk?", st.Offer.Note)

	_, err = s.service.SubmitOffer(s.ctx, s.sid, st.ID, OfferRequest{Amount: 27000000})
	s.ErrorIs(err, common.ErrConflict, "no double submit")

	viewtest.Advance(s.T(), s.clock, s.views, testDelays.OfferSubmit)
	st, err = s.service.Get(s.sid, st.ID)
	s.Require().NoError(err)
	s.Equal(OfferSent, st.Offer.State)
	s.Contains(st.Offer.Message, "Mikano Motors")

	viewtest.Advance(s.T(), s.clock, s.views, testDelays.OfferConfirmation)
	st, err = s.service.Get(s.sid, st.ID)
	s.Require().NoError(err)
	s.Equal(OfferClosed, st.Offer.State)
	s.Zero(st.Offer.Amount)
}

func (s *VisitServiceTestSuite) TestOfferNeedsSignIn() {
	st := s.openVisit("c1")
	st, err := s.service.OpenOffer(s.ctx, s.sid, st.ID)
	s.Require().NoError(err)
	s.Equal(OfferSignInRequired, st.Offer.State)
	s.Equal(domain.RouteLogin, st.Offer.Redirect)

	_, err = s.service.SubmitOffer(s.ctx, s.sid, st.ID, OfferRequest{Amount: 1000})
	s.ErrorIs(err, common.ErrSignInRequired)
	s.Zero(s.views.Pending())
}

func (s *VisitServiceTestSuite) TestLogoutRevertsOfferToSignIn() {
	_, err := s.sessions.Login(s.ctx, s.sid, "")
	s.Require().NoError(err)
	st := s.openVisit("c3")
	st, err = s.service.OpenOffer(s.ctx, s.sid, st.ID)
	s.Require().NoError(err)
	s.Equal(OfferFormOpen, st.Offer.State)

	s.Require().NoError(s.sessions.Logout(s.ctx, s.sid))

	_, err = s.service.SubmitOffer(s.ctx, s.sid, st.ID, OfferRequest{Amount: 5000000})
	s.Require().ErrorIs(err, common.ErrSignInRequired)
	apiErr, _ := common.IsAPIError(err)
	s.Equal(common.RedirectDetails{Redirect: domain.RouteLogin, Label: "Sign In"}, apiErr.Details)

	st, err = s.service.Get(s.sid, st.ID)
	s.Require().NoError(err)
	s.Equal(OfferSignInRequired, st.Offer.State)
	s.Zero(s.views.Pending())
}

func (s *VisitServiceTestSuite) TestClosingOfferCancelsPendingDelivery() {
	_, err := s.sessions.Login(s.ctx, s.sid, "")
	s.Require().NoError(err)
	st := s.openVisit("c1")
	_, err = s.service.OpenOffer(s.ctx, s.sid, st.ID)
	s.Require().NoError(err)
	_, err = s.service.SubmitOffer(s.ctx, s.sid, st.ID, OfferRequest{Amount: 100})
	s.Require().NoError(err)

	st, err = s.service.CloseOffer(s.sid, st.ID)
	s.Require().NoError(err)
	s.Equal(OfferClosed, st.Offer.State)
	s.Zero(s.views.Pending())

	viewtest.Advance(s.T(), s.clock, s.views, time.Minute)
	st, err = s.service.Get(s.sid, st.ID)
	s.Require().NoError(err)
	s.Equal(OfferClosed, st.Offer.State)
}

func (s *VisitServiceTestSuite) TestClosingVisitCancelsEverything() {
	_, err := s.sessions.Login(s.ctx, s.sid, "")
	s.Require().NoError(err)
	st := s.openVisit("c1")
	_, err = s.service.OpenOffer(s.ctx, s.sid, st.ID)
	s.Require().NoError(err)
	_, err = s.service.SubmitOffer(s.ctx, s.sid, st.ID, OfferRequest{Amount: 100})
	s.Require().NoError(err)
	_, err = s.service.OpenChat(s.sid, st.ID)
	s.Require().NoError(err)
	_, err = s.service.SendMessage(s.sid, st.ID, "Is it still available?")
	s.Require().NoError(err)
	s.Equal(2, s.views.Pending())

	s.Require().NoError(s.service.Close(s.sid, st.ID))
	s.Zero(s.views.Pending())
	_, err = s.service.Get(s.sid, st.ID)
	s.ErrorIs(err, common.ErrNotFound)
}

func (s *VisitServiceTestSuite) TestVisitsBelongToTheirSession() {
	st := s.openVisit("c1")
	_, err := s.service.OpenChat("someone-else-session", st.ID)
	s.ErrorIs(err, common.ErrNotFound)
}

func TestVisitServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VisitServiceTestSuite))
}

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/dependencies/mocks"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/model"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.clock, s.random, DefaultConfig())
	s.ctx = context.Background()
}

// queueIDs supplies the random strings one auth call consumes: the
// player ID first, then the session token.
func (s *ServiceSuite) queueIDs(ids ...string) {
	s.random.QueueString(ids...)
}

func (s *ServiceSuite) TestCreateGuestPlayer() {
	s.queueIDs("guestid000000000000001", "guesttoken000000000001")

	session, err := s.service.CreateGuestPlayer(s.ctx, "Drifter")
	s.Require().NoError(err)

	s.Equal(model.PlayerID("p_guestid000000000000001"), session.PlayerID)
	s.Equal("sess_guesttoken000000000001", session.Token)
	s.Equal("Drifter", session.Player.DisplayName)
	s.True(session.Player.IsGuest)
	s.Equal(s.clock.Now().Add(24*time.Hour), session.ExpiresAt)

	// The player is persisted
	p, err := s.storage.GetPlayer(s.ctx, session.PlayerID)
	s.Require().NoError(err)
	s.Equal("Drifter", p.DisplayName)
}

func (s *ServiceSuite) TestRegisterAndLogin() {
	s.queueIDs("regid00000000000000001", "regtoken00000000000001")

	session, err := s.service.RegisterPlayer(s.ctx, "drifter", "hunter22", "Drifter")
	s.Require().NoError(err)
	s.False(session.Player.IsGuest)

	s.queueIDs("logintoken000000000001")
	loginSession, err := s.service.Login(s.ctx, "drifter", "hunter22")
	s.Require().NoError(err)
	s.Equal(session.PlayerID, loginSession.PlayerID)
	s.NotEqual(session.Token, loginSession.Token)
}

func (s *ServiceSuite) TestRegisterDuplicateUsername() {
	s.queueIDs("regid00000000000000001", "regtoken00000000000001")
	_, err := s.service.RegisterPlayer(s.ctx, "drifter", "hunter22", "Drifter")
	s.Require().NoError(err)

	_, err = s.service.RegisterPlayer(s.ctx, "drifter", "other", "Imposter")
	s.ErrorIs(err, ErrUsernameExists)
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	s.queueIDs("regid00000000000000001", "regtoken00000000000001")
	_, err := s.service.RegisterPlayer(s.ctx, "drifter", "hunter22", "Drifter")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "drifter", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginUnknownUsername() {
	_, err := s.service.Login(s.ctx, "nobody", "whatever")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestValidateSession() {
	s.queueIDs("guestid000000000000001", "guesttoken000000000001")
	session, err := s.service.CreateGuestPlayer(s.ctx, "Drifter")
	s.Require().NoError(err)

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(session.PlayerID, validated.PlayerID)

	_, err = s.service.ValidateSession("sess_bogus")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestSessionExpiry() {
	s.queueIDs("guestid000000000000001", "guesttoken000000000001")
	session, err := s.service.CreateGuestPlayer(s.ctx, "Drifter")
	s.Require().NoError(err)

	s.clock.Advance(23 * time.Hour)
	_, err = s.service.ValidateSession(session.Token)
	s.NoError(err)

	s.clock.Advance(2 * time.Hour)
	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestInvalidateSession() {
	s.queueIDs("guestid000000000000001", "guesttoken000000000001")
	session, err := s.service.CreateGuestPlayer(s.ctx, "Drifter")
	s.Require().NoError(err)

	s.service.InvalidateSession(session.Token)
	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestGetPlayer() {
	s.queueIDs("guestid000000000000001", "guesttoken000000000001")
	session, err := s.service.CreateGuestPlayer(s.ctx, "Drifter")
	s.Require().NoError(err)

	p, err := s.service.GetPlayer(session.Token)
	s.Require().NoError(err)
	s.Equal("Drifter", p.DisplayName)
}

func (s *ServiceSuite) TestCleanExpiredSessions() {
	s.queueIDs("guestid000000000000001", "tokenfresh000000000001")
	fresh, err := s.service.CreateGuestPlayer(s.ctx, "Fresh")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)
	s.queueIDs("guestid000000000000002", "tokenlate0000000000001")
	late, err := s.service.CreateGuestPlayer(s.ctx, "Late")
	s.Require().NoError(err)

	s.service.CleanExpiredSessions()

	_, err = s.service.ValidateSession(fresh.Token)
	s.ErrorIs(err, ErrInvalidSession)
	_, err = s.service.ValidateSession(late.Token)
	s.NoError(err)
}

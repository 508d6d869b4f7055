package matcher

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	itemmodels "reclaim/internal/items/models"
	foundstore "reclaim/internal/items/store/found"
	loststore "reclaim/internal/items/store/lost"
	matchstore "reclaim/internal/match/store"
	"reclaim/internal/notify"
	id "reclaim/pkg/domain"
)

type recordingDispatcher struct {
	sent []notify.Notification
}

func (d *recordingDispatcher) DispatchAll(_ context.Context, notifications []notify.Notification) {
	d.sent = append(d.sent, notifications...)
}

func (d *recordingDispatcher) subjects() []string {
	out := make([]string, 0, len(d.sent))
	for _, n := range d.sent {
		out = append(out, n.Subject)
	}
	return out
}

type MatcherSuite struct {
	suite.Suite
	ctx        context.Context
	lost       *loststore.InMemory
	found      *foundstore.InMemory
	matches    *matchstore.InMemory
	dispatcher *recordingDispatcher
	matcher    *Matcher
}

func (s *MatcherSuite) SetupTest() {
	s.ctx = context.Background()
	s.lost = loststore.NewInMemory()
	s.found = foundstore.NewInMemory()
	s.matches = matchstore.NewInMemory()
	s.dispatcher = &recordingDispatcher{}
	s.matcher = New(s.lost, s.found, s.matches, s.dispatcher, slog.Default(), nil)
}

func TestMatcherSuite(t *testing.T) {
	suite.Run(t, new(MatcherSuite))
}

func (s *MatcherSuite) newLost(serial, email string) *itemmodels.LostItem {
	item := &itemmodels.LostItem{
		ID:           id.NewLostItemID(),
		Title:        "iPhone 12",
		SerialNumber: serial,
		FirstName:    "Alice",
		LastName:     "Owner",
		Phone:        "0700000001",
		Email:        email,
		Status:       itemmodels.StatusLost,
		CreatedAt:    time.Now(),
	}
	s.Require().NoError(s.lost.Create(s.ctx, item))
	return item
}

func (s *MatcherSuite) newFound(serial, email string) *itemmodels.FoundItem {
	item := &itemmodels.FoundItem{
		ID:           id.NewFoundItemID(),
		Name:         "Black iPhone",
		SerialNumber: serial,
		FirstName:    "Bob",
		LastName:     "Finder",
		Phone:        "0700000002",
		Email:        email,
		Status:       itemmodels.StatusFound,
		CreatedAt:    time.Now(),
	}
	s.Require().NoError(s.found.Create(s.ctx, item))
	return item
}

func (s *MatcherSuite) TestFoundReportMatchesExistingLostReport() {
	lost := s.newLost("SN123", "a@x.com")
	found := s.newFound("SN123", "b@x.com")

	s.matcher.OnFoundItemCreated(s.ctx, found)

	matches, err := s.matches.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(matches, 1)

	m := matches[0]
	s.Equal(lost.ID, m.LostItemID)
	s.Equal(found.ID, m.FoundItemID)
	s.Equal("Alice Owner", m.Snapshot.LosterName)
	s.Equal("a@x.com", m.Snapshot.LosterEmail)
	s.Equal("Bob Finder", m.Snapshot.FounderName)
	s.Equal("b@x.com", m.Snapshot.FounderEmail)
	s.Equal("Black iPhone", m.Snapshot.DeviceName, "device name comes from the found report when present")
	s.Equal("SN123", m.Snapshot.SerialNumber)

	s.ElementsMatch([]string{
		notify.SubjectLosterFoundTriggered,
		notify.SubjectFounderFoundTriggered,
	}, s.dispatcher.subjects())
}

func (s *MatcherSuite) TestLostReportMatchesAllFoundReports() {
	s.newFound("SN777", "finder1@x.com")
	s.newFound("SN777", "finder2@x.com")
	lost := s.newLost("SN777", "owner@x.com")

	s.matcher.OnLostItemCreated(s.ctx, lost)

	matches, err := s.matches.List(s.ctx)
	s.Require().NoError(err)
	s.Len(matches, 2)

	// Each match notifies both parties; the loster side uses the
	// lost-triggered wording.
	s.Len(s.dispatcher.sent, 4)
	for _, subject := range s.dispatcher.subjects() {
		s.Contains([]string{
			notify.SubjectLosterLostTriggered,
			notify.SubjectFounderLostTriggered,
		}, subject)
	}
}

func (s *MatcherSuite) TestDuplicatePairIsSilent() {
	lost := s.newLost("SN123", "a@x.com")
	found := s.newFound("SN123", "b@x.com")

	s.matcher.OnFoundItemCreated(s.ctx, found)
	s.Require().Len(s.dispatcher.sent, 2)

	// Re-running either direction for the same pair creates nothing and
	// notifies nobody.
	s.matcher.OnFoundItemCreated(s.ctx, found)
	s.matcher.OnLostItemCreated(s.ctx, lost)

	matches, err := s.matches.List(s.ctx)
	s.Require().NoError(err)
	s.Len(matches, 1)
	s.Len(s.dispatcher.sent, 2)
}

func (s *MatcherSuite) TestEmptySerialNeverMatches() {
	s.newLost("", "a@x.com")
	found := s.newFound("", "b@x.com")

	s.matcher.OnFoundItemCreated(s.ctx, found)

	matches, err := s.matches.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(matches)
	s.Empty(s.dispatcher.sent)
}

func (s *MatcherSuite) TestSerialsCompareByteForByte() {
	s.newLost("SN123", "a@x.com")
	found := s.newFound(" SN123", "b@x.com")

	s.matcher.OnFoundItemCreated(s.ctx, found)

	matches, err := s.matches.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(matches)
}

func (s *MatcherSuite) TestClaimedCounterpartsAreSkipped() {
	lost := s.newLost("SN900", "a@x.com")
	s.Require().NoError(s.lost.UpdateStatus(s.ctx, lost.ID, itemmodels.StatusClaimed))

	found := s.newFound("SN900", "b@x.com")
	s.matcher.OnFoundItemCreated(s.ctx, found)

	matches, err := s.matches.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(matches)
}

func (s *MatcherSuite) TestSnapshotSurvivesLaterItemEdits() {
	lost := s.newLost("SN123", "a@x.com")
	found := s.newFound("SN123", "b@x.com")

	s.matcher.OnFoundItemCreated(s.ctx, found)

	// Editing the stored item after the match must not reach the snapshot.
	stored, err := s.lost.FindByID(s.ctx, lost.ID)
	s.Require().NoError(err)
	stored.Email = "changed@x.com"
	stored.FirstName = "Renamed"

	matches, err := s.matches.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	s.Equal("a@x.com", matches[0].Snapshot.LosterEmail)
	s.Equal("Alice Owner", matches[0].Snapshot.LosterName)
}

func (s *MatcherSuite) TestPartiesWithoutEmailAreSkipped() {
	s.newLost("SN321", "")
	found := s.newFound("SN321", "b@x.com")

	s.matcher.OnFoundItemCreated(s.ctx, found)

	s.Require().Len(s.dispatcher.sent, 1)
	s.Equal(notify.SubjectFounderFoundTriggered, s.dispatcher.sent[0].Subject)
}

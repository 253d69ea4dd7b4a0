package internal

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/teknologkoren/strequekiosk/internal/log"
	"github.com/teknologkoren/strequekiosk/internal/models"
	"github.com/teknologkoren/strequekiosk/internal/repos"
	"github.com/teknologkoren/strequekiosk/internal/textmatch"
)

// RosterService keeps the snapshots of the user and quote lists and filters them
type RosterService interface {
	// ReplaceGroups replaces the user list snapshot
	ReplaceGroups(ctx context.Context, groups []models.Group) error
	// FilterUsers decides which users and groups are shown for the given filter query
	FilterUsers(ctx context.Context, query string) ([]textmatch.GroupVisibility, error)
	// ReplaceQuotes replaces the quote list snapshot
	ReplaceQuotes(ctx context.Context, quotes []models.Quote) error
	// FilterQuotes decides which quotes are shown for the given filter query
	FilterQuotes(ctx context.Context, query string) ([]textmatch.CardVisibility, error)
}

// -- RosterService implementation -------------------------------------------------------------------------------------

type rosterService struct {
	logger *logrus.Entry
	roster repos.RosterRepo
	quotes repos.QuoteRepo
}

// NewRosterService creates a new RosterService working on the given repos
func NewRosterService(roster repos.RosterRepo, quotes repos.QuoteRepo, logger *logrus.Entry) RosterService {
	return &rosterService{logger, roster, quotes}
}

func storageError(message string) *HTTPError {
	return MakeError(http.StatusInternalServerError, ErrCodeRepoError, message)
}

// ReplaceGroups replaces the user list snapshot
func (s *rosterService) ReplaceGroups(ctx context.Context, groups []models.Group) error {
	seen := make(map[uint]bool)
	for _, g := range groups {
		for _, u := range g.Users {
			if u.ID == 0 {
				return ErrRequiredField("id")
			}
			if seen[u.ID] {
				return MakeErrorWithData(
					http.StatusBadRequest,
					ErrCodeIllegalValue,
					"Every user can only be listed in one group",
					u.ID,
				)
			}
			seen[u.ID] = true
		}
	}
	if err := s.roster.Replace(groups); err != nil {
		s.logger.WithError(err).Error("Storing the roster failed")
		return storageError("Failed to store the user list")
	}
	s.logger.WithField(log.FldCount, len(seen)).Info("User list replaced")
	return nil
}

// FilterUsers decides which users and groups are shown for the given filter query
func (s *rosterService) FilterUsers(ctx context.Context, query string) ([]textmatch.GroupVisibility, error) {
	groups, err := s.roster.Groups()
	if err != nil {
		s.logger.WithError(err).Error("Loading the roster failed")
		return nil, storageError("Failed to load the user list")
	}
	in := make([]textmatch.Group, 0, len(groups))
	for _, g := range groups {
		cards := make([]textmatch.Card, 0, len(g.Users))
		for _, u := range g.Users {
			cards = append(cards, u.Card())
		}
		in = append(in, textmatch.Group{ID: g.ID, Cards: cards})
	}
	res := textmatch.Filter(textmatch.BuildMatcher(query), in)
	s.logger.WithField(log.FldFilter, query).Debug("Filtered user list")
	return res, nil
}

// ReplaceQuotes replaces the quote list snapshot
func (s *rosterService) ReplaceQuotes(ctx context.Context, quotes []models.Quote) error {
	for _, q := range quotes {
		if q.ID == 0 {
			return ErrRequiredField("id")
		}
	}
	if err := s.quotes.Replace(quotes); err != nil {
		s.logger.WithError(err).Error("Storing the quotes failed")
		return storageError("Failed to store the quote list")
	}
	s.logger.WithField(log.FldCount, len(quotes)).Info("Quote list replaced")
	return nil
}

// FilterQuotes decides which quotes are shown for the given filter query
func (s *rosterService) FilterQuotes(ctx context.Context, query string) ([]textmatch.CardVisibility, error) {
	quotes, err := s.quotes.All()
	if err != nil {
		s.logger.WithError(err).Error("Loading the quotes failed")
		return nil, storageError("Failed to load the quote list")
	}
	cards := make([]textmatch.Card, 0, len(quotes))
	for _, q := range quotes {
		cards = append(cards, textmatch.QuoteCard{ID: q.ID, Text: q.Text, Who: q.Who, When: q.When})
	}
	res := textmatch.Filter(textmatch.BuildMatcher(query), []textmatch.Group{{Cards: cards}})
	s.logger.WithField(log.FldFilter, query).Debug("Filtered quote list")
	return res[0].Cards, nil
}

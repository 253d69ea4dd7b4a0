package textmatch

// Card is a single displayable record that can be matched against a filter query
type Card interface {
	// CardID returns the identifier the renderer uses to locate the card
	CardID() uint
	// MatchedBy reports whether the card matches the given matcher
	MatchedBy(m *Matcher) bool
}

// UserCard holds the searchable fields of a user in the user list
type UserCard struct {
	ID        uint
	FirstName string
	LastName  string
	Nickname  string
	// Phone number in E.164 format, may be empty
	Phone string
}

// CardID implements Card
func (c UserCard) CardID() uint {
	return c.ID
}

// MatchedBy matches the full name, the nickname or the phone number
func (c UserCard) MatchedBy(m *Matcher) bool {
	return m.Matches(c.FirstName+" "+c.LastName) || m.Matches(c.Nickname) || m.MatchesPhone(c.Phone)
}

// QuoteCard holds the searchable fields of a quote in the quote list
type QuoteCard struct {
	ID   uint
	Text string
	// Who said it - optional
	Who *string
	// The date as displayed with the quote
	When string
}

// CardID implements Card
func (c QuoteCard) CardID() uint {
	return c.ID
}

// MatchedBy matches the quote text, the author if there is one, or the displayed date. Quotes are matched literally,
// diacritics are not folded.
func (c QuoteCard) MatchedBy(m *Matcher) bool {
	return m.MatchesLiteral(c.Text) || (c.Who != nil && m.MatchesLiteral(*c.Who)) || m.MatchesLiteral(c.When)
}

// Group is an ordered collection of cards that is shown as long as one of its cards is shown
type Group struct {
	ID    uint
	Cards []Card
}

// CardVisibility is the filter decision for a single card
type CardVisibility struct {
	ID    uint `json:"id"`
	Shown bool `json:"shown"`
}

// GroupVisibility is the filter decision for a group and all of its cards, in card order
type GroupVisibility struct {
	ID    uint             `json:"id"`
	Shown bool             `json:"shown"`
	Cards []CardVisibility `json:"cards"`
}

// Filter runs the matcher against every card of every group. A card is shown iff it matches, a group is shown iff
// at least one of its cards is shown. The result has one entry per group in input order.
func Filter(m *Matcher, groups []Group) []GroupVisibility {
	ret := make([]GroupVisibility, 0, len(groups))
	for _, g := range groups {
		gv := GroupVisibility{
			ID:    g.ID,
			Cards: make([]CardVisibility, 0, len(g.Cards)),
		}
		for _, c := range g.Cards {
			shown := c.MatchedBy(m)
			if shown {
				gv.Shown = true
			}
			gv.Cards = append(gv.Cards, CardVisibility{ID: c.CardID(), Shown: shown})
		}
		ret = append(ret, gv)
	}
	return ret
}

// Shown returns the IDs of all shown cards across the given groups
func Shown(groups []GroupVisibility) []uint {
	ret := []uint{}
	for _, g := range groups {
		for _, c := range g.Cards {
			if c.Shown {
				ret = append(ret, c.ID)
			}
		}
	}
	return ret
}

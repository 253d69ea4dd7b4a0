package models

// Quote is an entry of the quote list
type Quote struct {
	ID   uint   `db:"id" json:"id"`
	Text string `db:"text" json:"text"`
	// Who said it - not every quote is attributed
	Who *string `db:"who" json:"who,omitempty"`
	// The date as it is displayed with the quote
	When string `db:"displayDate" json:"when"`
	// Position in the list
	Position uint `db:"position" json:"-"`
}

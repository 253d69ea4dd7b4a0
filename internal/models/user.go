package models

import "github.com/teknologkoren/strequekiosk/internal/textmatch"

// User is a member shown as a card in the tally list
type User struct {
	// ID of the user on the tally server
	ID uint `db:"id" json:"id"`
	// ID of the group the user is listed in
	GroupID   uint   `db:"groupId" json:"groupId"`
	FirstName string `db:"firstName" json:"firstName"`
	LastName  string `db:"lastName" json:"lastName"`
	Nickname  string `db:"nickname" json:"nickname"`
	// Phone number in E.164 format
	Phone string `db:"phone" json:"phone"`
	// Position inside the group
	Position uint `db:"position" json:"-"`
}

// Card returns the searchable part of the user
func (u User) Card() textmatch.UserCard {
	return textmatch.UserCard{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Nickname:  u.Nickname,
		Phone:     u.Phone,
	}
}

// Group is a group of users - e.g. a voice or an age class - as listed on the tally page
type Group struct {
	ID   uint   `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	// Position of the group on the page
	Position uint   `db:"position" json:"-"`
	Users    []User `db:"-" json:"users"`
}

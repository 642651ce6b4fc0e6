package models

import "time"

// ItemRequest is a user's ask for an item nobody has listed yet.
type ItemRequest struct {
	ID          int64     `db:"id" json:"id"`
	Description string    `db:"description" json:"description"`
	RequesterID int64     `db:"requester_id" json:"-"`
	Created     time.Time `db:"created_at" json:"created"`
}

// RequestView is a request together with the items listed in answer to it.
type RequestView struct {
	ItemRequest
	Items []Item `json:"items"`
}

package entities

import "time"

// Item is a generated media post registered for reaction voting. ExternalRef
// is the identifier of the chat message hosting the item; a message hosts at
// most one item.
type Item struct {
	ItemID        string
	ExternalRef   string
	OwnerID       string
	Prompt        string
	MediaLocation string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ItemTally struct {
	ItemID        string
	ExternalRef   string
	OwnerID       string
	MediaLocation string
	Votes         int
}

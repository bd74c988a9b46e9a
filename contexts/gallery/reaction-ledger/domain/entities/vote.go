package entities

import "time"

// CastOutcome is the tri-state result of a vote insert. The third state is a
// plain error from the store; the two enumerated outcomes are only valid on a
// nil error.
type CastOutcome string

const (
	OutcomeCreated        CastOutcome = "created"
	OutcomeAlreadyExisted CastOutcome = "already_existed"
)

// Vote is identified by (ItemID, VoterID). ExternalRef is carried for
// traceability back to the originating message and is not part of identity.
type Vote struct {
	ItemID      string
	VoterID     string
	ExternalRef string
	CreatedAt   time.Time
}

// ReactionKind distinguishes the two ingress event directions.
type ReactionKind string

const (
	ReactionAdded   ReactionKind = "added"
	ReactionRemoved ReactionKind = "removed"
)

// ReactionEvent is the canonical ingress event shape at the contract boundary
// with the platform gateway.
type ReactionEvent struct {
	Kind           ReactionKind
	ExternalRef    string
	VoterID        string
	ActingIdentity string
	Gesture        string
}

// CorrectiveCommand instructs the gateway to undo a visible reaction whose
// vote was rejected as a duplicate.
type CorrectiveCommand struct {
	Kind        string
	ExternalRef string
	VoterID     string
}

const CorrectiveKindRetractReaction = "retract_visible_reaction"

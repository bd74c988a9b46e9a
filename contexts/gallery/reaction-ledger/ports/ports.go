package ports

import (
	"context"
	"time"

	"galleria/contexts/gallery/reaction-ledger/domain/entities"
	"galleria/internal/shared/events"
)

// ItemStore is the durable registry of posted items. RecordItem is an upsert
// by ItemID; re-registration with the same key overwrites mutable fields and
// is not an error. FindItemByExternalRef must be read-your-writes consistent
// with the most recent committed RecordItem.
type ItemStore interface {
	RecordItem(ctx context.Context, item entities.Item) error
	FindItemByExternalRef(ctx context.Context, externalRef string) (string, bool, error)
	GetItem(ctx context.Context, itemID string) (entities.Item, error)
}

// VoteStore enforces the one-vote-per-(item, voter) invariant at the storage
// layer. CastVote must be a single atomic conditional insert: exactly one
// concurrent caller for the same pair observes OutcomeCreated, the rest
// OutcomeAlreadyExisted. A storage failure is a distinct non-nil error and is
// never reported as OutcomeAlreadyExisted.
type VoteStore interface {
	CastVote(ctx context.Context, vote entities.Vote) (entities.CastOutcome, error)
	RetractVote(ctx context.Context, itemID string, voterID string) error
	CountVotes(ctx context.Context, itemID string) (int, error)
}

// CorrectiveSink executes engine-issued retractions against the platform.
// Delivery failures stay inside the sink: logged, dropped, never retried.
type CorrectiveSink interface {
	RetractVisibleReaction(ctx context.Context, cmd entities.CorrectiveCommand) error
}

// GeneratedMedia is the output of the external generation routine.
type GeneratedMedia struct {
	MediaID  string
	Location string
}

type MediaGenerator interface {
	Generate(ctx context.Context, prompt string) (GeneratedMedia, error)
}

// ItemPost is the renderable payload handed to the platform poster.
type ItemPost struct {
	ItemID        string
	OwnerID       string
	Prompt        string
	MediaLocation string
}

// MessagePoster posts an item message and seeds the initial vote gesture on
// it. PostItem returns the external ref of the created message.
type MessagePoster interface {
	PostItem(ctx context.Context, post ItemPost) (string, error)
	SeedVoteGesture(ctx context.Context, externalRef string) error
}

// TallyCache is a best-effort read cache for tally lookups; implementations
// decide expiry. A miss is never an error.
type TallyCache interface {
	Get(itemID string) (entities.ItemTally, bool)
	Set(tally entities.ItemTally)
}

// EventEnvelope reuses the canonical gateway envelope contract.
type EventEnvelope = events.Envelope

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

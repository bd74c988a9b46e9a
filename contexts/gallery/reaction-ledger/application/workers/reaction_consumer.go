package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	application "galleria/contexts/gallery/reaction-ledger/application"
	"galleria/contexts/gallery/reaction-ledger/application/commands"
	"galleria/contexts/gallery/reaction-ledger/ports"
)

const (
	reactionAddedTopic   = "reaction.added"
	reactionRemovedTopic = "reaction.removed"
	defaultReactionCG    = "reaction-ledger-gateway-cg"

	// VoteGesture is the single recognized vote reaction.
	VoteGesture = "❤️"
)

type reactionPayload struct {
	ExternalRef    string `json:"external_ref"`
	VoterID        string `json:"voter_id"`
	ActingIdentity string `json:"acting_identity"`
	Gesture        string `json:"gesture"`
}

// ReactionConsumer is the ingress adapter between the gateway feed and the
// reconciliation engine. Delivery is at-least-once and unordered; every
// failure is terminal for that single event, and redelivery of the same
// idempotent event is the gateway's concern, not a consumer retry loop.
type ReactionConsumer struct {
	Subscriber    ports.EventSubscriber
	Ledger        commands.ReconcileUseCase
	ConsumerGroup string

	// Gesture overrides the recognized vote gesture; empty means VoteGesture.
	Gesture string

	Logger *slog.Logger
}

// Start subscribes the consumer to both reaction topics.
func (c ReactionConsumer) Start(ctx context.Context) error {
	logger := application.ResolveLogger(c.Logger)
	group := strings.TrimSpace(c.ConsumerGroup)
	if group == "" {
		group = defaultReactionCG
	}

	if err := c.Subscriber.Subscribe(ctx, reactionAddedTopic, group, c.handleReactionAdded); err != nil {
		logger.Error("reaction consumer subscribe failed",
			"event", "ledger_reaction_consumer_subscribe_failed",
			"module", "gallery/reaction-ledger",
			"layer", "worker",
			"topic", reactionAddedTopic,
			"consumer_group", group,
			"error", err.Error(),
		)
		return err
	}
	if err := c.Subscriber.Subscribe(ctx, reactionRemovedTopic, group, c.handleReactionRemoved); err != nil {
		logger.Error("reaction consumer subscribe failed",
			"event", "ledger_reaction_consumer_subscribe_failed",
			"module", "gallery/reaction-ledger",
			"layer", "worker",
			"topic", reactionRemovedTopic,
			"consumer_group", group,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("reaction consumer subscriptions active",
		"event", "ledger_reaction_consumer_started",
		"module", "gallery/reaction-ledger",
		"layer", "worker",
		"consumer_group", group,
	)
	return nil
}

func (c ReactionConsumer) handleReactionAdded(ctx context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)
	payload, ok := c.decode(logger, event)
	if !ok {
		return nil
	}

	_, err := c.Ledger.ReactionAdded(ctx, commands.ReactionCommand{
		ExternalRef:    payload.ExternalRef,
		VoterID:        payload.VoterID,
		ActingIdentity: payload.ActingIdentity,
	})
	if err != nil {
		// Dropped, not retried here; the engine already logged the cause.
		logger.Warn("reaction added event dropped",
			"event", "ledger_reaction_added_dropped",
			"module", "gallery/reaction-ledger",
			"layer", "worker",
			"event_id", event.EventID,
			"external_ref", payload.ExternalRef,
			"voter_id", payload.VoterID,
		)
	}
	return nil
}

func (c ReactionConsumer) handleReactionRemoved(ctx context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)
	payload, ok := c.decode(logger, event)
	if !ok {
		return nil
	}

	if err := c.Ledger.ReactionRemoved(ctx, commands.ReactionCommand{
		ExternalRef:    payload.ExternalRef,
		VoterID:        payload.VoterID,
		ActingIdentity: payload.ActingIdentity,
	}); err != nil {
		logger.Warn("reaction removed event dropped",
			"event", "ledger_reaction_removed_dropped",
			"module", "gallery/reaction-ledger",
			"layer", "worker",
			"event_id", event.EventID,
			"external_ref", payload.ExternalRef,
			"voter_id", payload.VoterID,
		)
	}
	return nil
}

// decode unpacks and pre-filters a gateway event. Non-vote gestures and
// undecodable payloads are discarded here so the engine only ever sees
// canonical vote intents.
func (c ReactionConsumer) decode(logger *slog.Logger, event ports.EventEnvelope) (reactionPayload, bool) {
	var payload reactionPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		logger.Error("reaction event decode failed",
			"event", "ledger_reaction_decode_failed",
			"module", "gallery/reaction-ledger",
			"layer", "worker",
			"event_id", event.EventID,
			"event_type", event.EventType,
			"error", err.Error(),
		)
		return reactionPayload{}, false
	}

	gesture := c.Gesture
	if gesture == "" {
		gesture = VoteGesture
	}
	if payload.Gesture != gesture {
		return reactionPayload{}, false
	}
	return payload, true
}

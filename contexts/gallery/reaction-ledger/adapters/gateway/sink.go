package gatewayadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"galleria/contexts/gallery/reaction-ledger/domain/entities"
	"galleria/contexts/gallery/reaction-ledger/ports"
)

const retractReactionTopic = "reaction.retract"

type retractPayload struct {
	Kind        string `json:"kind"`
	ExternalRef string `json:"external_ref"`
	VoterID     string `json:"voter_id"`
}

// Sink delivers corrective commands to the platform gateway over the event
// bus. The gateway resolves external_ref to a message and voter_id to a
// member before removing the reaction. Delivery failures end here: logged,
// dropped, never retried and never surfaced to the voter.
type Sink struct {
	Publisher ports.EventPublisher
	IDGen     ports.IDGenerator
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (s Sink) RetractVisibleReaction(ctx context.Context, cmd entities.CorrectiveCommand) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	eventID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(retractPayload{
		Kind:        cmd.Kind,
		ExternalRef: cmd.ExternalRef,
		VoterID:     cmd.VoterID,
	})
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock.Now().UTC()
	}
	envelope := ports.EventEnvelope{
		EventID:       eventID,
		EventType:     retractReactionTopic,
		SourceService: "reaction-ledger",
		OccurredAt:    now,
		TraceID:       eventID,
		SchemaVersion: 1,
		PartitionKey:  cmd.ExternalRef,
		Payload:       payload,
	}
	if err := s.Publisher.Publish(ctx, retractReactionTopic, envelope); err != nil {
		logger.Warn("corrective retraction publish failed",
			"event", "ledger_sink_publish_failed",
			"module", "gallery/reaction-ledger",
			"layer", "adapter",
			"external_ref", cmd.ExternalRef,
			"voter_id", cmd.VoterID,
			"error", err.Error(),
		)
		return nil
	}
	return nil
}

var _ ports.CorrectiveSink = Sink{}

package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "galleria/contexts/gallery/reaction-ledger/application"
	"galleria/contexts/gallery/reaction-ledger/domain/entities"
	domainerrors "galleria/contexts/gallery/reaction-ledger/domain/errors"
	"galleria/contexts/gallery/reaction-ledger/ports"
)

// ReactionCommand is the engine-side shape of a single vote-intent event.
type ReactionCommand struct {
	ExternalRef    string
	VoterID        string
	ActingIdentity string
}

// ReactionResult reports what a ReactionAdded call did. Discarded covers the
// unknown-item and self-identity cases; CorrectionIssued is true only when a
// duplicate vote attempt triggered a visible-reaction retraction.
type ReactionResult struct {
	ItemID           string
	Outcome          entities.CastOutcome
	Discarded        bool
	CorrectionIssued bool
}

// RecordItemCommand registers a posted item on behalf of the generation
// routine.
type RecordItemCommand struct {
	ItemID        string
	ExternalRef   string
	OwnerID       string
	Prompt        string
	MediaLocation string
}

// ReconcileUseCase is the vote reconciliation engine. It keeps no state of its
// own and rederives every decision from store reads, so concurrent and
// duplicate invocations for the same logical event are safe: uniqueness is
// enforced by the Vote Store's atomic insert, not by engine logic.
type ReconcileUseCase struct {
	Items ports.ItemStore
	Votes ports.VoteStore
	Sink  ports.CorrectiveSink
	Clock ports.Clock

	// SelfIdentity is the platform identity the service posts and seeds
	// reactions under; its own gestures never count as votes.
	SelfIdentity string

	Logger *slog.Logger
}

// ReactionAdded resolves a vote-intent event against the stores and issues a
// visible-reaction retraction when the vote already existed. A store failure
// drops the event without a corrective command: retracting on an unconfirmed
// write could erase the marker of a vote that actually committed.
func (uc ReconcileUseCase) ReactionAdded(ctx context.Context, cmd ReactionCommand) (ReactionResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	externalRef := strings.TrimSpace(cmd.ExternalRef)
	voterID := strings.TrimSpace(cmd.VoterID)
	if externalRef == "" || voterID == "" {
		return ReactionResult{}, domainerrors.ErrInvalidReactionEvent
	}

	if uc.SelfIdentity != "" && strings.TrimSpace(cmd.ActingIdentity) == uc.SelfIdentity {
		logger.Debug("self reaction discarded",
			"event", "ledger_reaction_self_discarded",
			"module", "gallery/reaction-ledger",
			"layer", "application",
			"external_ref", externalRef,
		)
		return ReactionResult{Discarded: true}, nil
	}

	itemID, found, err := uc.Items.FindItemByExternalRef(ctx, externalRef)
	if err != nil {
		logger.Error("item lookup failed; reaction dropped",
			"event", "ledger_reaction_item_lookup_failed",
			"module", "gallery/reaction-ledger",
			"layer", "application",
			"external_ref", externalRef,
			"voter_id", voterID,
			"error", err.Error(),
		)
		return ReactionResult{}, err
	}
	if !found {
		// Reactions on unrelated messages are normal traffic, not errors.
		return ReactionResult{Discarded: true}, nil
	}

	outcome, err := uc.Votes.CastVote(ctx, entities.Vote{
		ItemID:      itemID,
		VoterID:     voterID,
		ExternalRef: externalRef,
		CreatedAt:   uc.now(),
	})
	if err != nil {
		logger.Error("vote cast failed; reaction dropped",
			"event", "ledger_vote_cast_failed",
			"module", "gallery/reaction-ledger",
			"layer", "application",
			"item_id", itemID,
			"voter_id", voterID,
			"external_ref", externalRef,
			"error", err.Error(),
		)
		return ReactionResult{}, err
	}

	if outcome == entities.OutcomeCreated {
		logger.Info("vote created",
			"event", "ledger_vote_created",
			"module", "gallery/reaction-ledger",
			"layer", "application",
			"item_id", itemID,
			"voter_id", voterID,
			"external_ref", externalRef,
		)
		return ReactionResult{ItemID: itemID, Outcome: outcome}, nil
	}

	// Duplicate attempt: the visible gesture is redundant and gets undone so
	// the voter sees "you already voted" without a second vote record.
	corrected := uc.retractVisible(ctx, logger, externalRef, voterID, itemID)
	return ReactionResult{ItemID: itemID, Outcome: outcome, CorrectionIssued: corrected}, nil
}

// ReactionRemoved honors a vote withdrawal unconditionally. Removing an
// absent vote is a no-op and no corrective command is ever issued.
func (uc ReconcileUseCase) ReactionRemoved(ctx context.Context, cmd ReactionCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	externalRef := strings.TrimSpace(cmd.ExternalRef)
	voterID := strings.TrimSpace(cmd.VoterID)
	if externalRef == "" || voterID == "" {
		return domainerrors.ErrInvalidReactionEvent
	}

	itemID, found, err := uc.Items.FindItemByExternalRef(ctx, externalRef)
	if err != nil {
		logger.Error("item lookup failed; removal dropped",
			"event", "ledger_removal_item_lookup_failed",
			"module", "gallery/reaction-ledger",
			"layer", "application",
			"external_ref", externalRef,
			"voter_id", voterID,
			"error", err.Error(),
		)
		return err
	}
	if !found {
		return nil
	}

	if err := uc.Votes.RetractVote(ctx, itemID, voterID); err != nil {
		logger.Error("vote retract failed; removal dropped",
			"event", "ledger_vote_retract_failed",
			"module", "gallery/reaction-ledger",
			"layer", "application",
			"item_id", itemID,
			"voter_id", voterID,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("vote retracted",
		"event", "ledger_vote_retracted",
		"module", "gallery/reaction-ledger",
		"layer", "application",
		"item_id", itemID,
		"voter_id", voterID,
	)
	return nil
}

// RecordItem upserts the item registration. Re-registering the same item id
// overwrites mutable fields; last write wins.
func (uc ReconcileUseCase) RecordItem(ctx context.Context, cmd RecordItemCommand) (entities.Item, error) {
	logger := application.ResolveLogger(uc.Logger)
	item := entities.Item{
		ItemID:        strings.TrimSpace(cmd.ItemID),
		ExternalRef:   strings.TrimSpace(cmd.ExternalRef),
		OwnerID:       strings.TrimSpace(cmd.OwnerID),
		Prompt:        cmd.Prompt,
		MediaLocation: strings.TrimSpace(cmd.MediaLocation),
	}
	if item.ItemID == "" || item.ExternalRef == "" || item.OwnerID == "" || item.MediaLocation == "" {
		return entities.Item{}, domainerrors.ErrInvalidItemInput
	}

	now := uc.now()
	item.CreatedAt = now
	item.UpdatedAt = now
	if err := uc.Items.RecordItem(ctx, item); err != nil {
		logger.Error("item record failed",
			"event", "ledger_item_record_failed",
			"module", "gallery/reaction-ledger",
			"layer", "application",
			"item_id", item.ItemID,
			"external_ref", item.ExternalRef,
			"error", err.Error(),
		)
		return entities.Item{}, err
	}
	logger.Info("item recorded",
		"event", "ledger_item_recorded",
		"module", "gallery/reaction-ledger",
		"layer", "application",
		"item_id", item.ItemID,
		"external_ref", item.ExternalRef,
		"owner_id", item.OwnerID,
	)
	return item, nil
}

// retractVisible pushes the corrective command to the sink. Sink delivery
// failures are terminal and never become engine faults.
func (uc ReconcileUseCase) retractVisible(
	ctx context.Context,
	logger *slog.Logger,
	externalRef string,
	voterID string,
	itemID string,
) bool {
	if uc.Sink == nil {
		return false
	}
	cmd := entities.CorrectiveCommand{
		Kind:        entities.CorrectiveKindRetractReaction,
		ExternalRef: externalRef,
		VoterID:     voterID,
	}
	if err := uc.Sink.RetractVisibleReaction(ctx, cmd); err != nil {
		logger.Warn("corrective retraction delivery failed",
			"event", "ledger_corrective_delivery_failed",
			"module", "gallery/reaction-ledger",
			"layer", "application",
			"item_id", itemID,
			"voter_id", voterID,
			"external_ref", externalRef,
			"error", err.Error(),
		)
		return false
	}
	logger.Info("duplicate vote corrected",
		"event", "ledger_duplicate_vote_corrected",
		"module", "gallery/reaction-ledger",
		"layer", "application",
		"item_id", itemID,
		"voter_id", voterID,
		"external_ref", externalRef,
	)
	return true
}

func (uc ReconcileUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

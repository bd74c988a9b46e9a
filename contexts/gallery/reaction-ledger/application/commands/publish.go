package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "galleria/contexts/gallery/reaction-ledger/application"
	"galleria/contexts/gallery/reaction-ledger/domain/entities"
	domainerrors "galleria/contexts/gallery/reaction-ledger/domain/errors"
	"galleria/contexts/gallery/reaction-ledger/ports"
)

// PublishItemCommand triggers generation and posting of a new item.
type PublishItemCommand struct {
	OwnerID string
	Prompt  string
}

// PublishUseCase runs the generate-post-record flow: produce media, post the
// item message, register the item under the message's external ref, then seed
// the vote gesture. The seed comes back through ingress as a self event and
// is discarded by the engine's identity check.
type PublishUseCase struct {
	Generator ports.MediaGenerator
	Poster    ports.MessagePoster
	Ledger    ReconcileUseCase
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc PublishUseCase) PublishItem(ctx context.Context, cmd PublishItemCommand) (entities.Item, error) {
	logger := application.ResolveLogger(uc.Logger)

	// Processes without gateway runtime wiring (generator/poster) still serve
	// the ledger; publication must fail cleanly there, not dereference nil.
	if uc.Generator == nil || uc.Poster == nil {
		return entities.Item{}, domainerrors.ErrPublishNotConfigured
	}

	ownerID := strings.TrimSpace(cmd.OwnerID)
	prompt := strings.TrimSpace(cmd.Prompt)
	if ownerID == "" || prompt == "" {
		return entities.Item{}, domainerrors.ErrInvalidItemInput
	}

	media, err := uc.Generator.Generate(ctx, prompt)
	if err != nil {
		logger.Error("media generation failed",
			"event", "ledger_publish_generation_failed",
			"module", "gallery/reaction-ledger",
			"layer", "application",
			"owner_id", ownerID,
			"error", err.Error(),
		)
		return entities.Item{}, fmt.Errorf("%w: %v", domainerrors.ErrGenerationFailed, err)
	}

	itemID := strings.TrimSpace(media.MediaID)
	if itemID == "" {
		generated, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.Item{}, err
		}
		itemID = generated
	}

	externalRef, err := uc.Poster.PostItem(ctx, ports.ItemPost{
		ItemID:        itemID,
		OwnerID:       ownerID,
		Prompt:        prompt,
		MediaLocation: media.Location,
	})
	if err != nil {
		logger.Error("item message post failed",
			"event", "ledger_publish_post_failed",
			"module", "gallery/reaction-ledger",
			"layer", "application",
			"item_id", itemID,
			"owner_id", ownerID,
			"error", err.Error(),
		)
		return entities.Item{}, fmt.Errorf("%w: %v", domainerrors.ErrPostFailed, err)
	}

	item, err := uc.Ledger.RecordItem(ctx, RecordItemCommand{
		ItemID:        itemID,
		ExternalRef:   externalRef,
		OwnerID:       ownerID,
		Prompt:        prompt,
		MediaLocation: media.Location,
	})
	if err != nil {
		return entities.Item{}, err
	}

	// A failed seed leaves the post votable without the visual hint; votes
	// still reconcile, so this is a warning rather than a rollback.
	if err := uc.Poster.SeedVoteGesture(ctx, externalRef); err != nil {
		logger.Warn("vote gesture seed failed",
			"event", "ledger_publish_seed_failed",
			"module", "gallery/reaction-ledger",
			"layer", "application",
			"item_id", itemID,
			"external_ref", externalRef,
			"error", err.Error(),
		)
	}

	logger.Info("item published",
		"event", "ledger_item_published",
		"module", "gallery/reaction-ledger",
		"layer", "application",
		"item_id", itemID,
		"external_ref", externalRef,
		"owner_id", ownerID,
	)
	return item, nil
}

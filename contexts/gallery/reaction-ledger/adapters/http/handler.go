package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"galleria/contexts/gallery/reaction-ledger/application/commands"
	"galleria/contexts/gallery/reaction-ledger/application/queries"
	"galleria/contexts/gallery/reaction-ledger/domain/entities"
	httptransport "galleria/contexts/gallery/reaction-ledger/transport/http"
)

type Handler struct {
	Ledger  commands.ReconcileUseCase
	Publish commands.PublishUseCase
	Tallies queries.TallyUseCase
	Logger  *slog.Logger
}

// RecordItemHandler registers an already-posted item.
// @Summary Record a posted item
// @Description Upserts the item registration by item_id. Re-registration with the same id overwrites mutable fields.
// @Tags reaction-ledger
// @Accept json
// @Produce json
// @Param request body httptransport.RecordItemRequest true "Item registration"
// @Success 200 {object} httptransport.ItemResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /v1/gallery/items [post]
func (h Handler) RecordItemHandler(ctx context.Context, req httptransport.RecordItemRequest) (httptransport.ItemResponse, error) {
	item, err := h.Ledger.RecordItem(ctx, commands.RecordItemCommand{
		ItemID:        req.ItemID,
		ExternalRef:   req.ExternalRef,
		OwnerID:       req.OwnerID,
		Prompt:        req.Prompt,
		MediaLocation: req.MediaLocation,
	})
	if err != nil {
		return httptransport.ItemResponse{}, err
	}
	return itemResponse(item), nil
}

// PublishItemHandler generates and posts a new item.
// @Summary Generate and post an item
// @Description Runs the generate-post-record flow and seeds the vote gesture on the posted message.
// @Tags reaction-ledger
// @Accept json
// @Produce json
// @Param request body httptransport.PublishItemRequest true "Publication request"
// @Success 200 {object} httptransport.ItemResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 501 {object} httptransport.ErrorResponse
// @Failure 502 {object} httptransport.ErrorResponse
// @Router /v1/gallery/items/publish [post]
func (h Handler) PublishItemHandler(ctx context.Context, req httptransport.PublishItemRequest) (httptransport.ItemResponse, error) {
	item, err := h.Publish.PublishItem(ctx, commands.PublishItemCommand{
		OwnerID: req.OwnerID,
		Prompt:  req.Prompt,
	})
	if err != nil {
		return httptransport.ItemResponse{}, err
	}
	return itemResponse(item), nil
}

// GetItemHandler returns a registered item.
// @Summary Get item
// @Tags reaction-ledger
// @Produce json
// @Param item_id path string true "Item id"
// @Success 200 {object} httptransport.ItemResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/gallery/items/{item_id} [get]
func (h Handler) GetItemHandler(ctx context.Context, itemID string) (httptransport.ItemResponse, error) {
	item, err := h.Tallies.Item(ctx, itemID)
	if err != nil {
		return httptransport.ItemResponse{}, err
	}
	return itemResponse(item), nil
}

// ItemTallyHandler returns the vote tally for one item.
// @Summary Get item vote tally
// @Tags reaction-ledger
// @Produce json
// @Param item_id path string true "Item id"
// @Success 200 {object} httptransport.ItemTallyResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/gallery/items/{item_id}/tally [get]
func (h Handler) ItemTallyHandler(ctx context.Context, itemID string) (httptransport.ItemTallyResponse, error) {
	tally, err := h.Tallies.ItemTally(ctx, itemID)
	if err != nil {
		return httptransport.ItemTallyResponse{}, err
	}
	return httptransport.ItemTallyResponse{
		ItemID:        tally.ItemID,
		ExternalRef:   tally.ExternalRef,
		OwnerID:       tally.OwnerID,
		MediaLocation: tally.MediaLocation,
		Votes:         tally.Votes,
	}, nil
}

// ItemByMessageHandler resolves a message ref to its hosted item.
// @Summary Resolve message to item
// @Tags reaction-ledger
// @Produce json
// @Param external_ref path string true "Message external ref"
// @Success 200 {object} httptransport.ItemResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/gallery/messages/{external_ref}/item [get]
func (h Handler) ItemByMessageHandler(ctx context.Context, externalRef string) (httptransport.ItemResponse, error) {
	item, err := h.Tallies.ItemByExternalRef(ctx, externalRef)
	if err != nil {
		return httptransport.ItemResponse{}, err
	}
	return itemResponse(item), nil
}

func itemResponse(item entities.Item) httptransport.ItemResponse {
	return httptransport.ItemResponse{
		ItemID:        item.ItemID,
		ExternalRef:   item.ExternalRef,
		OwnerID:       item.OwnerID,
		Prompt:        item.Prompt,
		MediaLocation: item.MediaLocation,
		CreatedAt:     item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     item.UpdatedAt.Format(time.RFC3339),
	}
}

package queries

import (
	"context"
	"strings"

	"galleria/contexts/gallery/reaction-ledger/domain/entities"
	domainerrors "galleria/contexts/gallery/reaction-ledger/domain/errors"
	"galleria/contexts/gallery/reaction-ledger/ports"
)

// TallyUseCase serves read-side point lookups. Tallies are cached briefly so
// hot items do not hammer the vote store with identical counts.
type TallyUseCase struct {
	Items ports.ItemStore
	Votes ports.VoteStore
	Cache ports.TallyCache
}

func NewTallyUseCase(items ports.ItemStore, votes ports.VoteStore, cache ports.TallyCache) TallyUseCase {
	return TallyUseCase{Items: items, Votes: votes, Cache: cache}
}

func (uc TallyUseCase) Item(ctx context.Context, itemID string) (entities.Item, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return entities.Item{}, domainerrors.ErrItemNotFound
	}
	return uc.Items.GetItem(ctx, itemID)
}

func (uc TallyUseCase) ItemByExternalRef(ctx context.Context, externalRef string) (entities.Item, error) {
	itemID, found, err := uc.Items.FindItemByExternalRef(ctx, strings.TrimSpace(externalRef))
	if err != nil {
		return entities.Item{}, err
	}
	if !found {
		return entities.Item{}, domainerrors.ErrItemNotFound
	}
	return uc.Items.GetItem(ctx, itemID)
}

func (uc TallyUseCase) ItemTally(ctx context.Context, itemID string) (entities.ItemTally, error) {
	item, err := uc.Item(ctx, itemID)
	if err != nil {
		return entities.ItemTally{}, err
	}

	if uc.Cache != nil {
		if tally, ok := uc.Cache.Get(item.ItemID); ok {
			return tally, nil
		}
	}

	votes, err := uc.Votes.CountVotes(ctx, item.ItemID)
	if err != nil {
		return entities.ItemTally{}, err
	}
	tally := entities.ItemTally{
		ItemID:        item.ItemID,
		ExternalRef:   item.ExternalRef,
		OwnerID:       item.OwnerID,
		MediaLocation: item.MediaLocation,
		Votes:         votes,
	}
	if uc.Cache != nil {
		uc.Cache.Set(tally)
	}
	return tally, nil
}

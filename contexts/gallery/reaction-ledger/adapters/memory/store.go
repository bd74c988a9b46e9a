package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"galleria/contexts/gallery/reaction-ledger/domain/entities"
	domainerrors "galleria/contexts/gallery/reaction-ledger/domain/errors"

	"github.com/google/uuid"
)

type voteKey struct {
	itemID  string
	voterID string
}

// Store is the in-memory adapter backing tests and local wiring. It
// implements ItemStore, VoteStore, Clock and IDGenerator; CastVote holds the
// mutex across check-and-insert, which gives the same linearizable conflict
// detection the postgres adapter gets from its unique constraint.
type Store struct {
	mu sync.RWMutex

	items        map[string]entities.Item
	externalRefs map[string]string
	votes        map[voteKey]entities.Vote

	itemFailure error
	voteFailure error
}

func NewStore(seed []entities.Item) *Store {
	items := make(map[string]entities.Item, len(seed))
	externalRefs := make(map[string]string, len(seed))
	for _, item := range seed {
		items[item.ItemID] = item
		externalRefs[item.ExternalRef] = item.ItemID
	}
	return &Store{
		items:        items,
		externalRefs: externalRefs,
		votes:        make(map[voteKey]entities.Vote),
	}
}

// FailItemStore makes every subsequent item-store call return err; nil
// restores normal behavior.
func (s *Store) FailItemStore(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itemFailure = err
}

// FailVoteStore makes every subsequent vote-store call return err; nil
// restores normal behavior.
func (s *Store) FailVoteStore(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voteFailure = err
}

func (s *Store) RecordItem(_ context.Context, item entities.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.itemFailure != nil {
		return s.itemFailure
	}

	item.ItemID = strings.TrimSpace(item.ItemID)
	item.ExternalRef = strings.TrimSpace(item.ExternalRef)
	if existingID, ok := s.externalRefs[item.ExternalRef]; ok && existingID != item.ItemID {
		return domainerrors.ErrExternalRefConflict
	}
	if previous, ok := s.items[item.ItemID]; ok {
		delete(s.externalRefs, previous.ExternalRef)
		item.CreatedAt = previous.CreatedAt
	}
	s.items[item.ItemID] = item
	s.externalRefs[item.ExternalRef] = item.ItemID
	return nil
}

func (s *Store) FindItemByExternalRef(_ context.Context, externalRef string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.itemFailure != nil {
		return "", false, s.itemFailure
	}
	itemID, ok := s.externalRefs[strings.TrimSpace(externalRef)]
	return itemID, ok, nil
}

func (s *Store) GetItem(_ context.Context, itemID string) (entities.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.itemFailure != nil {
		return entities.Item{}, s.itemFailure
	}
	item, ok := s.items[strings.TrimSpace(itemID)]
	if !ok {
		return entities.Item{}, domainerrors.ErrItemNotFound
	}
	return item, nil
}

func (s *Store) CastVote(_ context.Context, vote entities.Vote) (entities.CastOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.voteFailure != nil {
		return "", s.voteFailure
	}

	key := voteKey{itemID: vote.ItemID, voterID: vote.VoterID}
	if _, ok := s.votes[key]; ok {
		return entities.OutcomeAlreadyExisted, nil
	}
	s.votes[key] = vote
	return entities.OutcomeCreated, nil
}

func (s *Store) RetractVote(_ context.Context, itemID string, voterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.voteFailure != nil {
		return s.voteFailure
	}
	delete(s.votes, voteKey{itemID: itemID, voterID: voterID})
	return nil
}

func (s *Store) CountVotes(_ context.Context, itemID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.voteFailure != nil {
		return 0, s.voteFailure
	}
	count := 0
	for key := range s.votes {
		if key.itemID == itemID {
			count++
		}
	}
	return count, nil
}

// HasVote is a test helper exposing raw vote presence.
func (s *Store) HasVote(itemID string, voterID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.votes[voteKey{itemID: itemID, voterID: voterID}]
	return ok
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"galleria/contexts/gallery/reaction-ledger/adapters/memory"
	"galleria/contexts/gallery/reaction-ledger/application/commands"
	"galleria/contexts/gallery/reaction-ledger/domain/entities"
	domainerrors "galleria/contexts/gallery/reaction-ledger/domain/errors"
)

func newLedger(t *testing.T) (commands.ReconcileUseCase, *memory.Store, *memory.Sink) {
	t.Helper()
	store := memory.NewStore(nil)
	sink := memory.NewSink()
	uc := commands.ReconcileUseCase{
		Items:        store,
		Votes:        store,
		Sink:         sink,
		SelfIdentity: "bot-identity",
	}
	return uc, store, sink
}

func recordTestItem(t *testing.T, uc commands.ReconcileUseCase) entities.Item {
	t.Helper()
	item, err := uc.RecordItem(context.Background(), commands.RecordItemCommand{
		ItemID:        "img_1",
		ExternalRef:   "msg_42",
		OwnerID:       "u1",
		Prompt:        "p",
		MediaLocation: "url",
	})
	if err != nil {
		t.Fatalf("record item failed: %v", err)
	}
	return item
}

func TestReactionAddedCreatesVote(t *testing.T) {
	uc, store, sink := newLedger(t)
	recordTestItem(t, uc)

	result, err := uc.ReactionAdded(context.Background(), commands.ReactionCommand{
		ExternalRef:    "msg_42",
		VoterID:        "u2",
		ActingIdentity: "u2",
	})
	if err != nil {
		t.Fatalf("reaction added failed: %v", err)
	}
	if result.Outcome != entities.OutcomeCreated {
		t.Fatalf("expected created outcome, got %q", result.Outcome)
	}
	if result.CorrectionIssued {
		t.Fatalf("fresh vote must not issue a correction")
	}
	if !store.HasVote("img_1", "u2") {
		t.Fatalf("expected vote (img_1,u2) persisted")
	}
	if len(sink.Commands()) != 0 {
		t.Fatalf("expected no corrective commands, got %d", len(sink.Commands()))
	}
}

func TestDuplicateReactionIssuesCorrection(t *testing.T) {
	uc, _, sink := newLedger(t)
	recordTestItem(t, uc)

	cmd := commands.ReactionCommand{ExternalRef: "msg_42", VoterID: "u2", ActingIdentity: "u2"}
	if _, err := uc.ReactionAdded(context.Background(), cmd); err != nil {
		t.Fatalf("first reaction failed: %v", err)
	}
	result, err := uc.ReactionAdded(context.Background(), cmd)
	if err != nil {
		t.Fatalf("duplicate reaction failed: %v", err)
	}
	if result.Outcome != entities.OutcomeAlreadyExisted {
		t.Fatalf("expected already_existed, got %q", result.Outcome)
	}
	if !result.CorrectionIssued {
		t.Fatalf("duplicate vote must issue a correction")
	}

	cmds := sink.Commands()
	if len(cmds) != 1 {
		t.Fatalf("expected exactly one corrective command, got %d", len(cmds))
	}
	if cmds[0].Kind != entities.CorrectiveKindRetractReaction ||
		cmds[0].ExternalRef != "msg_42" || cmds[0].VoterID != "u2" {
		t.Fatalf("unexpected corrective command: %+v", cmds[0])
	}
}

func TestUnknownItemDiscarded(t *testing.T) {
	uc, store, sink := newLedger(t)
	recordTestItem(t, uc)

	result, err := uc.ReactionAdded(context.Background(), commands.ReactionCommand{
		ExternalRef:    "msg_999",
		VoterID:        "u2",
		ActingIdentity: "u2",
	})
	if err != nil {
		t.Fatalf("unknown item must not error: %v", err)
	}
	if !result.Discarded {
		t.Fatalf("expected discard for unknown item")
	}
	if store.HasVote("img_1", "u2") {
		t.Fatalf("unknown item must cause no store mutation")
	}
	if len(sink.Commands()) != 0 {
		t.Fatalf("unknown item must issue no command")
	}

	if err := uc.ReactionRemoved(context.Background(), commands.ReactionCommand{
		ExternalRef: "msg_999",
		VoterID:     "u2",
	}); err != nil {
		t.Fatalf("unknown item removal must not error: %v", err)
	}
}

func TestSelfReactionDiscarded(t *testing.T) {
	uc, store, _ := newLedger(t)
	recordTestItem(t, uc)

	result, err := uc.ReactionAdded(context.Background(), commands.ReactionCommand{
		ExternalRef:    "msg_42",
		VoterID:        "bot-identity",
		ActingIdentity: "bot-identity",
	})
	if err != nil {
		t.Fatalf("self reaction must not error: %v", err)
	}
	if !result.Discarded {
		t.Fatalf("expected self reaction discard")
	}
	if store.HasVote("img_1", "bot-identity") {
		t.Fatalf("self reaction must not persist a vote")
	}
}

func TestRemovalThenReAddYieldsCreated(t *testing.T) {
	uc, store, sink := newLedger(t)
	recordTestItem(t, uc)

	cmd := commands.ReactionCommand{ExternalRef: "msg_42", VoterID: "u2", ActingIdentity: "u2"}
	if _, err := uc.ReactionAdded(context.Background(), cmd); err != nil {
		t.Fatalf("reaction added failed: %v", err)
	}
	if err := uc.ReactionRemoved(context.Background(), cmd); err != nil {
		t.Fatalf("reaction removed failed: %v", err)
	}
	if store.HasVote("img_1", "u2") {
		t.Fatalf("expected vote deleted after removal")
	}

	// Removing an already-absent vote stays a no-op.
	if err := uc.ReactionRemoved(context.Background(), cmd); err != nil {
		t.Fatalf("idempotent removal failed: %v", err)
	}

	result, err := uc.ReactionAdded(context.Background(), cmd)
	if err != nil {
		t.Fatalf("re-add failed: %v", err)
	}
	if result.Outcome != entities.OutcomeCreated {
		t.Fatalf("expected created after removal, got %q", result.Outcome)
	}
	if len(sink.Commands()) != 0 {
		t.Fatalf("removal flow must issue no corrective command")
	}
}

func TestConcurrentAddsCreateExactlyOneVote(t *testing.T) {
	uc, _, sink := newLedger(t)
	recordTestItem(t, uc)

	const attempts = 16
	outcomes := make(chan entities.CastOutcome, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := uc.ReactionAdded(context.Background(), commands.ReactionCommand{
				ExternalRef:    "msg_42",
				VoterID:        "u3",
				ActingIdentity: "u3",
			})
			if err != nil {
				t.Errorf("concurrent reaction failed: %v", err)
				return
			}
			outcomes <- result.Outcome
		}()
	}
	wg.Wait()
	close(outcomes)

	created := 0
	for outcome := range outcomes {
		if outcome == entities.OutcomeCreated {
			created++
		}
	}
	if created != 1 {
		t.Fatalf("expected exactly one created outcome, got %d", created)
	}
	if got := len(sink.Commands()); got != attempts-1 {
		t.Fatalf("expected %d corrective commands, got %d", attempts-1, got)
	}
}

func TestStoreFailureDropsEventWithoutCorrection(t *testing.T) {
	uc, store, sink := newLedger(t)
	recordTestItem(t, uc)

	store.FailVoteStore(domainerrors.ErrStoreUnavailable)
	_, err := uc.ReactionAdded(context.Background(), commands.ReactionCommand{
		ExternalRef:    "msg_42",
		VoterID:        "u2",
		ActingIdentity: "u2",
	})
	if !errors.Is(err, domainerrors.ErrStoreUnavailable) {
		t.Fatalf("expected store unavailable, got %v", err)
	}
	if len(sink.Commands()) != 0 {
		t.Fatalf("store failure must not issue a corrective command")
	}

	// The same idempotent event succeeds on redelivery.
	store.FailVoteStore(nil)
	result, err := uc.ReactionAdded(context.Background(), commands.ReactionCommand{
		ExternalRef:    "msg_42",
		VoterID:        "u2",
		ActingIdentity: "u2",
	})
	if err != nil {
		t.Fatalf("redelivery failed: %v", err)
	}
	if result.Outcome != entities.OutcomeCreated {
		t.Fatalf("expected created on redelivery, got %q", result.Outcome)
	}
}

func TestSinkFailureNeverBecomesEngineFault(t *testing.T) {
	uc, _, sink := newLedger(t)
	recordTestItem(t, uc)

	cmd := commands.ReactionCommand{ExternalRef: "msg_42", VoterID: "u2", ActingIdentity: "u2"}
	if _, err := uc.ReactionAdded(context.Background(), cmd); err != nil {
		t.Fatalf("first reaction failed: %v", err)
	}

	sink.Fail(errors.New("message vanished"))
	result, err := uc.ReactionAdded(context.Background(), cmd)
	if err != nil {
		t.Fatalf("sink failure must not surface: %v", err)
	}
	if result.Outcome != entities.OutcomeAlreadyExisted {
		t.Fatalf("expected already_existed, got %q", result.Outcome)
	}
	if result.CorrectionIssued {
		t.Fatalf("failed delivery must not report an issued correction")
	}
}

func TestRecordItemUpsertLastWriteWins(t *testing.T) {
	uc, store, _ := newLedger(t)
	recordTestItem(t, uc)

	if _, err := uc.RecordItem(context.Background(), commands.RecordItemCommand{
		ItemID:        "img_1",
		ExternalRef:   "msg_42",
		OwnerID:       "u1",
		Prompt:        "revised prompt",
		MediaLocation: "url2",
	}); err != nil {
		t.Fatalf("re-registration failed: %v", err)
	}

	item, err := store.GetItem(context.Background(), "img_1")
	if err != nil {
		t.Fatalf("get item failed: %v", err)
	}
	if item.Prompt != "revised prompt" || item.MediaLocation != "url2" {
		t.Fatalf("expected last write to win, got %+v", item)
	}
}

func TestRecordItemValidation(t *testing.T) {
	uc, _, _ := newLedger(t)
	_, err := uc.RecordItem(context.Background(), commands.RecordItemCommand{
		ItemID:      "img_1",
		ExternalRef: "msg_42",
	})
	if !errors.Is(err, domainerrors.ErrInvalidItemInput) {
		t.Fatalf("expected invalid item input, got %v", err)
	}
}

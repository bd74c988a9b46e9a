package workers

import (
	"context"
	"encoding/json"
	"testing"

	"galleria/contexts/gallery/reaction-ledger/adapters/memory"
	"galleria/contexts/gallery/reaction-ledger/application/commands"
	"galleria/contexts/gallery/reaction-ledger/domain/entities"
	"galleria/contexts/gallery/reaction-ledger/ports"
)

// recordingSubscriber captures handlers so tests drive them synchronously.
type recordingSubscriber struct {
	handlers map[string]func(context.Context, ports.EventEnvelope) error
}

func newRecordingSubscriber() *recordingSubscriber {
	return &recordingSubscriber{handlers: make(map[string]func(context.Context, ports.EventEnvelope) error)}
}

func (s *recordingSubscriber) Subscribe(
	_ context.Context,
	topic string,
	_ string,
	handler func(context.Context, ports.EventEnvelope) error,
) error {
	s.handlers[topic] = handler
	return nil
}

func reactionEnvelope(t *testing.T, externalRef, voterID, gesture string) ports.EventEnvelope {
	t.Helper()
	payload, err := json.Marshal(reactionPayload{
		ExternalRef:    externalRef,
		VoterID:        voterID,
		ActingIdentity: voterID,
		Gesture:        gesture,
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return ports.EventEnvelope{
		EventID:   "evt-1",
		EventType: reactionAddedTopic,
		Payload:   payload,
	}
}

func consumerFixture(t *testing.T) (ReactionConsumer, *recordingSubscriber, *memory.Store, *memory.Sink) {
	t.Helper()
	store := memory.NewStore([]entities.Item{{
		ItemID:        "img_1",
		ExternalRef:   "msg_42",
		OwnerID:       "u1",
		Prompt:        "p",
		MediaLocation: "url",
	}})
	sink := memory.NewSink()
	subscriber := newRecordingSubscriber()
	consumer := ReactionConsumer{
		Subscriber: subscriber,
		Ledger: commands.ReconcileUseCase{
			Items:        store,
			Votes:        store,
			Sink:         sink,
			SelfIdentity: "bot-identity",
		},
	}
	if err := consumer.Start(context.Background()); err != nil {
		t.Fatalf("consumer start failed: %v", err)
	}
	return consumer, subscriber, store, sink
}

func TestConsumerAppliesHeartReaction(t *testing.T) {
	_, subscriber, store, _ := consumerFixture(t)

	handler := subscriber.handlers[reactionAddedTopic]
	if handler == nil {
		t.Fatalf("expected subscription on %q", reactionAddedTopic)
	}
	if err := handler(context.Background(), reactionEnvelope(t, "msg_42", "u2", VoteGesture)); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !store.HasVote("img_1", "u2") {
		t.Fatalf("expected vote persisted via consumer")
	}
}

func TestConsumerFiltersOtherGestures(t *testing.T) {
	_, subscriber, store, _ := consumerFixture(t)

	handler := subscriber.handlers[reactionAddedTopic]
	if err := handler(context.Background(), reactionEnvelope(t, "msg_42", "u2", "\U0001F44D")); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if store.HasVote("img_1", "u2") {
		t.Fatalf("non-vote gesture must be filtered before the engine")
	}
}

func TestConsumerDropsUndecodablePayload(t *testing.T) {
	_, subscriber, store, _ := consumerFixture(t)

	handler := subscriber.handlers[reactionAddedTopic]
	err := handler(context.Background(), ports.EventEnvelope{
		EventID:   "evt-bad",
		EventType: reactionAddedTopic,
		Payload:   []byte("not json"),
	})
	if err != nil {
		t.Fatalf("undecodable payload must be dropped, got %v", err)
	}
	if store.HasVote("img_1", "u2") {
		t.Fatalf("undecodable payload must not mutate state")
	}
}

func TestConsumerRemoval(t *testing.T) {
	_, subscriber, store, sink := consumerFixture(t)

	added := subscriber.handlers[reactionAddedTopic]
	removed := subscriber.handlers[reactionRemovedTopic]
	if removed == nil {
		t.Fatalf("expected subscription on %q", reactionRemovedTopic)
	}

	if err := added(context.Background(), reactionEnvelope(t, "msg_42", "u2", VoteGesture)); err != nil {
		t.Fatalf("add handler failed: %v", err)
	}
	if err := removed(context.Background(), reactionEnvelope(t, "msg_42", "u2", VoteGesture)); err != nil {
		t.Fatalf("remove handler failed: %v", err)
	}
	if store.HasVote("img_1", "u2") {
		t.Fatalf("expected vote retracted via consumer")
	}
	if len(sink.Commands()) != 0 {
		t.Fatalf("removal must issue no corrective command")
	}
}

func TestConsumerDropsEngineFailures(t *testing.T) {
	_, subscriber, store, sink := consumerFixture(t)
	store.FailVoteStore(context.DeadlineExceeded)

	handler := subscriber.handlers[reactionAddedTopic]
	if err := handler(context.Background(), reactionEnvelope(t, "msg_42", "u2", VoteGesture)); err != nil {
		t.Fatalf("store failure must be dropped at the consumer, got %v", err)
	}
	if len(sink.Commands()) != 0 {
		t.Fatalf("store failure must not produce a corrective command")
	}
}

func TestConsumerGestureOverride(t *testing.T) {
	store := memory.NewStore([]entities.Item{{
		ItemID:      "img_1",
		ExternalRef: "msg_42",
	}})
	subscriber := newRecordingSubscriber()
	consumer := ReactionConsumer{
		Subscriber: subscriber,
		Ledger:     commands.ReconcileUseCase{Items: store, Votes: store},
		Gesture:    "⭐",
	}
	if err := consumer.Start(context.Background()); err != nil {
		t.Fatalf("consumer start failed: %v", err)
	}

	handler := subscriber.handlers[reactionAddedTopic]
	if err := handler(context.Background(), reactionEnvelope(t, "msg_42", "u2", "⭐")); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !store.HasVote("img_1", "u2") {
		t.Fatalf("expected overridden gesture accepted")
	}
	if err := handler(context.Background(), reactionEnvelope(t, "msg_42", "u3", VoteGesture)); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if store.HasVote("img_1", "u3") {
		t.Fatalf("default gesture must be rejected under an override")
	}
}

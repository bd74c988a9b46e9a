package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	reactionledger "galleria/contexts/gallery/reaction-ledger"
	"galleria/contexts/gallery/reaction-ledger/adapters/memory"
	httptransport "galleria/contexts/gallery/reaction-ledger/transport/http"
)

func testServer(t *testing.T) (*Server, reactionledger.Module) {
	t.Helper()
	module := reactionledger.NewInMemoryModule(nil, "bot-identity", nil)
	return New(module, nil, ":0"), module
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRecordAndTallyRoutes(t *testing.T) {
	server, _ := testServer(t)

	rec := doJSON(t, server.Handler(), http.MethodPost, "/v1/gallery/items",
		`{"item_id":"img_1","external_ref":"msg_42","owner_id":"u1","prompt":"p","media_location":"url"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("record item: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, server.Handler(), http.MethodGet, "/v1/gallery/items/img_1/tally", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("tally: expected 200, got %d", rec.Code)
	}
	var tally httptransport.ItemTallyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &tally); err != nil {
		t.Fatalf("tally decode failed: %v", err)
	}
	if tally.ItemID != "img_1" || tally.Votes != 0 {
		t.Fatalf("unexpected tally: %+v", tally)
	}

	rec = doJSON(t, server.Handler(), http.MethodGet, "/v1/gallery/messages/msg_42/item", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("resolve: expected 200, got %d", rec.Code)
	}
}

func TestMissingItemReturns404(t *testing.T) {
	server, _ := testServer(t)

	rec := doJSON(t, server.Handler(), http.MethodGet, "/v1/gallery/items/img_missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp httptransport.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error decode failed: %v", err)
	}
	if resp.Code != "item_not_found" {
		t.Fatalf("unexpected error code %q", resp.Code)
	}
}

func TestInvalidBodyReturns400(t *testing.T) {
	server, _ := testServer(t)

	rec := doJSON(t, server.Handler(), http.MethodPost, "/v1/gallery/items", "not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, server.Handler(), http.MethodPost, "/v1/gallery/items", `{"item_id":"img_1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for incomplete item, got %d", rec.Code)
	}
}

func TestExternalRefConflictReturns409(t *testing.T) {
	server, _ := testServer(t)

	rec := doJSON(t, server.Handler(), http.MethodPost, "/v1/gallery/items",
		`{"item_id":"img_1","external_ref":"msg_42","owner_id":"u1","prompt":"p","media_location":"url"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("record item: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, server.Handler(), http.MethodPost, "/v1/gallery/items",
		`{"item_id":"img_2","external_ref":"msg_42","owner_id":"u1","prompt":"p","media_location":"url"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate external ref, got %d", rec.Code)
	}
}

func TestPublishRouteWithoutGatewayWiringReturns501(t *testing.T) {
	// Mirror the api bootstrap wiring: stores only, no generator/poster.
	store := memory.NewStore(nil)
	module := reactionledger.NewModule(reactionledger.Dependencies{
		Items:        store,
		Votes:        store,
		Sink:         memory.NewSink(),
		Clock:        store,
		IDGen:        store,
		SelfIdentity: "bot-identity",
	})
	server := New(module, nil, ":0")

	rec := doJSON(t, server.Handler(), http.MethodPost, "/v1/gallery/items/publish",
		`{"owner_id":"u1","prompt":"a lighthouse"}`)
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp httptransport.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error decode failed: %v", err)
	}
	if resp.Code != "publish_not_configured" {
		t.Fatalf("unexpected error code %q", resp.Code)
	}
}

func TestHealthRoute(t *testing.T) {
	server, _ := testServer(t)
	rec := doJSON(t, server.Handler(), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

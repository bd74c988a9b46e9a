package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	reactionledger "galleria/contexts/gallery/reaction-ledger"
	domainerrors "galleria/contexts/gallery/reaction-ledger/domain/errors"
	httptransport "galleria/contexts/gallery/reaction-ledger/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "galleria/internal/platform/httpserver/docs"
)

type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	addr   string
	ledger reactionledger.Module
}

func New(ledger reactionledger.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		addr:   addr,
		ledger: ledger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("POST /v1/gallery/items", s.handleRecordItem)
	s.mux.HandleFunc("POST /v1/gallery/items/publish", s.handlePublishItem)
	s.mux.HandleFunc("GET /v1/gallery/items/{item_id}", s.handleGetItem)
	s.mux.HandleFunc("GET /v1/gallery/items/{item_id}/tally", s.handleItemTally)
	s.mux.HandleFunc("GET /v1/gallery/messages/{external_ref}/item", s.handleItemByMessage)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRecordItem(w http.ResponseWriter, r *http.Request) {
	var req httptransport.RecordItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}
	resp, err := s.ledger.Handler.RecordItemHandler(r.Context(), req)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePublishItem(w http.ResponseWriter, r *http.Request) {
	var req httptransport.PublishItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}
	resp, err := s.ledger.Handler.PublishItemHandler(r.Context(), req)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ledger.Handler.GetItemHandler(r.Context(), r.PathValue("item_id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleItemTally(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ledger.Handler.ItemTallyHandler(r.Context(), r.PathValue("item_id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleItemByMessage(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ledger.Handler.ItemByMessageHandler(r.Context(), r.PathValue("external_ref"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrInvalidItemInput),
		errors.Is(err, domainerrors.ErrInvalidReactionEvent):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, domainerrors.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "item_not_found", err.Error())
	case errors.Is(err, domainerrors.ErrExternalRefConflict):
		writeError(w, http.StatusConflict, "external_ref_conflict", err.Error())
	case errors.Is(err, domainerrors.ErrGenerationFailed),
		errors.Is(err, domainerrors.ErrPostFailed):
		writeError(w, http.StatusBadGateway, "upstream_failed", err.Error())
	case errors.Is(err, domainerrors.ErrPublishNotConfigured):
		writeError(w, http.StatusNotImplemented, "publish_not_configured", err.Error())
	case errors.Is(err, domainerrors.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", err.Error())
	default:
		s.logger.Error("unhandled domain error",
			"event", "http_unhandled_error",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, httptransport.ErrorResponse{Code: code, Message: message})
}

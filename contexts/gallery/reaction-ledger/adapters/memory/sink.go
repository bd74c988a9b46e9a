package memory

import (
	"context"
	"sync"

	"galleria/contexts/gallery/reaction-ledger/domain/entities"
)

// Sink records corrective commands instead of delivering them, for tests.
type Sink struct {
	mu       sync.Mutex
	commands []entities.CorrectiveCommand
	failure  error
}

func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

func (s *Sink) RetractVisibleReaction(_ context.Context, cmd entities.CorrectiveCommand) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}
	s.commands = append(s.commands, cmd)
	return nil
}

func (s *Sink) Commands() []entities.CorrectiveCommand {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.CorrectiveCommand(nil), s.commands...)
}

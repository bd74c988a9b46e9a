package memory

import (
	"context"
	"fmt"
	"sync"

	"galleria/contexts/gallery/reaction-ledger/ports"
)

// Generator is a stub media generator producing deterministic ids/locations,
// matching the placeholder the real model call replaces.
type Generator struct {
	mu      sync.Mutex
	counter int
	failure error
}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Fail(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failure = err
}

func (g *Generator) Generate(_ context.Context, _ string) (ports.GeneratedMedia, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failure != nil {
		return ports.GeneratedMedia{}, g.failure
	}
	g.counter++
	mediaID := fmt.Sprintf("img_%d", g.counter)
	return ports.GeneratedMedia{
		MediaID:  mediaID,
		Location: fmt.Sprintf("https://cdn.example.com/images/%s.png", mediaID),
	}, nil
}

// Poster records posted items and seeded gestures, handing out message refs.
type Poster struct {
	mu      sync.Mutex
	counter int
	posts   map[string]ports.ItemPost
	seeds   []string
	failure error
}

func NewPoster() *Poster {
	return &Poster{posts: make(map[string]ports.ItemPost)}
}

func (p *Poster) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failure = err
}

func (p *Poster) PostItem(_ context.Context, post ports.ItemPost) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failure != nil {
		return "", p.failure
	}
	p.counter++
	externalRef := fmt.Sprintf("msg_%d", p.counter)
	p.posts[externalRef] = post
	return externalRef, nil
}

func (p *Poster) SeedVoteGesture(_ context.Context, externalRef string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failure != nil {
		return p.failure
	}
	p.seeds = append(p.seeds, externalRef)
	return nil
}

func (p *Poster) Seeds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.seeds...)
}

func (p *Poster) Post(externalRef string) (ports.ItemPost, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	post, ok := p.posts[externalRef]
	return post, ok
}

package reactionledger

import (
	"log/slog"

	cacheadapter "galleria/contexts/gallery/reaction-ledger/adapters/cache"
	httpadapter "galleria/contexts/gallery/reaction-ledger/adapters/http"
	"galleria/contexts/gallery/reaction-ledger/adapters/memory"
	"galleria/contexts/gallery/reaction-ledger/application/commands"
	"galleria/contexts/gallery/reaction-ledger/application/queries"
	"galleria/contexts/gallery/reaction-ledger/domain/entities"
	"galleria/contexts/gallery/reaction-ledger/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Ledger  commands.ReconcileUseCase
	Publish commands.PublishUseCase
	Tallies queries.TallyUseCase

	// Test-wiring handles populated by NewInMemoryModule only.
	Store  *memory.Store
	Sink   *memory.Sink
	Poster *memory.Poster
}

type Dependencies struct {
	Items        ports.ItemStore
	Votes        ports.VoteStore
	Sink         ports.CorrectiveSink
	Generator    ports.MediaGenerator
	Poster       ports.MessagePoster
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	TallyCache   ports.TallyCache
	SelfIdentity string
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	ledger := commands.ReconcileUseCase{
		Items:        deps.Items,
		Votes:        deps.Votes,
		Sink:         deps.Sink,
		Clock:        deps.Clock,
		SelfIdentity: deps.SelfIdentity,
		Logger:       deps.Logger,
	}
	publish := commands.PublishUseCase{
		Generator: deps.Generator,
		Poster:    deps.Poster,
		Ledger:    ledger,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	cache := deps.TallyCache
	if cache == nil {
		cache = cacheadapter.NewTallyCache(0)
	}
	tallies := queries.NewTallyUseCase(deps.Items, deps.Votes, cache)
	return Module{
		Handler: httpadapter.Handler{
			Ledger:  ledger,
			Publish: publish,
			Tallies: tallies,
			Logger:  deps.Logger,
		},
		Ledger:  ledger,
		Publish: publish,
		Tallies: tallies,
	}
}

func NewInMemoryModule(seed []entities.Item, selfIdentity string, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	sink := memory.NewSink()
	poster := memory.NewPoster()
	module := NewModule(Dependencies{
		Items:        store,
		Votes:        store,
		Sink:         sink,
		Generator:    memory.NewGenerator(),
		Poster:       poster,
		Clock:        store,
		IDGen:        store,
		SelfIdentity: selfIdentity,
		Logger:       logger,
	})
	module.Store = store
	module.Sink = sink
	module.Poster = poster
	return module
}

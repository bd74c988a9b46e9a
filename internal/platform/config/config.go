package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	// SelfIdentity is the gateway account the service posts under; reactions
	// performed by it (the seeded heart) never count as votes.
	SelfIdentity string

	// VoteGesture overrides the recognized reaction; empty keeps the default
	// heart gesture.
	VoteGesture string

	ReactionConsumerGroup string
}

func Load() (Config, error) {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "galleria"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	group := strings.TrimSpace(os.Getenv("REACTION_CONSUMER_GROUP"))
	if group == "" {
		group = "reaction-ledger-gateway-cg"
	}

	return Config{
		ServiceName:           service,
		HTTPPort:              port,
		PostgresDSN:           os.Getenv("POSTGRES_DSN"),
		SelfIdentity:          strings.TrimSpace(os.Getenv("GATEWAY_SELF_IDENTITY")),
		VoteGesture:           strings.TrimSpace(os.Getenv("VOTE_GESTURE")),
		ReactionConsumerGroup: group,
	}, nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/nulzo/media-relay/internal/core/domain"
	"github.com/nulzo/media-relay/internal/store/sqlite"
)

func main() {
	dsn := flag.String("dsn", "file:relay.db?cache=shared&mode=rwc&_journal_mode=WAL&_busy_timeout=5000", "sqlite DSN")
	flag.Parse()

	repo, err := sqlite.NewSQLiteStorage(*dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer repo.Close()

	table := &domain.RouteTable{
		BaseTag: "masterpiece%20best%20quality",
		Routes: map[string]domain.RouteDefinition{
			"flux": {
				Group:               "drawing",
				Description:         "Flux text-to-image via pollinations",
				BaseURL:             "https://image.pollinations.ai/prompt/",
				ResolutionMode:      domain.ModeRedirect,
				SpecialConstruction: domain.ConstructionPollinations,
				ModelName:           "flux",
			},
			"turbo": {
				Group:               "drawing",
				Description:         "Turbo text-to-image via pollinations",
				BaseURL:             "https://image.pollinations.ai/prompt/",
				ResolutionMode:      domain.ModeRedirect,
				SpecialConstruction: domain.ConstructionPollinations,
				ModelName:           "turbo",
			},
			"draw": {
				Group:               "drawing",
				Description:         "Alias that picks a drawing model",
				BaseURL:             "https://image.pollinations.ai/prompt/",
				ResolutionMode:      domain.ModeRedirect,
				SpecialConstruction: domain.ConstructionDrawAlias,
				ParameterSchema: []domain.ParameterSpec{
					{Name: "model", AllowedValues: []string{"flux", "turbo"}, DefaultValue: "flux"},
				},
			},
			"forward": {
				Group:               "tools",
				Description:         "Proxy an arbitrary API and extract the image URL",
				BaseURL:             "unused",
				ResolutionMode:      domain.ModeProxy,
				SpecialConstruction: domain.ConstructionForward,
			},
			"dog": {
				Group:          "animals",
				Description:    "Random dog picture",
				BaseURL:        "https://dog.ceo/api/breeds/image/random",
				ResolutionMode: domain.ModeProxy,
				ProxySettings:  &domain.ProxySettings{ImageURLField: "message"},
			},
		},
	}

	if err := repo.WriteTable(context.Background(), table); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Seeded %d routes into %s\n", len(table.Routes), *dsn)
}

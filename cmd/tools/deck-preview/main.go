// cmd/tools/deck-preview/main.go
//
// deck-preview renders the template-based pitch deck for a given idea
// without starting the server or calling any model provider. Useful for
// inspecting template changes and for demos without credentials.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"pitchforge/internal/common/config"
	"pitchforge/internal/common/logger"
	"pitchforge/internal/models"
	"pitchforge/internal/pipeline"
)

func main() {
	idea := flag.String("idea", "", "Startup idea to pitch (required)")
	audience := flag.String("audience", "", "Target audience (e.g., angel investors)")
	industry := flag.String("industry", "", "Industry hint (e.g., fintech)")
	stage := flag.String("stage", "", "Funding stage (e.g., seed, series-a)")
	style := flag.String("style", "", "Presentation style (e.g., storytelling)")
	businessModel := flag.String("business-model", "", "Business model (e.g., subscription)")
	competitors := flag.String("competitors", "", "Known competitors")
	detailed := flag.Bool("detailed", false, "Render the 10-slide detailed deck")
	out := flag.String("out", "", "Write the deck to this file instead of stdout")
	flag.Parse()

	if *idea == "" {
		fmt.Println("Error: -idea is required.")
		flag.Usage()
		os.Exit(1)
	}

	cfg := &config.Config{}
	cfg.Generation.MockMode = true

	generator := pipeline.New(cfg, nil, nil, logger.NewNoOpLogger())

	req := &models.PitchRequest{
		Idea:              *idea,
		TargetAudience:    *audience,
		Industry:          *industry,
		FundingStage:      *stage,
		PresentationStyle: *style,
		BusinessModel:     *businessModel,
		CompetitorContext: *competitors,
	}

	deck, err := generator.MockDeck(context.Background(), req, *detailed)
	if err != nil {
		fmt.Printf("Error rendering deck: %v\n", err)
		os.Exit(1)
	}

	if *out != "" {
		if err := os.WriteFile(*out, []byte(deck), 0644); err != nil {
			fmt.Printf("Error writing %s: %v\n", *out, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d bytes to %s\n", len(deck), *out)
		return
	}

	fmt.Println(deck)
}

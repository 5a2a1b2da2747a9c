// cmd/tools/yelp-ingest/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/yelp"
	"dining-concierge/internal/ingest"
)

func main() {
	outPath := flag.String("out", "restaurants.json", "Snapshot output path")
	bulkPath := flag.String("bulk", "", "Optional bulk-index output path for the search index")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Yelp.APIKey == "" {
		fmt.Println("Error: YELP_API_KEY is required")
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)

	client := yelp.NewClient(
		cfg.Yelp.BaseURL,
		cfg.Yelp.APIKey,
		cfg.Yelp.Location,
		time.Duration(cfg.Yelp.Timeout)*time.Millisecond,
	)
	harvester := ingest.NewHarvester(client, cfg.Yelp.PageSize, cfg.Yelp.MaxOffset, log)

	restaurants, err := harvester.Harvest(context.Background())
	if err != nil {
		fmt.Printf("Error harvesting restaurants: %v\n", err)
		os.Exit(1)
	}
	ingest.SortByID(restaurants)

	out, err := os.Create(*outPath)
	if err != nil {
		fmt.Printf("Error creating snapshot file: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := ingest.WriteSnapshot(out, restaurants); err != nil {
		fmt.Printf("Error writing snapshot: %v\n", err)
		os.Exit(1)
	}

	if *bulkPath != "" {
		bulk, err := os.Create(*bulkPath)
		if err != nil {
			fmt.Printf("Error creating bulk file: %v\n", err)
			os.Exit(1)
		}
		defer bulk.Close()
		if err := ingest.WriteBulkIndex(bulk, cfg.Database.Elasticsearch.Index, restaurants); err != nil {
			fmt.Printf("Error writing bulk file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote bulk index body to %s\n", *bulkPath)
	}

	fmt.Printf("Harvested %d restaurants to %s\n", len(restaurants), *outPath)
	for cuisine, count := range ingest.CuisineCounts(restaurants) {
		fmt.Printf("  %s: %d\n", cuisine, count)
	}
}

package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go-jobagent/internal/config"
	"go-jobagent/internal/ingest"
	"go-jobagent/internal/pipeline"
	"go-jobagent/internal/store"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the yaml config")
	dataFile := flag.String("data", "", "postings file (overrides config)")
	outputFile := flag.String("output", "", "ranked output file (overrides config)")
	flag.Parse()

	//load config
	cfg := config.Load(*configPath)
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}
	if *outputFile != "" {
		cfg.OutputFile = *outputFile
	}
	log.Printf("🔧 Config loaded. Data file: %s", cfg.DataFile)

	//setup context with timeout = 10 mins
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	log.Println("🚀 Starting job agent...")

	//load the extracted postings
	postings, err := ingest.ReadPostings(cfg.DataFile)
	if err != nil {
		log.Fatalf("❌ Failed to read postings: %v", err)
	}

	//connect the persisted store, if configured
	var storeClient store.Client
	if cfg.Store.DatabaseURL != "" {
		pg, err := store.Connect(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			log.Fatalf("❌ Failed to connect to store: %v", err)
		}
		defer pg.Close()
		storeClient = pg
	}

	//run the pipeline
	pl := pipeline.New(cfg, storeClient)
	ranked, summary, err := pl.Run(ctx, postings)
	if err != nil {
		log.Fatalf("❌ Pipeline failed: %v", err)
	}

	if err := ingest.WriteRanked(cfg.OutputFile, ranked); err != nil {
		log.Fatalf("❌ Failed to write output: %v", err)
	}

	log.Printf("📊 Run summary: %d processed, %d unique, %d passed filters, %d ranked",
		summary.Dedup.TotalProcessed, summary.Dedup.UniqueJobs, summary.Filter.Passed, summary.Ranked)
	log.Println("✅ Done.")
}

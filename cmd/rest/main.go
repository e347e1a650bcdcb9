package main

import (
	"context"
	"log"

	"grant-advisor-be/internal/bootstrap"
	"grant-advisor-be/internal/config"
	"grant-advisor-be/internal/server"
	"grant-advisor-be/internal/tracer"
	"grant-advisor-be/pkg/knowledge"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Load static knowledge datasets. Loaded once; all requests share
	// the same immutable snapshot, refreshed only by restarting.
	knowledgeStore, err := knowledge.Load(cfg.Knowledge.DataDir)
	if err != nil {
		log.Panicf("Unable to load knowledge datasets: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(knowledgeStore, cfg)

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}

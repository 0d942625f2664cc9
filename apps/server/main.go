package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"

	"idlerpg-lite/engine"
	"idlerpg-lite/gamedata"
	"idlerpg-lite/sim"

	"idlerpg-lite/apps/server/internal/arena"
	"idlerpg-lite/apps/server/internal/diag"
	"idlerpg-lite/apps/server/internal/gateway"
	"idlerpg-lite/apps/server/internal/store"
)

type config struct {
	Addr         string        `env:"ADDR" envDefault:":8080"`
	TickInterval time.Duration `env:"TICK_INTERVAL" envDefault:"2s"`
	Seed         int64         `env:"SEED" envDefault:"0"`
}

// demoRoster is the character set the server drives out of the box.
var demoRoster = []struct {
	id, name, backstory string
}{
	{"hrogar", "Hrogar", "soldier"},
	{"sigrun", "Sigrun", "caravan"},
	{"maelor", "Maelor", "apprentice"},
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("[Server] Failed to parse config: %v", err)
	}

	storeService, storeMode, err := store.NewServiceFromEnv()
	if err != nil {
		log.Fatalf("[Server] Failed to init store: %v", err)
	}
	defer storeService.Close()

	gd := gamedata.Demo()
	engineCfg := engine.DefaultConfig()
	engineCfg.Seed = cfg.Seed
	eng, err := engine.NewEngine(engineCfg, engine.Deps{
		Catalog: sim.DemoCatalog(),
		World:   sim.DemoWorld(),
	})
	if err != nil {
		log.Fatalf("[Server] Failed to init engine: %v", err)
	}

	gw := gateway.New()
	arn := arena.New(eng, gd, storeService, gw, cfg.TickInterval)
	defer arn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, entry := range demoRoster {
		c := sim.DemoCharacter(entry.id, entry.name, time.Now())
		c.Personality = engine.InitPersonality(entry.backstory)
		if err := arn.Register(ctx, c); err != nil {
			log.Fatalf("[Server] Failed to register character %s: %v", entry.id, err)
		}
	}

	diagHTTP := diag.NewHTTPHandler(arn)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", gw.HandleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	diagHTTP.RegisterRoutes(mux)

	log.Printf("[Server] Store mode: %s", storeMode)
	log.Printf("[Server] Tick interval: %s", cfg.TickInterval)
	log.Printf("[Server] Starting diagnostics server on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("[Server] Failed to start: %v", err)
	}
}

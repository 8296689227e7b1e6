package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/appengine-ltd/skysim/internal/fallback"
	"github.com/appengine-ltd/skysim/internal/server"
	"github.com/appengine-ltd/skysim/internal/sky"
	"github.com/appengine-ltd/skysim/internal/sound"
	"github.com/appengine-ltd/skysim/internal/world"
)

// Config is populated from SKYSIMD_* environment variables, optionally via
// a local .env file.
type Config struct {
	Addr         string  `envconfig:"ADDR" default:":8084"`
	TickMillis   int     `envconfig:"TICK_MILLIS" default:"500"`
	Timescale    float64 `envconfig:"TIMESCALE" default:"30"`
	Seed         int64   `envconfig:"SEED" default:"0"`
	Region       string  `envconfig:"REGION" default:"grasslands"`
	FallbackPath string  `envconfig:"FALLBACK_PATH"`
	RegionsPath  string  `envconfig:"REGIONS_PATH"`
}

func main() {
	// A missing .env is fine; env vars may be set directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("skysimd", &cfg); err != nil {
		log.Fatalf("config: %v", err)
	}

	table := fallback.Defaults()
	if cfg.FallbackPath != "" {
		loaded, err := fallback.Load(cfg.FallbackPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		table = loaded
	}
	regionDefs := sky.BuiltinRegions()
	if cfg.RegionsPath != "" {
		loaded, err := fallback.LoadRegions(cfg.RegionsPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		regionDefs = loaded
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sim := world.NewSim(cfg.Region)
	sim.Timescale = cfg.Timescale
	manager := sky.NewWeatherManager(sim, sound.NewLogger(), sky.NewSeededDice(seed), table, regionDefs, sky.DefaultConfig())

	hub := server.NewHub()
	go hub.Run()

	// The simulation and all manager access stay on this one goroutine;
	// the snapshot handler reads a copy guarded by the mutex below.
	var mu sync.Mutex
	type snapshot struct {
		Timestamp sky.Timestamp     `json:"timestamp"`
		Weather   string            `json:"weather"`
		Result    sky.WeatherResult `json:"result"`
		Primary   sky.MoonState     `json:"primary_moon"`
		Secondary sky.MoonState     `json:"secondary_moon"`
	}
	var latest snapshot

	go func() {
		tick := time.Duration(cfg.TickMillis) * time.Millisecond
		elapsed := tick.Seconds()
		for range time.Tick(tick) {
			mu.Lock()
			sim.Tick(elapsed)
			manager.Update(elapsed, false)
			primary, secondary := manager.MoonStates()
			latest = snapshot{
				Timestamp: sim.Timestamp(),
				Weather:   manager.CurrentWeather().String(),
				Result:    manager.Result(),
				Primary:   primary,
				Secondary: secondary,
			}
			frame := latest
			mu.Unlock()
			hub.Broadcast("weather_frame", frame)
		}
	}()

	// SIGHUP resets the session the way a fresh game start would.
	go func() {
		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		for range hup {
			log.Println("signal: resetting weather session")
			mu.Lock()
			manager.Clear()
			mu.Unlock()
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/api/state", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		frame := latest
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(frame); err != nil {
			log.Printf("state: encode: %v", err)
		}
	})

	log.Printf("skysimd listening on %s (seed %d, region %s)", cfg.Addr, seed, cfg.Region)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatal(err)
	}
}

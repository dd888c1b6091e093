package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"

	"leadgen-engine/internal/config"
	"leadgen-engine/internal/enrich"
	"leadgen-engine/internal/events"
	"leadgen-engine/internal/httpapi"
	"leadgen-engine/internal/insight"
	"leadgen-engine/internal/places"
	"leadgen-engine/internal/resolve"
	"leadgen-engine/internal/scheduler"
	"leadgen-engine/internal/store"
	"leadgen-engine/internal/webui"
	"leadgen-engine/internal/webutil"
)

func main() {
	// .env is optional; real env vars always win.
	_ = godotenv.Load()

	dataDir := os.Getenv("LEADGEN_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; a second instance would fight over
	// the sqlite file and the config.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("data dir lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance is already running in %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	creds, err := config.LoadCredentials(nil)
	if err != nil {
		log.Fatalf("startup credentials: %v", err)
	}

	userCfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "leadgen.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	hub := events.NewHub()

	limiter := webutil.NewHostLimiter(cfg.Enrich.HostReqPerSec, cfg.Enrich.HostBurst)
	placesClient := places.New(places.Config{
		APIKey:  creds.MapsAPIKey,
		Referer: cfg.Search.Referer,
	}, limiter)
	resolver := &resolve.Resolver{Places: placesClient}
	enricher := enrich.New(enrich.Config{
		Workers:    cfg.Enrich.Workers,
		AboutPages: cfg.Enrich.AboutPages,
		Timeout:    time.Duration(cfg.Enrich.TimeoutSeconds) * time.Second,
	}, limiter)

	model := cfg.Insight.Model
	if creds.OpenAIModel != "" {
		model = creds.OpenAIModel
	}
	generator := insight.New(insight.Config{
		APIKey:      creds.OpenAIAPIKey,
		BaseURL:     creds.OpenAIBaseURL,
		Model:       model,
		Temperature: cfg.Insight.Temperature,
		MaxTokens:   cfg.Insight.MaxTokens,
	})

	mux := httpapi.NewMux(httpapi.Deps{
		DB:          db.Pool,
		Hub:         hub,
		Resolver:    resolver,
		Searcher:    placesClient,
		Enricher:    enricher,
		Generator:   generator,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
	})

	ui := webui.Handler{DB: db.Pool}
	mux.HandleFunc("/", ui.Leads)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Handler:           httpapi.Chain(mux, httpapi.RequestID, httpapi.Recover, httpapi.AccessLog, httpapi.Cors),
		ReadHeaderTimeout: 5 * time.Second,
	}

	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))
	log.Printf("level=info msg=\"shutdown token\" token=%s", token)

	// Session sweep: searches (and their leads) expire after the TTL.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go scheduler.Every(ctx, time.Hour, "session-sweep", func(ctx context.Context) error {
		cur := cfgVal.Load().(config.Config)
		ttl := time.Duration(cur.App.SessionTTLHours) * time.Hour
		n, err := store.DeleteExpired(ctx, db.Pool, ttl)
		if err != nil {
			return err
		}
		if n > 0 {
			log.Printf("level=info msg=\"session sweep\" expired=%d", n)
			hub.Publish(events.MakeEvent("", events.TypeSearchExpired, 1, map[string]any{"count": n}))
		}
		return nil
	})

	log.Printf("level=info msg=\"engine listening\" addr=http://%s db=%s", addr, dbPath)
	log.Fatal(srv.Serve(ln))
}

package main

import (
	"context"
	"embed"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/arunsworld/departures"
	"github.com/arunsworld/departures/config"
	"github.com/arunsworld/departures/handlers"
	"github.com/arunsworld/departures/webserver"
	"github.com/gorilla/mux"
)

//go:embed embed/*
var webContent embed.FS

func main() {
	config.LoadEnvFiles(".env", ".env.local")
	cfg := config.Load()

	port := flag.Int("port", cfg.Port, "port to run the departure board on")
	flag.Parse()
	cfg.Port = *port

	if err := start(cfg); err != nil {
		log.Fatal(err)
	}
}

func start(cfg *config.Config) error {
	shutdownCtx, shutdown := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer shutdown()

	policy, err := departures.ParseDelayPolicy(cfg.DelayPolicy)
	if err != nil {
		return err
	}
	brands, err := departures.LoadBrandTable(cfg.BrandsFile)
	if err != nil {
		return err
	}
	if cfg.Token == "" {
		log.Printf("NAVITIA_TOKEN is not set; upstream requests will be unauthenticated")
	}
	api, err := departures.New(departures.Config{
		BaseURL:         cfg.BaseURL,
		Coverage:        cfg.Coverage,
		Token:           cfg.Token,
		Timeout:         cfg.Timeout,
		DeparturesCount: cfg.DeparturesCount,
		TimeZone:        cfg.TimeZone,
		Policy:          policy,
		Brands:          brands,
	})
	if err != nil {
		return err
	}
	log.Printf("using %s (coverage %s, delay policy %s)", cfg.BaseURL, cfg.Coverage, policy)

	handler := mux.NewRouter()
	handlers.RegisterHandlers(handler, api, mustFSSub(webContent, "embed/static"), mustFSSub(webContent, "embed/html"), handlers.Options{
		CORSOrigins: cfg.CORSOrigins,
	})

	if err := webserver.NewHTTPWebServer(handler).Serve(shutdownCtx, cfg.Port); err != nil {
		return err
	}

	return nil
}

func mustFSSub(src fs.FS, dir string) fs.FS {
	fsys, err := fs.Sub(src, dir)
	if err != nil {
		panic(err)
	}
	return fsys
}

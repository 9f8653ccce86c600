package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	httpapi "github.com/i474232898/weather-normals-comparison/internal/api/http"
	"github.com/i474232898/weather-normals-comparison/internal/config"
	"github.com/i474232898/weather-normals-comparison/internal/logging"
	"github.com/i474232898/weather-normals-comparison/internal/render"
	"github.com/i474232898/weather-normals-comparison/internal/scheduler"
	"github.com/i474232898/weather-normals-comparison/internal/weather"
	"github.com/i474232898/weather-normals-comparison/internal/weather/providers"
)

const appName = "weather-normals-comparison"

func main() {
	serve := flag.Bool("serve", false, "run the web server instead of a one-shot report")
	location := flag.String("location", "", `ZIP code or "City, State" to report on`)
	date := flag.String("date", "", "report date as YYYY-MM-DD (default today, ignored with -watch)")
	watch := flag.Bool("watch", false, "keep printing a fresh report every interval")
	interval := flag.Duration("interval", 30*time.Minute, "refresh interval for -watch")
	flag.Parse()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slog.SetDefault(logging.New(cfg, appName))

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	geocoder := providers.NewZippopotamClient(httpClient, cfg.ZippopotamBaseURL, cfg.ClientLabel)
	ncei := providers.NewNCEIClient(httpClient, cfg.NOAAToken, cfg.NCEIStationsURL, cfg.NormalsCSVRoot, cfg.ClientLabel)
	nws := providers.NewNWSClient(httpClient, cfg.NWSBaseURL, cfg.ClientLabel)

	// Core service orchestrating the geocoder, station directory and
	// observation providers. The NCEI client serves both station lookup
	// and normals reads.
	service := weather.NewService(geocoder, ncei, ncei, nws)

	switch {
	case *serve:
		runServer(cfg, service)
	case *watch:
		runWatch(promptIfEmpty(*location), *interval, service)
	default:
		runOnce(promptIfEmpty(*location), *date, service)
	}
}

// runOnce prints a single comparison report to stdout and exits non-zero
// when the report cannot be built.
func runOnce(location, date string, service *weather.Service) {
	day := time.Now().UTC()
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			log.Fatalf("invalid -date %q: use YYYY-MM-DD", date)
		}
		day = parsed
	}

	rep, err := service.BuildReport(context.Background(), location, day)
	if err != nil {
		render.ConsoleError(os.Stderr, err)
		os.Exit(1)
	}
	render.Console(os.Stdout, rep)
}

// runWatch reprints the report for today on every tick until interrupted.
func runWatch(location string, interval time.Duration, service *weather.Service) {
	sched := scheduler.New(location, interval, service, func(rep *weather.Report, err error) {
		if err != nil {
			render.ConsoleError(os.Stderr, err)
			return
		}
		render.Console(os.Stdout, rep)
	})
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start refresher: %v", err)
	}
	defer sched.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
}

func runServer(cfg *config.AppConfig, service *weather.Service) {
	if err := render.LoadTemplates(); err != nil {
		log.Fatalf("failed to load templates: %v", err)
	}

	app := httpapi.NewApp(service)

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

func promptIfEmpty(location string) string {
	if location != "" {
		return location
	}

	fmt.Print("Enter ZIP or (City, STATE): ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		log.Fatalf("failed to read location: %v", err)
	}
	return strings.TrimSpace(line)
}

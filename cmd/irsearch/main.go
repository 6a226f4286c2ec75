package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"irsearch/internal/apperrors"
	"irsearch/internal/config"
	"irsearch/internal/domain"
	"irsearch/internal/index"
	"irsearch/internal/loader"
	"irsearch/internal/logger"
	"irsearch/internal/metrics"
	"irsearch/internal/service"
	"irsearch/internal/summarizer"
	"irsearch/internal/tokenizer"
	"irsearch/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath string
		dataDir string
		topK    int
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ./config.yaml or ~/.config/irsearch/config.yaml if not provided)")
	flag.StringVar(&dataDir, "data", "", "Directory of documents to index (overrides data.dir)")
	flag.IntVar(&topK, "top", 0, "Number of results to return (overrides search.top_k)")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: irsearch [--config=config.yaml] [--data=dir] [--top=N] [query words...]")
		flag.PrintDefaults()
	}
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if dataDir != "" {
		cfg.Data.Dir = dataDir
	}
	if topK != 0 {
		cfg.Search.TopK = topK
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.WithComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, strings.Join(flag.Args(), " ")); err != nil {
		log.WithError(err).Error("irsearch failed")
		fmt.Fprintln(os.Stderr, userMessage(err, cfg))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.AppConfig, query string) error {
	log := logger.WithComponent("main")

	tok := tokenizer.New(tokenizer.Options{
		Stopwords: cfg.Index.Stopwords,
		Stemming:  cfg.Index.Stemming,
	})
	m := metrics.New()
	ix := index.New(tok, cfg.IndexOptions(), logger.WithComponent("index"))
	svc := service.NewSearchService(ix, summarizer.NewFrequencySummarizer(), cfg.Summary.MaxSentences, m, logger.WithComponent("service"))

	ld := loader.New(cfg.Data.Extension, cfg.Data.Concurrency, logger.WithComponent("loader"))
	docs, err := ld.LoadDir(ctx, cfg.Data.Dir)
	if err != nil {
		return fmt.Errorf("loading documents: %w", err)
	}
	if err := svc.Ingest(docs); err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	if cfg.Metrics.Addr != "" {
		srv := startMetricsServer(cfg.Metrics.Addr, m, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.WithError(err).Warn("metrics server shutdown")
			}
		}()
	}

	if query != "" {
		return oneShot(svc, query, cfg.Search.TopK)
	}

	model := tui.New(svc, tok, svc.Summary(), cfg.Search.TopK)
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func oneShot(svc domain.SearchService, query string, topK int) error {
	results, err := svc.Search(query, topK)
	if err != nil {
		return err
	}
	fmt.Println(tui.FormatResults(query, results))
	return nil
}

func startMetricsServer(addr string, m *metrics.Metrics, log logrus.FieldLogger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.WithField("addr", addr).Info("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics server error")
		}
	}()
	return srv
}

func userMessage(err error, cfg *config.AppConfig) string {
	switch {
	case apperrors.IsNotFound(err):
		return fmt.Sprintf("Directory %s does not exist. Create it and add your %s files there.", cfg.Data.Dir, cfg.Data.Extension)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

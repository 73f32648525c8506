package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"product-extractor/extractor"
	"product-extractor/internal/config"
	"product-extractor/internal/logging"
	"product-extractor/internal/types"
	"product-extractor/monitor"
	"product-extractor/store"
	"product-extractor/utils"
)

func main() {
	var (
		urlFlag       = flag.String("url", "", "Product page URL (more URLs may follow as arguments)")
		configPath    = flag.String("config", "", "Optional yaml config file")
		outputFlag    = flag.String("output", "", "Output file path (default: stdout)")
		requestDelay  = flag.Duration("delay", 1*time.Second, "Delay between requests")
		maxRetries    = flag.Int("retries", 3, "Maximum retry attempts")
		timeout       = flag.Duration("timeout", 30*time.Second, "Request timeout")
		maxConcurrent = flag.Int("concurrent", 5, "Maximum concurrent requests")
		useBrowser    = flag.Bool("browser", true, "Use headless browser for JavaScript-heavy sites")
		httpOnly      = flag.Bool("http-only", false, "Use HTTP requests only (disable headless browser)")
		noExpand      = flag.Bool("no-expand", false, "Do not click gallery thumbnails")
		watch         = flag.Bool("watch", false, "Add the extracted products to the stock watch-list")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	var urls []string
	if *urlFlag != "" {
		urls = append(urls, strings.TrimSpace(*urlFlag))
	}
	for _, arg := range flag.Args() {
		urls = append(urls, strings.TrimSpace(arg))
	}
	if len(urls) == 0 {
		log.Fatal("At least one product URL is required (--url)")
	}

	cfg := config.MustLoad(*configPath)

	level := cfg.LogLevel
	if *verbose && os.Getenv("LOG_LEVEL") == "" {
		level = "debug"
	}
	logger := logging.New(level, cfg.LogFormat)

	// explicitly set flags win over the environment
	engine := cfg.Engine()
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "delay":
			engine.RequestDelay = *requestDelay
		case "retries":
			engine.MaxRetries = *maxRetries
		case "timeout":
			engine.Timeout = *timeout
		case "concurrent":
			engine.MaxConcurrentRequests = *maxConcurrent
		case "browser":
			engine.UseHeadlessBrowser = *useBrowser
		}
	})
	if *httpOnly {
		engine.UseHeadlessBrowser = false
	}
	if *noExpand {
		engine.ExpandGallery = false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	loader := utils.NewPageLoader(engine, logger)
	defer loader.Close()
	ex := extractor.NewExtractor(engine, logger)

	var mon *monitor.Monitor
	if *watch {
		st, err := store.Open(ctx, cfg.Store())
		if err != nil {
			logger.Fatalf("Failed to open store: %v", err)
		}
		if st != nil {
			defer st.Close()
		}
		mon = monitor.New(st, ex, loader, engine, logger)
	}

	startTime := time.Now()
	logger.Infof("Starting extraction for %d URL(s)", len(urls))

	var records []*types.ProductRecord
	for _, url := range urls {
		record, err := extractOne(ctx, loader, ex, url)
		if err != nil {
			logger.Warnf("Failed to extract %s: %v", url, err)
			continue
		}
		records = append(records, record)

		if mon != nil {
			if _, err := mon.AddOrUpdate(ctx, record); err != nil {
				logger.Warnf("Failed to watch %s: %v", url, err)
			}
		}
	}

	logger.Infof("Extraction completed in %v", time.Since(startTime))
	if len(records) == 0 {
		logger.Fatal("No product could be extracted")
	}

	var jsonData []byte
	var err error
	if len(records) == 1 {
		jsonData, err = json.MarshalIndent(records[0], "", "  ")
	} else {
		jsonData, err = json.MarshalIndent(records, "", "  ")
	}
	if err != nil {
		logger.Fatalf("Failed to marshal results: %v", err)
	}

	if *outputFlag != "" {
		if err := os.WriteFile(*outputFlag, jsonData, 0644); err != nil {
			logger.Fatalf("Failed to write output file: %v", err)
		}
		logger.Infof("Results written to: %s", *outputFlag)
	} else {
		fmt.Println(string(jsonData))
	}

	logger.Infof("Products extracted: %d of %d", len(records), len(urls))
}

func extractOne(ctx context.Context, loader *utils.PageLoader, ex *extractor.Extractor, url string) (*types.ProductRecord, error) {
	page, err := loader.Load(ctx, url)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	return ex.Extract(ctx, page)
}

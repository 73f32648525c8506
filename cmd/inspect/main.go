// Command inspect prints which selector of each field table matches on a
// product page. It helps tuning the platform tables.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"product-extractor/adapters"
	"product-extractor/internal/config"
	"product-extractor/internal/logging"
	"product-extractor/utils"
)

type fieldTable struct {
	name     string
	list     func(*adapters.Selectors) []string
	attrs    []string // read attributes instead of text
	countAll bool
}

var tables = []fieldTable{
	{name: "title", list: func(s *adapters.Selectors) []string { return s.Title }},
	{name: "description", list: func(s *adapters.Selectors) []string { return s.Description }},
	{name: "brand", list: func(s *adapters.Selectors) []string { return s.Brand }},
	{name: "price", list: func(s *adapters.Selectors) []string { return s.Price }},
	{name: "originalPrice", list: func(s *adapters.Selectors) []string { return s.OriginalPrice }},
	{name: "stock", list: func(s *adapters.Selectors) []string { return s.Stock }},
	{name: "addToCart", list: func(s *adapters.Selectors) []string { return s.AddToCart }},
	{name: "shipping", list: func(s *adapters.Selectors) []string { return s.Shipping }},
	{name: "breadcrumb", list: func(s *adapters.Selectors) []string { return s.Breadcrumb }},
	{name: "images", list: func(s *adapters.Selectors) []string { return s.Images }, attrs: []string{"data-zoom-image", "data-old-hires", "data-src", "src"}, countAll: true},
	{name: "thumbnails", list: func(s *adapters.Selectors) []string { return s.Thumbnails }, countAll: true},
	{name: "expansion", list: func(s *adapters.Selectors) []string { return s.Expansion }, countAll: true},
	{name: "specs", list: func(s *adapters.Selectors) []string { return s.Specs }},
}

func main() {
	var (
		pageURL  = flag.String("url", "", "Product page URL")
		httpOnly = flag.Bool("http-only", false, "Fetch over HTTP instead of the headless browser")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if *pageURL == "" {
		log.Fatal("--url is required")
	}
	u, err := url.Parse(*pageURL)
	if err != nil {
		log.Fatalf("Invalid URL: %v", err)
	}

	cfg := config.MustLoad("")
	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger := logging.New(level, "text")

	engine := cfg.Engine()
	engine.UseHeadlessBrowser = !*httpOnly

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	loader := utils.NewPageLoader(engine, logger)
	defer loader.Close()

	page, err := loader.Load(ctx, *pageURL)
	if err != nil {
		log.Fatalf("Failed to load page: %v", err)
	}
	defer page.Close()

	html, err := page.Content(ctx)
	if err != nil {
		log.Fatalf("Failed to read page: %v", err)
	}
	doc, err := adapters.ParseHTML(html)
	if err != nil {
		log.Fatalf("Failed to parse HTML: %v", err)
	}

	registry := adapters.NewRegistry()
	platform := registry.Detect(u.Hostname())
	fmt.Printf("=== %s ===\n", *pageURL)
	fmt.Printf("Platform: %s\n", platform.Name)
	fmt.Printf("JSON-LD blocks: %d\n\n", doc.Find(`script[type="application/ld+json"]`).Length())

	for _, table := range tables {
		inspect(doc, registry.Chain(platform, table.list), table)
	}

	if len(platform.Selectors.Swatches) > 0 {
		fmt.Println("swatches:")
		for _, sw := range platform.Selectors.Swatches {
			fmt.Printf("  %-8s %s -> %d\n", sw.Name, sw.Selector, doc.Find(sw.Selector).Length())
		}
	}
}

func inspect(doc *goquery.Document, chain []string, table fieldTable) {
	var (
		match adapters.Match
		ok    bool
	)
	if len(table.attrs) > 0 {
		match, ok = adapters.FirstAttr(doc.Selection, chain, table.attrs...)
	} else {
		match, ok = adapters.FirstText(doc.Selection, chain)
	}

	switch {
	case ok:
		fmt.Printf("%-14s %s\n", table.name, match.Selector)
		fmt.Printf("%-14s   value: %.120q\n", "", match.Value)
	default:
		fmt.Printf("%-14s no match among %d selectors\n", table.name, len(chain))
	}

	if table.countAll {
		for _, selector := range chain {
			if n := doc.Find(selector).Length(); n > 0 {
				fmt.Printf("%-14s   %s -> %d\n", "", selector, n)
			}
		}
	}
}

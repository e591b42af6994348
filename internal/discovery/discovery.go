// Package discovery crawls a site and turns its pages into sitemap
// entries, harvesting video metadata from OpenGraph markup.
package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/davidfults/vidmap/internal/storage"
	"github.com/davidfults/vidmap/internal/utils"
)

type Config struct {
	SiteName       string
	SeedURLs       []string
	AllowedDomains []string
	UserAgent      string
	MaxDepth       int
}

type Discoverer struct {
	collector *colly.Collector
	store     storage.Store
	config    *Config
	logger    *utils.RunLogger
}

func NewDiscoverer(store storage.Store, config *Config, logger *utils.RunLogger) *Discoverer {
	c := colly.NewCollector(
		colly.UserAgent(config.UserAgent),
		colly.MaxDepth(config.MaxDepth),
		colly.AllowedDomains(config.AllowedDomains...),
	)

	// Set reasonable limits
	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 2,
		RandomDelay: 5 * time.Second,
	})

	return &Discoverer{
		collector: c,
		store:     store,
		config:    config,
		logger:    logger,
	}
}

// Run crawls the configured seeds and upserts one entry per visited page.
func (d *Discoverer) Run(ctx context.Context) error {
	d.collector.OnHTML("html", func(e *colly.HTMLElement) {
		pageURL := e.Request.URL.String()
		d.logger.LogDebug("Processing page: %s", pageURL)

		entry := EntryFromDocument(pageURL, e.DOM)
		if err := d.store.CreateEntry(ctx, entry); err != nil {
			d.logger.LogError("Error saving entry for %s: %v", pageURL, err)
			return
		}

		if entry.Video != nil {
			d.logger.LogInfo("Found video on %s", pageURL)
		}
	})

	d.collector.OnHTML("a[href]", func(e *colly.HTMLElement) {
		link := e.Request.AbsoluteURL(e.Attr("href"))
		if link == "" {
			return
		}
		e.Request.Visit(link)
	})

	d.collector.OnError(func(r *colly.Response, err error) {
		d.logger.LogError("Request to %s failed: %v", r.Request.URL, err)
	})

	for idx, seed := range d.config.SeedURLs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			d.logger.LogInfo("Visiting seed %d/%d: %s", idx+1, len(d.config.SeedURLs), seed)
			if err := d.collector.Visit(seed); err != nil {
				d.logger.LogError("Error visiting %s: %v", seed, err)
			}
		}
	}

	d.collector.Wait()

	count, err := d.store.CountEntries(ctx)
	if err != nil {
		return fmt.Errorf("error counting entries after run: %w", err)
	}
	d.logger.LogInfo("Discovery complete, %d entries in store", count)

	return nil
}

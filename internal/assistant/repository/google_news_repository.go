package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang-stock-assistant/internal/assistant/config"
	"golang-stock-assistant/internal/assistant/symbol"
	"golang-stock-assistant/internal/entity"
	"golang-stock-assistant/pkg/logger"
	"golang-stock-assistant/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
)

const (
	defaultGoogleNewsURL      = "https://news.google.com/rss"
	defaultGoogleNewsMaxItems = 10
)

type googleNewsRepository struct {
	cfg    config.GoogleNews
	logger *logger.Logger
	parser *gofeed.Parser
}

// NewGoogleNewsRepository creates a new instance of googleNewsRepository.
func NewGoogleNewsRepository(cfg config.GoogleNews, log *logger.Logger) NewsRepository {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGoogleNewsURL
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = defaultGoogleNewsMaxItems
	}
	if cfg.Language == "" {
		cfg.Language = "en-US"
	}
	if cfg.Region == "" {
		cfg.Region = "US"
	}

	fp := gofeed.NewParser()
	fp.Client = &http.Client{Timeout: 30 * time.Second}

	return &googleNewsRepository{
		cfg:    cfg,
		logger: log,
		parser: fp,
	}
}

func (r *googleNewsRepository) Name() string { return "google-news" }

// GetNews reads the Google News RSS search feed for symbol, or the business
// section when symbol is empty. IDX symbols are searched in Indonesian.
func (r *googleNewsRepository) GetNews(ctx context.Context, sym string) ([]entity.NewsItem, error) {
	if !r.cfg.Enabled {
		return nil, ErrProviderNotConfigured
	}

	feedURL := r.buildURL(sym)
	r.logger.DebugContext(ctx, "Processing RSS feed", logger.StringField("url", feedURL))
	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed for %q: %w", sym, err)
	}

	sort.SliceStable(feed.Items, func(i, j int) bool {
		if feed.Items[i].PublishedParsed == nil || feed.Items[j].PublishedParsed == nil {
			return false
		}
		return feed.Items[i].PublishedParsed.After(*feed.Items[j].PublishedParsed)
	})

	items := make([]entity.NewsItem, 0, r.cfg.MaxItems)
	for _, it := range feed.Items {
		if len(items) >= r.cfg.MaxItems {
			break
		}
		title, source := splitTitleSource(it.Title)
		if title == "" {
			continue
		}
		item := entity.NewsItem{
			Title:       title,
			Source:      source,
			URL:         it.Link,
			Description: htmlToText(it.Description),
		}
		if it.PublishedParsed != nil {
			item.PublishedAt = it.PublishedParsed.Format(time.RFC3339)
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("google news %q: %w", sym, ErrEmptyPayload)
	}
	return items, nil
}

func (r *googleNewsRepository) buildURL(sym string) string {
	base := strings.TrimRight(r.cfg.BaseURL, "/")
	lang, region := r.cfg.Language, r.cfg.Region
	query := symbol.Base(sym) + " stock"
	if strings.HasSuffix(sym, symbol.IDXSuffix) {
		lang, region = "id", "ID"
		query = "saham " + symbol.Base(sym)
	}

	params := url.Values{}
	params.Set("hl", lang)
	params.Set("gl", region)
	params.Set("ceid", fmt.Sprintf("%s:%s", region, strings.SplitN(lang, "-", 2)[0]))
	if sym == "" {
		return fmt.Sprintf("%s/headlines/section/topic/BUSINESS?%s", base, params.Encode())
	}
	params.Set("q", query)
	return fmt.Sprintf("%s/search?%s", base, params.Encode())
}

// splitTitleSource splits Google News titles of the form "Headline - Publisher".
func splitTitleSource(raw string) (title, source string) {
	raw = strings.TrimSpace(raw)
	if i := strings.LastIndex(raw, " - "); i > 0 {
		return strings.TrimSpace(raw[:i]), strings.TrimSpace(raw[i+3:])
	}
	return raw, "Google News"
}

// htmlToText extracts readable text from an HTML fragment. Readability is
// tried first; short fragments it discards are read with goquery directly.
func htmlToText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	if doc, err := readability.NewDocument(fragment); err == nil {
		if text := textOf(doc.Content()); text != "" {
			return text
		}
	}
	return textOf(fragment)
}

func textOf(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return utils.SafeText(doc.Text())
}

package sitemap

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Config bounds parser recursion.
type Config struct {
	// MaxParallel caps concurrent sitemap fetches.
	MaxParallel int
	// MaxDepth caps index nesting; the root document is depth 0.
	MaxDepth int
}

// Parser recursively resolves sitemap indexes into leaf page URLs.
// A failure to fetch or parse any single document is logged and treated as an
// empty result for that node; sibling nodes are unaffected.
type Parser struct {
	fetcher Fetcher
	cfg     Config
	logger  *zap.Logger
}

// NewParser constructs a Parser.
func NewParser(fetcher Fetcher, cfg Config, logger *zap.Logger) *Parser {
	if cfg.MaxParallel <= 0 {
		cfg.MaxParallel = 10
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{fetcher: fetcher, cfg: cfg, logger: logger}
}

// Parse walks the sitemap graph rooted at rootURL and returns every page URL
// found in leaf documents. It never returns an error; an unreachable root
// simply yields no URLs.
func (p *Parser) Parse(ctx context.Context, rootURL string) []string {
	walk := &walker{
		parser:  p,
		sem:     make(chan struct{}, p.cfg.MaxParallel),
		visited: make(map[string]struct{}),
	}
	walk.wg.Add(1)
	go walk.crawl(ctx, rootURL, 0)
	walk.wg.Wait()

	p.logger.Debug("sitemap parse complete",
		zap.String("root", rootURL),
		zap.Int("urls", len(walk.pages)),
		zap.Int("documents", walk.fetched),
	)
	return walk.pages
}

// walker holds the mutable state of one Parse call.
type walker struct {
	parser  *Parser
	wg      sync.WaitGroup
	sem     chan struct{}
	mu      sync.Mutex
	visited map[string]struct{}
	pages   []string
	fetched int
}

// markVisited records the URL, returning false if it was already seen.
// Real sitemap graphs contain self-references, so cycles must be cut.
func (w *walker) markVisited(url string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, seen := w.visited[url]; seen {
		return false
	}
	w.visited[url] = struct{}{}
	return true
}

func (w *walker) crawl(ctx context.Context, url string, depth int) {
	defer w.wg.Done()

	if ctx.Err() != nil {
		return
	}
	if depth > w.parser.cfg.MaxDepth {
		w.parser.logger.Warn("sitemap nesting too deep, skipping", zap.String("url", url))
		return
	}
	if !w.markVisited(url) {
		return
	}

	w.sem <- struct{}{}
	body, err := w.parser.fetcher.Fetch(ctx, url)
	<-w.sem

	w.mu.Lock()
	w.fetched++
	w.mu.Unlock()

	if err != nil {
		w.parser.logger.Warn("sitemap fetch failed, skipping node",
			zap.String("url", url), zap.Error(err))
		return
	}

	doc, err := parseDocument(body)
	if err != nil {
		w.parser.logger.Warn("sitemap parse failed, skipping node",
			zap.String("url", url), zap.Error(err))
		return
	}

	if len(doc.pages) > 0 {
		w.mu.Lock()
		w.pages = append(w.pages, doc.pages...)
		w.mu.Unlock()
	}

	// Recursion into children only starts once the parent document is fully
	// decoded; independent children fan out in parallel under the semaphore.
	for _, child := range doc.children {
		w.wg.Add(1)
		go w.crawl(ctx, child, depth+1)
	}
}

// document is the decoded shape of one sitemap file: an index document has
// children, a leaf document has pages. Mixed documents are tolerated.
type document struct {
	children []string
	pages    []string
}

type locEntry struct {
	Loc string `xml:"loc"`
}

// parseDocument token-walks the XML so huge leaf sitemaps decode without
// materializing the whole element tree.
func parseDocument(data []byte) (document, error) {
	var doc document
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Salvage whatever decoded before the malformed region.
			if len(doc.children) > 0 || len(doc.pages) > 0 {
				return doc, nil
			}
			return document{}, err
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "sitemap":
			var entry locEntry
			if err := decoder.DecodeElement(&entry, &start); err == nil {
				if loc := strings.TrimSpace(entry.Loc); loc != "" {
					doc.children = append(doc.children, loc)
				}
			}
		case "url":
			var entry locEntry
			if err := decoder.DecodeElement(&entry, &start); err == nil {
				if loc := strings.TrimSpace(entry.Loc); loc != "" {
					doc.pages = append(doc.pages, loc)
				}
			}
		}
	}
	return doc, nil
}

// Package enrich implements the enrichment driver: it walks parsed docs in
// order and, for any doc lacking seed_id, resolves and injects one.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/arturoeanton/solr-seed-proxy/internal/docxml"
	"github.com/arturoeanton/solr-seed-proxy/internal/hostcanon"
)

// ErrMissingURL is returned when a doc lacks a url field, or its first
// value is empty.
var ErrMissingURL = errors.New("NOT_FOUND_URL")

// SeedIDResolver resolves a canonical seed_host to a seed_id. *resolver.Resolver
// satisfies this; enrich depends only on the method it needs.
type SeedIDResolver interface {
	Resolve(ctx context.Context, seedHost string) (string, error)
}

const seedIDField = "seed_id"
const urlField = "url"

// Stats counts the outcomes of one Enrich call, for the dispatcher's
// per-request counters update.
type Stats struct {
	DocCount     int
	EnrichedDocs int
	SkippedDocs  int
}

// Enrich walks docs in input order. For any doc whose field map does not
// already contain seed_id, it extracts the first url value, canonicalizes
// it, resolves a seed_id, and appends it as an owned value (flipping that
// doc's Changed flag). Docs that already carry seed_id are left untouched
// — including the case documented in spec.md §9 where seed_id already has
// more than one value: no enrichment runs, the first value wins.
func Enrich(ctx context.Context, docs []docxml.Doc, resolver SeedIDResolver) (Stats, error) {
	stats := Stats{DocCount: len(docs)}

	for i := range docs {
		fields := docs[i].Fields
		if fields.Has(seedIDField) {
			stats.SkippedDocs++
			continue
		}

		urlValue, ok := fields.First(urlField)
		if !ok || strings.TrimSpace(urlValue.Text()) == "" {
			return stats, ErrMissingURL
		}

		rawURL := html.UnescapeString(urlValue.Text())
		seedHost, err := hostcanon.SeedHost(rawURL)
		if err != nil {
			return stats, err
		}

		seedID, err := resolver.Resolve(ctx, seedHost)
		if err != nil {
			return stats, fmt.Errorf("resolving seed_id for %s: %w", seedHost, err)
		}

		fields.PushOwned(seedIDField, seedID)
		stats.EnrichedDocs++
	}

	return stats, nil
}

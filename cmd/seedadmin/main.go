// Command seedadmin is an operator tool for looking up a seed_host ->
// seed_id mapping directly against the store, inserting one when none
// exists, without replaying an XML /update submission. It reuses internal/resolver and
// internal/hostcanon verbatim and never touches the request path.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/arturoeanton/solr-seed-proxy/internal/config"
	"github.com/arturoeanton/solr-seed-proxy/internal/counters"
	"github.com/arturoeanton/solr-seed-proxy/internal/hostcanon"
	"github.com/arturoeanton/solr-seed-proxy/internal/resolver"
)

func main() {
	url := flag.String("url", "", "document url to canonicalize and resolve a seed_id for")
	host := flag.String("host", "", "already-canonicalized seed_host to resolve a seed_id for (alternative to -url)")
	flag.Parse()

	if *url == "" && *host == "" {
		fmt.Fprintln(os.Stderr, "seedadmin: one of -url or -host is required")
		os.Exit(2)
	}

	seedHost := *host
	if seedHost == "" {
		var err error
		seedHost, err = hostcanon.SeedHost(*url)
		if err != nil {
			fmt.Fprintf(os.Stderr, "seedadmin: canonicalization failed: %v\n", err)
			os.Exit(1)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "seedadmin: %v\n", err)
		os.Exit(1)
	}

	log := zap.NewNop()
	store, err := resolver.OpenSQLStore(resolver.DefaultPoolConfig(cfg.DSN()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "seedadmin: failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	res := resolver.New(resolver.NewCache(), store, counters.New(), log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seedID, err := res.Resolve(ctx, seedHost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seedadmin: resolve failed for %s: %v\n", seedHost, err)
		os.Exit(1)
	}

	fmt.Printf("seed_host=%s seed_id=%s\n", seedHost, seedID)
}

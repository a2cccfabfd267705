// Command solrproxy runs the transparent enrichment proxy: it listens for
// /select and /update requests, enriches /update bodies with seed_id, and
// forwards everything to the configured backend.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/arturoeanton/solr-seed-proxy/internal/config"
	"github.com/arturoeanton/solr-seed-proxy/internal/counters"
	"github.com/arturoeanton/solr-seed-proxy/internal/dispatcher"
	"github.com/arturoeanton/solr-seed-proxy/internal/forwarder"
	"github.com/arturoeanton/solr-seed-proxy/internal/logging"
	"github.com/arturoeanton/solr-seed-proxy/internal/netutil"
	"github.com/arturoeanton/solr-seed-proxy/internal/resolver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.New(cfg.LogDir)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	bindHost := ""
	if ip, err := netutil.PrimaryIPv4(); err != nil {
		log.Warn("could not determine primary address, listening on all interfaces", zap.Error(err))
	} else {
		bindHost = ip
		log.Info("starting solrproxy", zap.String("address", ip), zap.String("port", cfg.ListenPort))
	}

	store, err := resolver.OpenSQLStore(resolver.DefaultPoolConfig(cfg.DSN()))
	if err != nil {
		log.Fatal("failed to open database pool", zap.Error(err))
	}
	defer store.Close()

	c := counters.New()
	cache := resolver.NewCache()
	res := resolver.New(cache, store, c, log)
	fwd := forwarder.New(cfg.SolrURL, &http.Client{Timeout: 30 * time.Second})
	disp := dispatcher.New(fwd, res, c, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go counters.RunTicker(ctx, c, res.CacheLen, log)

	e := echo.New()
	e.HideBanner = true
	disp.Register(e)

	go func() {
		if err := e.Start(bindHost + ":" + cfg.ListenPort); err != nil && err != http.ErrServerClosed {
			log.Fatal("server stopped unexpectedly", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}

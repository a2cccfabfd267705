// Package dispatcher routes inbound requests: /select passes through
// unchanged, /update runs the enrichment pipeline, anything else is
// rejected. See spec.md §4.7.
package dispatcher

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/arturoeanton/solr-seed-proxy/internal/counters"
	"github.com/arturoeanton/solr-seed-proxy/internal/docxml"
	"github.com/arturoeanton/solr-seed-proxy/internal/enrich"
	"github.com/arturoeanton/solr-seed-proxy/internal/forwarder"
)

// ErrUnknownPath is surfaced for any request path that is neither a
// /select nor an /update suffix.
type ErrUnknownPath struct {
	Path string
}

func (e *ErrUnknownPath) Error() string {
	return "UNKNOWN_PATH " + e.Path
}

// Dispatcher routes /select and /update requests to the backend, running
// the enrichment pipeline on /update bodies.
type Dispatcher struct {
	forwarder *forwarder.Client
	resolver  enrich.SeedIDResolver
	counters  *counters.OpCounters
	log       *zap.Logger
}

// New wires a Dispatcher from its collaborators.
func New(fwd *forwarder.Client, resolver enrich.SeedIDResolver, c *counters.OpCounters, log *zap.Logger) *Dispatcher {
	return &Dispatcher{forwarder: fwd, resolver: resolver, counters: c, log: log}
}

// Register mounts the dispatcher's catch-all route on e.
func (d *Dispatcher) Register(e *echo.Echo) {
	e.Any("/*", d.handle)
}

func (d *Dispatcher) handle(c echo.Context) error {
	path := c.Request().URL.Path
	switch {
	case strings.HasSuffix(path, "/select"):
		return d.handleSelect(c)
	case strings.HasSuffix(path, "/update"):
		return d.handleUpdate(c)
	default:
		d.counters.IncErrorResponse()
		return c.String(http.StatusInternalServerError, (&ErrUnknownPath{Path: path}).Error())
	}
}

func (d *Dispatcher) handleSelect(c echo.Context) error {
	start := time.Now()
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return d.fatal(c, err)
	}

	resp, err := d.forwarder.Forward(c.Request().Context(), c.Request().Method, pathAndQuery(c.Request()), c.Request().Header, body)
	if err != nil {
		return d.fatal(c, err)
	}
	d.counters.ObserveSelect(time.Since(start))
	return relay(c, resp)
}

func (d *Dispatcher) handleUpdate(c echo.Context) error {
	start := time.Now()
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return d.fatal(c, err)
	}

	docs, err := docxml.Read(body)
	if err != nil {
		return d.forwardWithErrorEnvelope(c, body, err, start, 0)
	}
	docCount := len(docs)

	if _, err := enrich.Enrich(c.Request().Context(), docs, d.resolver); err != nil {
		return d.forwardWithErrorEnvelope(c, body, err, start, docCount)
	}

	outBody := body
	if res := docxml.Write(docs); res.Changed {
		outBody = res.Bytes
	}

	resp, err := d.forwarder.Forward(c.Request().Context(), c.Request().Method, pathAndQuery(c.Request()), c.Request().Header, outBody)
	if err != nil {
		return d.fatal(c, err)
	}

	d.counters.ObserveUpdate(time.Since(start), docCount, len(outBody))
	return relay(c, resp)
}

// forwardWithErrorEnvelope forwards the original, unrewritten body to the
// backend even though enrichment failed partway through, then wraps the
// client-visible response in a warning-logged envelope, per spec.md §7.
func (d *Dispatcher) forwardWithErrorEnvelope(c echo.Context, originalBody []byte, enrichErr error, start time.Time, docCount int) error {
	d.log.Warn("enrichment failed, forwarding original body",
		zap.String("remote_addr", c.RealIP()),
		zap.Error(enrichErr),
	)
	d.counters.IncErrorResponse()

	resp, err := d.forwarder.Forward(c.Request().Context(), c.Request().Method, pathAndQuery(c.Request()), c.Request().Header, originalBody)
	if err != nil {
		return d.fatal(c, err)
	}
	d.counters.ObserveUpdate(time.Since(start), docCount, len(originalBody))
	return relay(c, resp)
}

func (d *Dispatcher) fatal(c echo.Context, err error) error {
	d.counters.IncErrorResponse()
	d.log.Error("request failed", zap.Error(err))
	return c.String(http.StatusInternalServerError, err.Error())
}

func relay(c echo.Context, resp *forwarder.Response) error {
	for k, vs := range resp.Header {
		for _, v := range vs {
			c.Response().Header().Add(k, v)
		}
	}
	return c.Blob(resp.StatusCode, resp.Header.Get("Content-Type"), resp.Body)
}

func pathAndQuery(r *http.Request) string {
	if r.URL.RawQuery == "" {
		return r.URL.Path
	}
	return r.URL.Path + "?" + r.URL.RawQuery
}

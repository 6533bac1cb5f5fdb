package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/valyala/fasthttp"

	"plan-engine/internal/model"
)

func TestCounters(t *testing.T) {
	m := New()
	m.ObserveRequest("/price", 200, time.Millisecond)
	m.ObserveRequest("/price", 200, 2*time.Millisecond)
	m.ObserveRequest("/price", 400, time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("/price", "200")); got != 2 {
		t.Fatalf("expected 2 ok requests, got %v", got)
	}
	if got := testutil.CollectAndCount(m.duration); got != 1 {
		t.Fatalf("expected one histogram series, got %d", got)
	}

	m.ObserveQuote(model.Quote{Status: model.QuotePriced})
	m.ObserveQuote(model.Quote{Status: model.QuoteInvalid, ReasonCode: model.ReasonInvalidBranch})
	m.ObserveValidation(model.Invalid(model.ReasonInvalidBranch))
	m.ObserveValidation(model.Valid())

	if got := testutil.ToFloat64(m.quotes.WithLabelValues("PRICED")); got != 1 {
		t.Fatalf("expected 1 priced quote, got %v", got)
	}
	if got := testutil.ToFloat64(m.invalidSelections.WithLabelValues("INVALID_BRANCH")); got != 2 {
		t.Fatalf("expected 2 INVALID_BRANCH rejections, got %v", got)
	}
	if got := testutil.CollectAndCount(m.invalidSelections); got != 1 {
		t.Fatalf("valid selections must not be counted, got %d series", got)
	}
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.SetCatalogPrices(1470)

	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/metrics")
	ctx.Request.Header.SetMethod(fasthttp.MethodGet)
	m.Handler()(&ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("expected 200, got %d", ctx.Response.StatusCode())
	}
	body := string(ctx.Response.Body())
	if !strings.Contains(body, "plan_engine_catalog_prices 1470") {
		t.Fatalf("expected catalog gauge in output, got:\n%s", body)
	}
}

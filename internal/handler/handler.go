// Package handler exposes the engine over fasthttp.
package handler

import (
	"errors"
	"fmt"
	"log"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"plan-engine/internal/engine"
	"plan-engine/internal/metrics"
	"plan-engine/internal/model"
)

type Handler struct {
	engine  *engine.Engine
	metrics *metrics.Metrics
	summary []byte
	prom    fasthttp.RequestHandler
}

func New(e *engine.Engine, m *metrics.Metrics) (*Handler, error) {
	summary, err := json.Marshal(summarize(e))
	if err != nil {
		return nil, fmt.Errorf("encode catalog summary: %w", err)
	}
	m.SetCatalogPrices(e.Catalog().PriceCount())
	return &Handler{engine: e, metrics: m, summary: summary, prom: m.Handler()}, nil
}

// Serve routes a request and records its metrics.
func (h *Handler) Serve(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	route := h.route(ctx)
	h.metrics.ObserveRequest(route, ctx.Response.StatusCode(), time.Since(start))
}

func (h *Handler) route(ctx *fasthttp.RequestCtx) string {
	path := string(ctx.Path())
	switch path {
	case "/options":
		if h.requirePost(ctx) {
			h.options(ctx)
		}
	case "/validate":
		if h.requirePost(ctx) {
			h.validate(ctx)
		}
	case "/price":
		if h.requirePost(ctx) {
			h.price(ctx)
		}
	case "/plan":
		if h.requirePost(ctx) {
			h.plan(ctx)
		}
	case "/catalog":
		if h.requireGet(ctx) {
			ctx.SetContentType("application/json")
			ctx.SetBody(h.summary)
		}
	case "/healthz":
		if h.requireGet(ctx) {
			writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
		}
	case "/metrics":
		if h.requireGet(ctx) {
			h.prom(ctx)
		}
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
		return "other"
	}
	return path
}

func (h *Handler) requirePost(ctx *fasthttp.RequestCtx) bool {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return false
	}
	return true
}

func (h *Handler) requireGet(ctx *fasthttp.RequestCtx) bool {
	if !ctx.IsGet() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return false
	}
	return true
}

func decodeSelection(ctx *fasthttp.RequestCtx) (model.Selection, bool) {
	var req model.SelectionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return model.Selection{}, false
	}
	return req.Selection, true
}

func (h *Handler) options(ctx *fasthttp.RequestCtx) {
	sel, ok := decodeSelection(ctx)
	if !ok {
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, struct {
		AllowedOptions model.AllowedOptions `json:"allowed_options"`
	}{h.engine.AllowedOptions(sel)})
}

func (h *Handler) validate(ctx *fasthttp.RequestCtx) {
	sel, ok := decodeSelection(ctx)
	if !ok {
		return
	}
	res := h.engine.ValidateSelection(sel)
	h.metrics.ObserveValidation(res)
	writeJSON(ctx, fasthttp.StatusOK, res)
}

func (h *Handler) price(ctx *fasthttp.RequestCtx) {
	sel, ok := decodeSelection(ctx)
	if !ok {
		return
	}
	q, err := h.engine.Quote(sel)
	if errors.Is(err, model.ErrIncompleteSelection) {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("price %s: %v", sel.Key(), err)
		writeError(ctx, fasthttp.StatusInternalServerError, "Pricing failed")
		return
	}
	h.metrics.ObserveQuote(q)
	writeJSON(ctx, fasthttp.StatusOK, q)
}

func (h *Handler) plan(ctx *fasthttp.RequestCtx) {
	var req model.PlanRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Picks) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "At least one pick is required")
		return
	}

	resp := h.engine.Process(&req)
	if q := resp.PlanResult.Quote; q != nil {
		h.metrics.ObserveQuote(*q)
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Printf("encode %s response: %v", ctx.Path(), err)
		status = fasthttp.StatusInternalServerError
		body = []byte(`{"status":500,"message":"Encoding failed"}`)
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, model.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

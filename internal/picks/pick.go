// Package picks turns the wizard's raw picks into Selection fields. Each
// dimension has one handler; the engine replays picks through them in order.
package picks

import (
	json "github.com/goccy/go-json"

	"plan-engine/internal/model"
)

// Handler decodes a raw pick value and stores it on the selection. A JSON
// null clears the dimension.
type Handler interface {
	Dimension() string
	Apply(sel *model.Selection, value json.RawMessage) (replaced bool, err error)
	// Encode turns command-line text into the raw value Apply expects.
	Encode(text string) (json.RawMessage, error)
}

func isNull(value json.RawMessage) bool {
	return len(value) == 0 || string(value) == "null"
}

type stringHandler struct {
	dimension string
	field     func(sel *model.Selection) **string
}

func (h *stringHandler) Dimension() string { return h.dimension }

func (h *stringHandler) Apply(sel *model.Selection, value json.RawMessage) (bool, error) {
	f := h.field(sel)
	replaced := *f != nil
	if isNull(value) {
		*f = nil
		return replaced, nil
	}
	var v string
	if err := json.Unmarshal(value, &v); err != nil {
		return false, err
	}
	*f = &v
	return replaced, nil
}

func (h *stringHandler) Encode(text string) (json.RawMessage, error) {
	return json.Marshal(text)
}

type intHandler struct {
	dimension string
	field     func(sel *model.Selection) **int
}

func (h *intHandler) Dimension() string { return h.dimension }

func (h *intHandler) Apply(sel *model.Selection, value json.RawMessage) (bool, error) {
	f := h.field(sel)
	replaced := *f != nil
	if isNull(value) {
		*f = nil
		return replaced, nil
	}
	var v int
	if err := json.Unmarshal(value, &v); err != nil {
		return false, err
	}
	*f = &v
	return replaced, nil
}

func (h *intHandler) Encode(text string) (json.RawMessage, error) {
	var v int
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	return json.RawMessage(text), nil
}

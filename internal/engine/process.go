package engine

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"plan-engine/internal/model"
	"plan-engine/internal/picks"
)

const (
	codeValueReplaced = "VALUE_REPLACED"
	codeNoOptionsLeft = "NO_OPTIONS_LEFT"
)

// Process replays the picks of a wizard flow. Each pick is applied and the
// resulting selection validated; the first failing pick stops the replay and
// the end selection is the one left by the last accepted pick.
func (e *Engine) Process(req *model.PlanRequest) *model.PlanResponse {
	start := time.Now()

	var sel model.Selection
	current := e.AllowedOptions(sel)

	var allMessages []model.PlanMessage
	var processed []model.ProcessedPick
	outcome := model.OutcomeSuccess
	lastPickIndex := -1

	addMessage := func(level, code, text string) int {
		msg := model.PlanMessage{ID: len(allMessages), Level: level, Code: code, Message: text}
		allMessages = append(allMessages, msg)
		return msg.ID
	}

	for i, pick := range req.Picks {
		handler, ok := picks.Get(pick.Dimension)
		if !ok {
			id := addMessage(model.LevelCritical, model.CodeUnknownDimension,
				fmt.Sprintf("Unknown dimension: %s", pick.Dimension))
			processed = append(processed, model.ProcessedPick{Pick: pick, PlanMessageIndexes: []int{id}})
			outcome = model.OutcomeFailure
			break
		}

		next := sel
		replaced, err := handler.Apply(&next, pick.Value)
		if err != nil {
			id := addMessage(model.LevelCritical, model.CodeMalformedValue,
				fmt.Sprintf("Value for %s cannot be read: %v", pick.Dimension, err))
			processed = append(processed, model.ProcessedPick{Pick: pick, PlanMessageIndexes: []int{id}})
			outcome = model.OutcomeFailure
			break
		}

		var msgIndexes []int
		if replaced {
			msgIndexes = append(msgIndexes, addMessage(model.LevelWarning, codeValueReplaced,
				fmt.Sprintf("Pick %d replaces the earlier value for %s", i, pick.Dimension)))
		}

		if v := e.ValidateSelection(next); !v.Valid {
			msgIndexes = append(msgIndexes, addMessage(model.LevelCritical, string(v.ReasonCode), v.Message))
			processed = append(processed, model.ProcessedPick{Pick: pick, PlanMessageIndexes: msgIndexes})
			outcome = model.OutcomeFailure
			break
		}

		opts := e.AllowedOptions(next)
		for _, dim := range deadEnds(opts) {
			msgIndexes = append(msgIndexes, addMessage(model.LevelWarning, codeNoOptionsLeft,
				fmt.Sprintf("No %s remains selectable", dim)))
		}

		pp := model.ProcessedPick{Pick: pick, AllowedOptions: &opts, PlanMessageIndexes: msgIndexes}
		if n := narrowing(current, opts); !n.Empty() {
			pp.Eliminated = &n
		}
		processed = append(processed, pp)

		sel = next
		current = opts
		lastPickIndex = i
	}

	result := model.PlanResult{
		Messages:       allMessages,
		Picks:          processed,
		EndSelection:   model.SelectionEnvelope{PickIndex: lastPickIndex, Selection: sel},
		AllowedOptions: current,
	}
	if result.Messages == nil {
		result.Messages = []model.PlanMessage{}
	}
	if outcome == model.OutcomeSuccess && len(sel.Missing(model.PricingFields...)) == 0 {
		if q, err := e.Quote(sel); err == nil {
			result.Quote = &q
		}
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()

	return &model.PlanResponse{
		PlanMetadata: model.PlanMetadata{
			PlanID:          uuid.New().String(),
			RequestID:       req.RequestID,
			CatalogVersion:  e.catalog.Version(),
			PlanStartedAt:   now.Add(-elapsed).Format(time.RFC3339Nano),
			PlanCompletedAt: now.Format(time.RFC3339Nano),
			PlanDurationMs:  elapsed.Milliseconds(),
			PlanOutcome:     outcome,
		},
		PlanResult: result,
	}
}

// deadEnds names the unset dimensions left without any value.
func deadEnds(o model.AllowedOptions) []string {
	var out []string
	if o.PriceTables != nil && len(o.PriceTables) == 0 {
		out = append(out, "price table")
	}
	if o.ContractTypes != nil && len(o.ContractTypes) == 0 {
		out = append(out, "contract type")
	}
	if o.ContractCategories != nil && len(o.ContractCategories) == 0 {
		out = append(out, "contract category")
	}
	if o.Products != nil && len(o.Products) == 0 {
		out = append(out, "product")
	}
	if o.ReimbursementModes != nil && len(o.ReimbursementModes) == 0 {
		out = append(out, "reimbursement mode")
	}
	return out
}

// narrowing lists what disappeared between two steps, for dimensions unset in
// both.
func narrowing(prev, next model.AllowedOptions) model.Narrowing {
	return model.Narrowing{
		PriceTables:        removed(prev.PriceTables, next.PriceTables),
		ContractTypes:      removed(prev.ContractTypes, next.ContractTypes),
		ContractCategories: removed(prev.ContractCategories, next.ContractCategories),
		Products:           removed(prev.Products, next.Products),
		ReimbursementModes: removed(prev.ReimbursementModes, next.ReimbursementModes),
	}
}

func removed[T comparable](prev, next []T) []T {
	if prev == nil || next == nil {
		return nil
	}
	var out []T
	for _, v := range prev {
		if !slices.Contains(next, v) {
			out = append(out, v)
		}
	}
	return out
}

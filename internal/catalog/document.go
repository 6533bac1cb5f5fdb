package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue/cuecontext"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Document is the serialized form of a catalog. Lists are kept in the order
// callers should see them.
type Document struct {
	Version              string                `json:"version" yaml:"version"`
	PriceTables          []int                 `json:"price_tables" yaml:"price_tables"`
	AgeBrackets          []AgeBracket          `json:"age_brackets" yaml:"age_brackets"`
	CoparticipationModes []CoparticipationMode `json:"coparticipation_modes" yaml:"coparticipation_modes"`
	ReimbursementModes   []string              `json:"reimbursement_modes" yaml:"reimbursement_modes"`
	ContractCategories   []ContractCategory    `json:"contract_categories" yaml:"contract_categories"`
	ContractTypes        []ContractType        `json:"contract_types" yaml:"contract_types"`
	Products             []Product             `json:"products" yaml:"products"`
	Branches             []Branch              `json:"branches" yaml:"branches"`
	Prices               []PriceRow            `json:"prices" yaml:"prices"`
	Overrides            []PriceOverride       `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

// FormatFromPath picks a format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".cue":
		return FormatCUE
	default:
		return FormatJSON
	}
}

// ParseFormat accepts a format name or a media type.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	switch s {
	case "", "json", "application/json":
		return FormatJSON, nil
	case "yaml", "yml", "application/yaml", "application/x-yaml", "text/yaml":
		return FormatYAML, nil
	case "cue", "application/cue", "text/x-cue":
		return FormatCUE, nil
	}
	return "", fmt.Errorf("unknown catalog format %q", s)
}

// Decode parses a document without checking its integrity.
func Decode(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode json catalog: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
	case FormatCUE:
		v := cuecontext.New().CompileBytes(data)
		if v.Err() != nil {
			return nil, fmt.Errorf("compile cue catalog: %w", v.Err())
		}
		b, err := v.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("export cue catalog: %w", err)
		}
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("decode cue catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown catalog format %q", format)
	}
	return &doc, nil
}

// Parse decodes and builds a catalog in one step.
func Parse(data []byte, format Format) (*Catalog, error) {
	doc, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return Build(doc)
}

package compiler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/switchboard/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format is the serialization used by a toggle definition document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return FormatJSON
	}
	return FormatYAML
}

// Parser converts raw documents into toggle records.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a document holding a list of toggle definitions.
// The top level is either the list itself or an object with a "toggles" key.
// Empty content yields no records.
func (p *Parser) Parse(data []byte, format Format) ([]domain.Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.Record{}, nil
	}

	var raw any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse toggles json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse toggles yaml: %w", err)
		}
	}

	items, err := recordList(raw)
	if err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(items))
	for i, item := range items {
		rec, err := p.Decode(item)
		if err != nil {
			return nil, fmt.Errorf("toggle #%d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Decode converts one generic definition (as produced by a JSON or YAML
// decoder) into a record.
func (p *Parser) Decode(item any) (domain.Record, error) {
	var rec domain.Record

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			timeHook,
			nameListHook,
		),
		WeaklyTypedInput: true,
		Result:           &rec,
	})
	if err != nil {
		return rec, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(item); err != nil {
		return rec, fmt.Errorf("failed to decode toggle: %w", err)
	}
	if rec.Name == "" {
		return rec, domain.ErrMissingName
	}
	return rec, nil
}

func recordList(raw any) ([]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case map[string]any:
		list, ok := v["toggles"]
		if !ok {
			return nil, fmt.Errorf("expected a list of toggles or a 'toggles' key")
		}
		if list == nil {
			return nil, nil
		}
		items, ok := list.([]any)
		if !ok {
			return nil, fmt.Errorf("'toggles' must be a list, got %T", list)
		}
		return items, nil
	default:
		return nil, fmt.Errorf("expected a list of toggles, got %T", raw)
	}
}

// Package populate loads breach documents from a file and creates them one by one.
// A failing document is logged and skipped; the run never aborts on a single element.
package populate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"databreach-registry/internal/usecase/breach"
)

// Format selects the decoder for an input file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// ErrUnsupportedFormat is returned for file extensions other than .json, .yaml and .yml.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Creator is the part of breach.Service used by Run.
type Creator interface {
	Create(ctx context.Context, req breach.Request) (*breach.Document, error)
}

// Failure describes one skipped element.
type Failure struct {
	Index int
	Err   error
}

// Result summarizes a run.
type Result struct {
	Created  int
	Failures []Failure
}

// Failed returns the number of skipped elements.
func (r Result) Failed() int { return len(r.Failures) }

// FormatFromPath picks the format by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Element is one undecoded entry of the input array. Its shape is checked only when
// Run reaches it, so a malformed entry fails on its own.
type Element struct {
	raw  json.RawMessage
	node *yaml.Node
}

// Request decodes the element into a breach request.
func (e Element) Request() (breach.Request, error) {
	var req breach.Request
	switch {
	case e.node != nil:
		if err := e.node.Decode(&req); err != nil {
			return breach.Request{}, fmt.Errorf("decode element: %w", err)
		}
	default:
		if err := json.Unmarshal(e.raw, &req); err != nil {
			return breach.Request{}, fmt.Errorf("decode element: %w", err)
		}
	}
	return req, nil
}

// Decode reads a top-level array. Only the array itself must be well formed; the
// elements are decoded one by one in Run.
func Decode(r io.Reader, format Format) ([]Element, error) {
	var elems []Element
	switch format {
	case FormatJSON:
		var raws []json.RawMessage
		if err := json.NewDecoder(r).Decode(&raws); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		for _, raw := range raws {
			elems = append(elems, Element{raw: raw})
		}
	case FormatYAML:
		var nodes []yaml.Node
		if err := yaml.NewDecoder(r).Decode(&nodes); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		for i := range nodes {
			elems = append(elems, Element{node: &nodes[i]})
		}
	default:
		return nil, ErrUnsupportedFormat
	}
	return elems, nil
}

// Run decodes and creates every element in order. Errors are logged and collected; a
// canceled context stops the run early and the remaining elements are not attempted.
func Run(ctx context.Context, creator Creator, elems []Element, logger *slog.Logger) Result {
	var res Result
	for i, elem := range elems {
		if ctx.Err() != nil {
			logger.Warn("populate interrupted", slog.Int("remaining", len(elems)-i))
			break
		}

		req, err := elem.Request()
		if err == nil {
			var doc *breach.Document
			if doc, err = creator.Create(ctx, req); err == nil {
				logger.Debug("data breach registered",
					slog.Int("index", i),
					slog.Int64("breach_id", doc.ID))
				res.Created++
				continue
			}
		}

		logger.Error("not possible to register data breach",
			slog.Int("index", i),
			slog.String("entity", entityName(req)),
			slog.Any("error", err))
		res.Failures = append(res.Failures, Failure{Index: i, Err: err})
	}
	return res
}

func entityName(req breach.Request) string {
	if req.Entity == nil || req.Entity.Name == nil {
		return ""
	}
	return *req.Entity.Name
}

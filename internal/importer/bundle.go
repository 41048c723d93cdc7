// Package importer loads a JSON bundle of questions, cutoffs and attempts
// into the store.
package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/examlens/internal/attempt"
)

// Bundle is the import file format.
type Bundle struct {
	Questions []Question    `json:"questions"`
	Cutoffs   []Cutoff      `json:"cutoffs"`
	Sessions  []Session     `json:"sessions"`
	Attempts  []attempt.Raw `json:"attempts"`
}

// Question is a catalogue entry with an explicit id.
type Question struct {
	ID       int64  `json:"id"`
	Text     string `json:"text"`
	Subject  string `json:"subject"`
	Pattern  string `json:"pattern"`
	Year     int    `json:"year"`
	ExamName string `json:"exam_name"`
	Tags     string `json:"tags"`
}

// Cutoff is one published cutoff row.
type Cutoff struct {
	ExamName string  `json:"exam_name"`
	Year     int     `json:"year"`
	General  float64 `json:"general"`
	EWS      float64 `json:"ews"`
	OBC      float64 `json:"obc"`
	SC       float64 `json:"sc"`
	ST       float64 `json:"st"`
	Official *bool   `json:"is_official"`
}

// Session groups attempts taken in one sitting. The importer mints the
// session id, tagged by Year or Subject when set.
type Session struct {
	Year     int           `json:"year"`
	Subject  string        `json:"subject"`
	Attempts []attempt.Raw `json:"attempts"`
}

const bundleSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "questions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "text"],
        "properties": {
          "id": {"type": "integer", "minimum": 1},
          "text": {"type": "string"},
          "subject": {"type": "string"},
          "pattern": {"type": "string"},
          "year": {"type": "integer"},
          "exam_name": {"type": "string"},
          "tags": {"type": "string"}
        }
      }
    },
    "cutoffs": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["exam_name", "year", "general"],
        "properties": {
          "exam_name": {"type": "string", "minLength": 1},
          "year": {"type": "integer", "minimum": 1900},
          "general": {"type": "number"},
          "ews": {"type": "number"},
          "obc": {"type": "number"},
          "sc": {"type": "number"},
          "st": {"type": "number"},
          "is_official": {"type": "boolean"}
        }
      }
    },
    "sessions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["attempts"],
        "properties": {
          "year": {"type": "integer"},
          "subject": {"type": "string"},
          "attempts": {"type": "array", "items": {"type": "object"}}
        }
      }
    },
    "attempts": {"type": "array", "items": {"type": "object"}}
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func bundleValidator() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(bundleSchema))
		if err != nil {
			schemaErr = fmt.Errorf("parse bundle schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("bundle.json", doc); err != nil {
			schemaErr = fmt.Errorf("add bundle schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile("bundle.json")
	})
	return schema, schemaErr
}

// Decode reads and validates a bundle. Attempt entries are only checked for
// shape here; field-level repair happens during normalization.
func Decode(r io.Reader) (*Bundle, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}
	sch, err := bundleValidator()
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse bundle: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid bundle: %w", err)
	}

	var b Bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	return &b, nil
}

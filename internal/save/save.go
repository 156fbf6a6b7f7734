// Package save converts game state to and from the persisted blob
// {"game":..., "research":..., "_timestamp": epochMs}.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"AITycoon/internal/model"
)

var (
	// ErrInvalidSave is returned when a blob is not a well-formed save.
	ErrInvalidSave = errors.New("invalid save")
	// ErrNoSave is returned by Store.Load when nothing has been saved yet.
	ErrNoSave = errors.New("no save found")
)

const schemaURL = "aitycoon://save.schema.json"

const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["game", "research", "_timestamp"],
  "properties": {
    "_timestamp": {"type": "integer", "minimum": 1},
    "game": {
      "type": "object",
      "required": ["resources", "upgrades"],
      "properties": {
        "resources": {
          "type": "object",
          "required": ["money", "computePower", "dataQuality"],
          "properties": {
            "money": {"type": "number"},
            "computePower": {"type": "number", "minimum": 0},
            "dataQuality": {"type": "number", "minimum": 0},
            "reputation": {"type": "number", "minimum": 0}
          }
        },
        "models": {
          "type": ["array", "null"],
          "items": {
            "type": "object",
            "required": ["id", "type", "progress", "status"],
            "properties": {
              "progress": {"type": "number", "minimum": 0, "maximum": 100},
              "status": {"enum": ["training", "complete"]}
            }
          }
        },
        "upgrades": {
          "type": "object",
          "properties": {
            "gpus": {"type": "integer", "minimum": 0},
            "datasets": {"type": "integer", "minimum": 0},
            "researchers": {"type": "integer", "minimum": 0}
          }
        },
        "achievements": {"type": ["object", "null"]},
        "activeBoosts": {"type": "object"}
      }
    },
    "research": {
      "type": "object",
      "properties": {
        "researched": {"type": ["array", "null"], "items": {"type": "string"}},
        "currentResearch": {"type": ["string", "null"]},
        "researchProgress": {"type": "number", "minimum": 0, "maximum": 100}
      }
    }
  }
}`

var schema = jsonschema.MustCompileString(schemaURL, schemaJSON)

type blob struct {
	Game      model.Game          `json:"game"`
	Research  model.ResearchState `json:"research"`
	Timestamp int64               `json:"_timestamp"`
}

// Marshal encodes state stamped with at.
func Marshal(state *model.GameState, at time.Time) ([]byte, error) {
	b := blob{Game: state.Game, Research: state.Research, Timestamp: at.UnixMilli()}
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("marshal save: %w", err)
	}
	return data, nil
}

// Unmarshal decodes and validates a save blob. On error no state is returned.
func Unmarshal(data []byte) (*model.GameState, time.Time, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidSave, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidSave, err)
	}

	var b blob
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidSave, err)
	}
	state := &model.GameState{Game: b.Game, Research: b.Research}
	return state, time.UnixMilli(b.Timestamp), nil
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Symbol is one dream symbol extracted by the analyzer.
type Symbol struct {
	Name                 string `json:"name"`
	Meaning              string `json:"meaning"`
	Rarity               int    `json:"rarity"`
	Category             string `json:"category"`
	CulturalSignificance string `json:"culturalSignificance,omitempty"`
}

type Symbols []Symbol

func (s Symbols) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return marshalColumn(s)
}

func (s *Symbols) Scan(src any) error {
	return scanColumn(src, s)
}

// AgentAnalyses holds the free-text answer of each persona.
type AgentAnalyses struct {
	Symbolist      string `json:"symbolist"`
	PatternAnalyst string `json:"patternAnalyst"`
	TrendPredictor string `json:"trendPredictor"`
	MoodAnalyzer   string `json:"moodAnalyzer"`
	LucidityCoach  string `json:"lucidityCoach"`
}

func (a AgentAnalyses) Value() (driver.Value, error) {
	return marshalColumn(a)
}

func (a *AgentAnalyses) Scan(src any) error {
	return scanColumn(src, a)
}

// JSON is an opaque jsonb column.
type JSON json.RawMessage

func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	if !json.Valid(j) {
		return nil, fmt.Errorf("models: invalid json value")
	}
	return string(j), nil
}

func (j *JSON) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[:0], v...)
	case string:
		*j = JSON(v)
	default:
		return fmt.Errorf("models: cannot scan %T into JSON", src)
	}
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*j = nil
		return nil
	}
	*j = append((*j)[:0], b...)
	return nil
}

func marshalColumn(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func scanColumn(src any, dst any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("models: cannot scan %T into %T", src, dst)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dst)
}

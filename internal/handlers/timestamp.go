package handlers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/util"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000000",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// timestamp accepts RFC3339 as well as zone-less ISO times and plain dates,
// which are read in the configured location.
type timestamp struct {
	time.Time
}

func (ts *timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := string(bytes.Trim(b, `"`))
	if s == "" {
		return nil
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		ts.Time = t
		return nil
	}
	for _, layout := range timestampLayouts[1:] {
		if t, err := time.ParseInLocation(layout, s, util.Location()); err == nil {
			ts.Time = t
			return nil
		}
	}
	return fmt.Errorf("cannot parse timestamp %q", s)
}

// or returns the parsed time, or def when none was sent.
func (ts timestamp) or(def time.Time) time.Time {
	if ts.IsZero() {
		return def
	}
	return ts.Time
}

package ai

import (
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"
)

// stripCodeFence unwraps a ```json or ``` fenced block, if any, and trims the result.
func stripCodeFence(s string) string {
	if _, after, ok := strings.Cut(s, "```json"); ok {
		body, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(body)
	}
	if _, after, ok := strings.Cut(s, "```"); ok {
		body, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(s)
}

// parseObject requires text to be a JSON object once fences are removed.
func parseObject(text string) (gjson.Result, error) {
	cleaned := stripCodeFence(text)
	if !gjson.Valid(cleaned) {
		return gjson.Result{}, fmt.Errorf("%w: not valid json", ErrMalformedResponse)
	}
	obj := gjson.Parse(cleaned)
	if !obj.IsObject() {
		return gjson.Result{}, fmt.Errorf("%w: expected a json object", ErrMalformedResponse)
	}
	return obj, nil
}

// parseArray requires text to be a JSON array once fences are removed.
func parseArray(text string) (gjson.Result, error) {
	cleaned := stripCodeFence(text)
	if !gjson.Valid(cleaned) {
		return gjson.Result{}, fmt.Errorf("%w: not valid json", ErrMalformedResponse)
	}
	arr := gjson.Parse(cleaned)
	if !arr.IsArray() {
		return gjson.Result{}, fmt.Errorf("%w: expected a json array", ErrMalformedResponse)
	}
	return arr, nil
}

// clampScore rounds v and clamps it into [0,100].
func clampScore(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Max(0, math.Min(100, math.Round(v))))
}

// score reads a 0..100 score leniently; numeric strings count, anything else falls back to def.
func score(r gjson.Result, def int) int {
	switch r.Type {
	case gjson.Number:
		return clampScore(r.Float())
	case gjson.String:
		if gjson.Valid(strings.TrimSpace(r.Str)) {
			if n := gjson.Parse(strings.TrimSpace(r.Str)); n.Type == gjson.Number {
				return clampScore(n.Float())
			}
		}
	}
	return clampScore(float64(def))
}

// stringsOf returns the string elements of an array; missing or non-array values give an empty list.
func stringsOf(r gjson.Result) []string {
	out := []string{}
	if !r.IsArray() {
		return out
	}
	for _, v := range r.Array() {
		if s := strings.TrimSpace(v.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func stringOr(r gjson.Result, def string) string {
	if s := strings.TrimSpace(r.String()); s != "" && r.Type != gjson.JSON {
		return s
	}
	return def
}

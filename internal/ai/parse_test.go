package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestStripCodeFence(t *testing.T) {
	cases := map[string]string{
		`{"a":1}`:                           `{"a":1}`,
		"  {\"a\":1}\n":                     `{"a":1}`,
		"```json\n{\"a\":1}\n```":           `{"a":1}`,
		"prefix ```json {\"a\":1} ``` tail": `{"a":1}`,
		"```\n{\"a\":1}\n```":               `{"a":1}`,
		"```json\n{\"a\":1}":                `{"a":1}`,
	}
	for in, want := range cases {
		assert.Equal(t, want, stripCodeFence(in), "input %q", in)
	}
}

func TestScoreLenientRead(t *testing.T) {
	obj := gjson.Parse(`{"n": 42.4, "s": " 61 ", "bad": "high", "big": 1e9, "neg": -1, "arr": [1]}`)
	assert.Equal(t, 42, score(obj.Get("n"), 0))
	assert.Equal(t, 61, score(obj.Get("s"), 0))
	assert.Equal(t, 7, score(obj.Get("bad"), 7))
	assert.Equal(t, 100, score(obj.Get("big"), 0))
	assert.Equal(t, 0, score(obj.Get("neg"), 50))
	assert.Equal(t, 50, score(obj.Get("missing"), 50))
	assert.Equal(t, 3, score(obj.Get("arr"), 3))
}

func TestStringsOfSkipsBlanks(t *testing.T) {
	obj := gjson.Parse(`{"list": ["a", " ", "b"], "scalar": "x"}`)
	assert.Equal(t, []string{"a", "b"}, stringsOf(obj.Get("list")))
	assert.Equal(t, []string{}, stringsOf(obj.Get("scalar")))
	assert.Equal(t, []string{}, stringsOf(obj.Get("missing")))
}

func TestParseArrayAndObject(t *testing.T) {
	_, err := parseObject(`[1]`)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	_, err = parseArray(`{"a":1}`)
	assert.ErrorIs(t, err, ErrMalformedResponse)

	arr, err := parseArray("```json\n[\"x\"]\n```")
	assert.NoError(t, err)
	assert.Equal(t, []string{"x"}, stringsOf(arr))
}

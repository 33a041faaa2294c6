package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrect(t *testing.T) {
	defaults := map[string]string{"青晰": "清晰"}

	tests := []struct {
		name   string
		in     string
		layers []map[string]string
		want   string
	}{
		{"no layers", "青晰", nil, "青晰"},
		{"no matching key", "完全正常的句子", []map[string]string{defaults}, "完全正常的句子"},
		{"single replacement", "青晰度很高", []map[string]string{defaults}, "清晰度很高"},
		{"multiple occurrences", "青晰又青晰", []map[string]string{defaults}, "清晰又清晰"},
		{"empty input", "", []map[string]string{defaults}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Correct(tt.in, tt.layers...))
		})
	}
}

func TestCorrectLayerOrder(t *testing.T) {
	// The user layer runs after the default layer, so it can re-correct
	// output the default layer produced.
	defaults := map[string]string{"按装": "安装"}
	user := map[string]string{"安装": "安裝"}

	assert.Equal(t, "安裝", Correct("按装", defaults, user))
}

func TestCorrectDeterministic(t *testing.T) {
	layer := map[string]string{
		"ab":  "X",
		"abc": "Y",
		"b":   "Z",
	}
	first := Correct("abcab", layer)
	for range 50 {
		assert.Equal(t, first, Correct("abcab", layer))
	}
	// Keys apply in lexicographic order: "ab" first, then "abc" (no longer
	// present), then "b".
	assert.Equal(t, "XcX", first)
}

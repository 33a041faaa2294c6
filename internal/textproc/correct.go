package textproc

import (
	"sort"
	"strings"
)

// Correct applies literal substring replacements from each layer in turn.
// Layers are applied in argument order, so a later (user) layer can re-correct
// text a preceding (default) layer already touched. Within a layer entries are
// applied in lexicographic key order, which keeps repeated calls with the same
// layers deterministic.
//
// Replacement is a single pass per entry with no priority ranking: when one
// key is a substring of another, or a replacement's output matches a later
// key, entries rewrite whatever they encounter in key order.
func Correct(text string, layers ...map[string]string) string {
	if text == "" {
		return text
	}
	for _, layer := range layers {
		if len(layer) == 0 {
			continue
		}
		for _, key := range sortedKeys(layer) {
			text = strings.ReplaceAll(text, key, layer[key])
		}
	}
	return text
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package telemetry

import (
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

// Namespace prefixes every span attribute agegate emits.
const Namespace = "agegate."

const (
	maxStringLen = 512
	maxSliceLen  = 32
)

// Name parts that may carry viewer or creator free text, or credentials.
var denyParts = map[string]bool{
	"transcript":    true,
	"comment":       true,
	"comments":      true,
	"sentence":      true,
	"sentences":     true,
	"text":          true,
	"title":         true,
	"topic":         true,
	"topics":        true,
	"content":       true,
	"preview":       true,
	"authorization": true,
	"key":           true,
	"token":         true,
}

// SafeAttributes converts values to OTEL attributes, sorted by key. Keys
// outside the agegate namespace, keys naming free text, oversized strings and
// unsupported types are dropped.
func SafeAttributes(values map[string]interface{}) []attribute.KeyValue {
	if len(values) == 0 {
		return nil
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		if allowedKey(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var attrs []attribute.KeyValue
	for _, k := range keys {
		if kv, ok := safeValue(k, values[k]); ok {
			attrs = append(attrs, kv)
		}
	}
	return attrs
}

func allowedKey(k string) bool {
	name, ok := strings.CutPrefix(strings.ToLower(k), Namespace)
	if !ok || name == "" {
		return false
	}
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '.' || r == '_' || r == '-' })
	for _, p := range parts {
		if denyParts[p] {
			return false
		}
	}
	return true
}

func safeValue(k string, v interface{}) (attribute.KeyValue, bool) {
	switch val := v.(type) {
	case string:
		if len(val) > maxStringLen {
			return attribute.KeyValue{}, false
		}
		return attribute.String(k, val), true
	case bool:
		return attribute.Bool(k, val), true
	case int:
		return attribute.Int(k, val), true
	case int64:
		return attribute.Int64(k, val), true
	case float64:
		return attribute.Float64(k, val), true
	case []string:
		if len(val) > maxSliceLen {
			val = val[:maxSliceLen]
		}
		return attribute.StringSlice(k, val), true
	}
	return attribute.KeyValue{}, false
}

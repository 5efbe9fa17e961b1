package format

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// EncodeTOON renders a value as TOON text. The value is normalized through
// its JSON form first, so anything json.Marshal accepts is encodable.
//
// Objects become indented key/value blocks. Arrays of uniform flat objects
// collapse into a tabular block with a shared field header; other arrays
// fall back to one element per line. Scalars are rendered bare unless they
// need quoting to stay unambiguous.
func EncodeTOON(v interface{}) (string, error) {
	normalized, err := normalize(v)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	switch val := normalized.(type) {
	case map[string]interface{}:
		encodeObjectBody(&b, val, 0)
	case []interface{}:
		encodeArray(&b, "", val, 0)
	default:
		b.WriteString(encodeScalar(val))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// normalize round-trips through JSON so struct values and typed maps come
// out as the generic map/slice/scalar shapes the encoder walks.
func normalize(v interface{}) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize value: %w", err)
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to normalize value: %w", err)
	}
	return out, nil
}

func encodeObjectBody(b *strings.Builder, obj map[string]interface{}, indent int) {
	for _, key := range sortedKeys(obj) {
		encodeField(b, key, obj[key], indent)
	}
}

func encodeField(b *strings.Builder, key string, value interface{}, indent int) {
	switch val := value.(type) {
	case map[string]interface{}:
		if len(val) == 0 {
			writeIndent(b, indent)
			b.WriteString(encodeKey(key))
			b.WriteString(": {}\n")
			return
		}
		writeIndent(b, indent)
		b.WriteString(encodeKey(key))
		b.WriteString(":\n")
		encodeObjectBody(b, val, indent+1)
	case []interface{}:
		encodeArray(b, key, val, indent)
	default:
		writeIndent(b, indent)
		b.WriteString(encodeKey(key))
		b.WriteString(": ")
		b.WriteString(encodeScalar(val))
		b.WriteByte('\n')
	}
}

func encodeArray(b *strings.Builder, key string, arr []interface{}, indent int) {
	header := ""
	if key != "" {
		header = encodeKey(key)
	}

	if len(arr) == 0 {
		writeIndent(b, indent)
		fmt.Fprintf(b, "%s[0]:\n", header)
		return
	}

	if allScalars(arr) {
		writeIndent(b, indent)
		fmt.Fprintf(b, "%s[%d]: ", header, len(arr))
		for i, item := range arr {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(encodeScalar(item))
		}
		b.WriteByte('\n')
		return
	}

	if fields, ok := tabularFields(arr); ok {
		writeIndent(b, indent)
		fmt.Fprintf(b, "%s[%d]{%s}:\n", header, len(arr), strings.Join(encodeKeys(fields), ","))
		for _, item := range arr {
			obj := item.(map[string]interface{})
			writeIndent(b, indent+1)
			for i, field := range fields {
				if i > 0 {
					b.WriteByte(',')
				}
				b.WriteString(encodeScalar(obj[field]))
			}
			b.WriteByte('\n')
		}
		return
	}

	writeIndent(b, indent)
	fmt.Fprintf(b, "%s[%d]:\n", header, len(arr))
	for _, item := range arr {
		switch val := item.(type) {
		case map[string]interface{}:
			writeIndent(b, indent+1)
			b.WriteString("-\n")
			encodeObjectBody(b, val, indent+2)
		case []interface{}:
			encodeArray(b, "-", val, indent+1)
		default:
			writeIndent(b, indent+1)
			b.WriteString("- ")
			b.WriteString(encodeScalar(val))
			b.WriteByte('\n')
		}
	}
}

// tabularFields reports whether every element is a flat object sharing the
// same key set, returning the shared fields in sorted order.
func tabularFields(arr []interface{}) ([]string, bool) {
	var fields []string
	for i, item := range arr {
		obj, ok := item.(map[string]interface{})
		if !ok || len(obj) == 0 {
			return nil, false
		}
		for _, v := range obj {
			switch v.(type) {
			case map[string]interface{}, []interface{}:
				return nil, false
			}
		}
		keys := sortedKeys(obj)
		if i == 0 {
			fields = keys
			continue
		}
		if len(keys) != len(fields) {
			return nil, false
		}
		for j := range keys {
			if keys[j] != fields[j] {
				return nil, false
			}
		}
	}
	return fields, true
}

func allScalars(arr []interface{}) bool {
	for _, item := range arr {
		switch item.(type) {
		case map[string]interface{}, []interface{}:
			return false
		}
	}
	return true
}

func encodeScalar(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(val)
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return encodeString(val)
	default:
		return encodeString(fmt.Sprint(val))
	}
}

func encodeString(s string) string {
	if needsQuoting(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	switch s {
	case "true", "false", "null":
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	if s != strings.TrimSpace(s) {
		return true
	}
	return strings.ContainsAny(s, ",:\"\n\r\t[]{}")
}

func encodeKey(key string) string {
	return encodeString(key)
}

func encodeKeys(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = encodeKey(k)
	}
	return out
}

func sortedKeys(obj map[string]interface{}) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeIndent(b *strings.Builder, indent int) {
	for i := 0; i < indent; i++ {
		b.WriteString("  ")
	}
}

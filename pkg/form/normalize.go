package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Result maps every schema field to a string value. It marshals to a JSON
// object whose keys follow schema order.
type Result struct {
	keys   []string
	values map[string]string
}

func NewResult(keys []string) *Result {
	r := &Result{
		keys:   append([]string(nil), keys...),
		values: make(map[string]string, len(keys)),
	}

	for _, k := range keys {
		r.values[k] = ""
	}

	return r
}

func (r *Result) Keys() []string {
	return append([]string(nil), r.keys...)
}

func (r *Result) Get(key string) (string, bool) {
	val, ok := r.values[key]
	return val, ok
}

// Map returns a copy of the values.
func (r *Result) Map() map[string]string {
	result := make(map[string]string, len(r.values))

	for k, v := range r.values {
		result[k] = v
	}

	return result
}

func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := marshalString(k)

		if err != nil {
			return nil, err
		}

		val, err := marshalString(r.values[k])

		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (r *Result) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	if _, err := dec.Token(); err != nil {
		return err
	}

	r.keys = nil
	r.values = make(map[string]string)

	for dec.More() {
		t, err := dec.Token()

		if err != nil {
			return err
		}

		key, _ := t.(string)

		var val string

		if err := dec.Decode(&val); err != nil {
			return err
		}

		if _, ok := r.values[key]; !ok {
			r.keys = append(r.keys, key)
		}

		r.values[key] = val
	}

	_, err := dec.Token()
	return err
}

// Normalize coerces a parsed model reply into a Result holding exactly the
// schema's fields. It never fails.
func Normalize(schema Schema, data map[string]any) *Result {
	result := NewResult(schema.Keys())

	for _, key := range result.keys {
		val, ok := data[key]

		if !ok {
			continue
		}

		result.values[key] = strings.TrimSpace(stringify(val))
	}

	return result
}

func stringify(val any) string {
	switch v := val.(type) {
	case nil:
		return ""

	case string:
		return v

	case json.Number:
		return v.String()

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)

	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v)
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(val); err != nil {
		return fmt.Sprint(val)
	}

	return strings.TrimSuffix(buf.String(), "\n")
}

func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(s); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

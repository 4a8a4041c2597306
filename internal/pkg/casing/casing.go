// Package casing converts field names between the snake_case used by the
// database and wire and the camelCase used by dashboard clients.
package casing

import (
	"bytes"
	"encoding/json"
	"regexp"

	"github.com/iancoleman/strcase"
)

// Map keys such as day numbers ("1") or commission ids are data, not field names.
var identifierRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

func isIdentifier(key string) bool {
	return identifierRegex.MatchString(key)
}

// ToCamel converts snake_case to lower camelCase.
func ToCamel(s string) string {
	if !isIdentifier(s) {
		return s
	}
	return strcase.ToLowerCamel(s)
}

// ToSnake converts camelCase to snake_case. Snake input is returned unchanged.
func ToSnake(s string) string {
	if !isIdentifier(s) {
		return s
	}
	return strcase.ToSnake(s)
}

// KeysToCamel rewrites every object key in v, recursively.
func KeysToCamel(v any) any {
	return convertKeys(v, ToCamel)
}

// KeysToSnake rewrites every object key in v, recursively.
func KeysToSnake(v any) any {
	return convertKeys(v, ToSnake)
}

func convertKeys(v any, fn func(string) string) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fn(k)] = convertKeys(val, fn)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = convertKeys(val, fn)
		}
		return out
	}
	return v
}

// JSONToCamel decodes raw, converts its keys and re-encodes it. Null and
// empty input are returned as null.
func JSONToCamel(raw []byte) (json.RawMessage, error) {
	return convertJSON(raw, ToCamel)
}

// JSONToSnake is the inverse of JSONToCamel.
func JSONToSnake(raw []byte) (json.RawMessage, error) {
	return convertJSON(raw, ToSnake)
}

func convertJSON(raw []byte, fn func(string) string) (json.RawMessage, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return json.RawMessage("null"), nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return json.Marshal(convertKeys(v, fn))
}

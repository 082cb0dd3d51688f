package argtree

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/goccy/go-yaml"
)

// ToMap converts the tree to nested maps keyed by field name.
//
// Sum types with fields map their keyword to a single-entry map from the
// variant name to its fields; unit variants map to the variant name. Bare
// fields map to nil. With resolve set, every field is present and bare or
// absent fields hold their defaults.
func (t *Tree) ToMap(resolve bool) map[string]any {
	m, _ := toNative(exportAll(t.bindings(), resolve)).(map[string]any)

	return m
}

// MarshalJSON implements json.Marshaler using the unresolved map form.
// Non-finite floats are encoded as strings.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonSafe(t.ToMap(false)))
}

// FormatJSON writes the tree as JSON to the writer.
func (t *Tree) FormatJSON(
	_ context.Context,
	w io.Writer,
	indent int,
	resolve bool,
) error {
	var (
		jsonData []byte
		err      error
	)

	v := jsonSafe(t.ToMap(resolve))

	if indent > 0 {
		jsonData, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(v)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the tree as YAML to the writer, keeping fields in
// declaration order. A positive indent selects block style, otherwise flow
// style is used.
func (t *Tree) FormatYAML(
	ctx context.Context,
	w io.Writer,
	indent int,
	resolve bool,
) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(
		ctx,
		exportAll(t.bindings(), resolve),
		opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// toNative converts ordered export values into plain maps.
func toNative(v any) any {
	switch v := v.(type) {
	case yaml.MapSlice:
		m := make(map[string]any, len(v))
		for _, item := range v {
			key, _ := item.Key.(string)
			m[key] = toNative(item.Value)
		}

		return m

	default:
		return v
	}
}

func jsonSafe(v any) any {
	switch v := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(v))
		for key, val := range v {
			m[key] = jsonSafe(val)
		}

		return m

	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return formatFloat(v)
		}

		return v

	default:
		return v
	}
}

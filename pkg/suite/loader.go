package suite

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON []byte

var schema = gojsonschema.NewBytesLoader(schemaJSON)

// LoadError reports a suite file that could not be read, parsed
// or validated.
type LoadError struct {
	Source string
	// Problems lists schema violations, one per entry.
	Problems []string
	Err      error
}

func (e *LoadError) Error() string {
	if len(e.Problems) > 0 {
		return fmt.Sprintf("%s: invalid suite: %s",
			e.Source, strings.Join(e.Problems, "; "))
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is, or wraps, a LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// Load reads and validates the suite file at path. Files ending
// in .json are decoded as JSON and everything else as YAML.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	format := FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}
	return Parse(data, format, path)
}

// LoadAll loads every path in order and stops at the first
// failure.
func LoadAll(paths ...string) ([]*Suite, error) {
	suites := make([]*Suite, 0, len(paths))
	for _, path := range paths {
		s, err := Load(path)
		if err != nil {
			return nil, err
		}
		suites = append(suites, s)
	}
	return suites, nil
}

// Format selects the decoder Parse uses.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// Parse decodes and validates a suite document. source names the
// document in errors.
func Parse(data []byte, format Format, source string) (*Suite, error) {
	var doc any
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&doc)
	default:
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("decode: %w", err)}
	}
	doc = normalize(doc)

	if err := validate(doc); err != nil {
		if le, ok := err.(*LoadError); ok {
			le.Source = source
			return nil, le
		}
		return nil, &LoadError{Source: source, Err: err}
	}

	s, err := build(doc.(map[string]any))
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	s.Source = source
	return s, nil
}

func validate(doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode for validation: %w", err)
	}
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return &LoadError{Problems: problems}
}

// normalize converts decoded values into shapes both encoding/json
// and the builder accept: string-keyed maps and plain numbers.
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = normalize(e)
		}
		return x
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []any:
		for i, e := range x {
			x[i] = normalize(e)
		}
		return x
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i)
		}
		f, _ := x.Float64()
		return f
	}
	return v
}

func build(doc map[string]any) (*Suite, error) {
	s := &Suite{}
	s.Version, _ = doc["version"].(string)
	s.Name, _ = doc["name"].(string)

	checks, _ := doc["checks"].([]any)
	for i, raw := range checks {
		m, _ := raw.(map[string]any)
		c := Check{Subject: m["subject"]}
		c.Name, _ = m["name"].(string)
		c.Not, _ = m["not"].(bool)
		c.Any, _ = m["any"].(bool)

		steps, _ := m["assert"].([]any)
		for j, rawStep := range steps {
			step, err := buildStep(rawStep)
			if err != nil {
				return nil, fmt.Errorf("checks[%d].assert[%d]: %w", i, j, err)
			}
			c.Steps = append(c.Steps, step)
		}
		s.Checks = append(s.Checks, c)
	}
	return s, nil
}

// buildStep accepts "name", "name:value", {name: value} and
// {name: [args...]}.
func buildStep(raw any) (Step, error) {
	switch x := raw.(type) {
	case string:
		step := ParseStep(x)
		if step.Name == "" {
			return Step{}, fmt.Errorf("empty step name in %q", x)
		}
		return step, nil
	case map[string]any:
		if len(x) != 1 {
			keys := make([]string, 0, len(x))
			for k := range x {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			return Step{}, fmt.Errorf("step must have exactly one name, got %v", keys)
		}
		for name, value := range x {
			step := Step{Name: name}
			switch args := value.(type) {
			case nil:
			case []any:
				step.Args = args
			default:
				step.Args = []any{args}
			}
			return step, nil
		}
	}
	return Step{}, fmt.Errorf("unsupported step %v", raw)
}

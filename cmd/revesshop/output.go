package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jmespath/go-jmespath"
	"gopkg.in/yaml.v3"
)

// print renders v (a json.RawMessage or any JSON-marshalable value) after
// applying the --query expression.
func (a *app) print(w io.Writer, v any) error {
	raw, ok := v.(json.RawMessage)
	if !ok {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		raw = b
	}
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("invalid JSON response: %w", err)
	}
	if a.query != "" {
		res, err := jmespath.Search(a.query, data)
		if err != nil {
			return fmt.Errorf("invalid JMESPath expression '%s': %w", a.query, err)
		}
		data = res
	}
	return render(w, a.output, data)
}

func render(w io.Writer, format string, data any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err := w.Write(buf.Bytes())
		return err
	}
}

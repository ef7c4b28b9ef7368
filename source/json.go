// Package source turns serialized inputs into the already-parsed value
// model the strukt engine consumes: map[string]any objects, []any
// sequences and scalars with json.Number preserving numeric fidelity.
package source

import (
	"bytes"
	"errors"
	"io"

	j "github.com/goccy/go-json"
)

// ErrTrailingData indicates input continued after the first JSON value.
var ErrTrailingData = errors.New("source: trailing data after JSON value")

// JSONReader decodes a single JSON value from r. Numbers are preserved as
// json.Number.
func JSONReader(r io.Reader) (any, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			return nil, ErrTrailingData
		}
		return nil, err
	}
	return v, nil
}

// JSONBytes decodes a single JSON value from b.
func JSONBytes(b []byte) (any, error) {
	return JSONReader(bytes.NewReader(b))
}

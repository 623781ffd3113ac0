package display

import (
	"bytes"
	"io"

	"github.com/teranos/autogen/errors"
	"gopkg.in/yaml.v3"
)

// Supported output formats for structured command output.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// MarshalYAML marshals v as YAML with two-space indentation.
func MarshalYAML(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Output writes v to w in the requested format.
func Output(w io.Writer, v interface{}, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON, "":
		data, err = MarshalJSON(v)
	case FormatYAML:
		data, err = MarshalYAML(v)
	default:
		return errors.Newf("unknown output format %q (supported: json, yaml)", format)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s", format)
	}
	_, err = w.Write(data)
	return err
}

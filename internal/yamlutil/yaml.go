// Package yamlutil holds the YAML codec used for config files.
// Decoding is strict and size-limited; encoding uses block style with
// indented sequences so printed configs read like hand-written ones.
package yamlutil

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps how many bytes are decoded (1MB).
var MaxInputSize = 1 << 20

// Sentinel errors for decoding.
var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// DecodeStrict reads at most MaxInputSize bytes from r and decodes them
// into v with UnmarshalStrict. Larger inputs fail with ErrInputTooLarge
// without being read in full.
func DecodeStrict(r io.Reader, v any) error {
	data, err := io.ReadAll(io.LimitReader(r, int64(MaxInputSize)+1))
	if err != nil {
		return fmt.Errorf("yamlutil: reading input: %w", err)
	}
	return UnmarshalStrict(data, v)
}

// UnmarshalStrict decodes data into v, rejecting keys v has no field for.
// Errors quote the offending source line.
func UnmarshalStrict(data []byte, v any) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}

	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %s", yaml.FormatError(err, false, true))
	}
	return nil
}

// Marshal encodes v as block-style YAML.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}

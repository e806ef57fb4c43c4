// Package export serializes a snapshot of the PRD store.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jha-shubham/PRDs/internal/domain/prd"
	"github.com/natefinch/atomic"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format names an export encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// Document is the exported snapshot.
type Document struct {
	ExportedAt time.Time       `json:"exported_at" yaml:"exported_at" msgpack:"exported_at"`
	PRDs       []prd.PRD       `json:"prds" yaml:"prds" msgpack:"prds"`
	Statistics *prd.Statistics `json:"statistics,omitempty" yaml:"statistics,omitempty" msgpack:"statistics,omitempty"`
}

// ParseFormat resolves a format name. "yml" and "mp" are accepted aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Encode writes doc to w in the given format.
func Encode(w io.Writer, format Format, doc Document) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteFile encodes doc and atomically replaces the file at path.
func WriteFile(path string, format Format, doc Document) error {
	var buf bytes.Buffer
	if err := Encode(&buf, format, doc); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	return nil
}

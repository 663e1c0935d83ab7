package source

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/crimson-sun/trailshift/internal/model"
)

var gzipMagic = []byte{0x1f, 0x8b}

// Decode flattens one JSON document into raw events. Accepted shapes are a
// {"Records": [...]} wrapper, a bare array, or a single event object.
// Gzip-compressed content is detected and inflated.
func Decode(data []byte) ([]model.RawEvent, error) {
	if bytes.HasPrefix(data, gzipMagic) {
		inflated, err := gunzip(data)
		if err != nil {
			return nil, err
		}
		data = inflated
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty document")
	}

	switch data[0] {
	case '[':
		var events []model.RawEvent
		if err := json.Unmarshal(data, &events); err != nil {
			return nil, fmt.Errorf("decode event list: %w", err)
		}
		return events, nil
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		records, ok := fields["Records"]
		if !ok {
			return []model.RawEvent{model.RawEvent(data)}, nil
		}
		var events []model.RawEvent
		if err := json.Unmarshal(records, &events); err != nil {
			return nil, fmt.Errorf("decode Records: %w", err)
		}
		return events, nil
	default:
		if !json.Valid(data) {
			return nil, errors.New("invalid JSON document")
		}
		return nil, fmt.Errorf("unsupported document starting with %q", data[0])
	}
}

func gunzip(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	return out, nil
}

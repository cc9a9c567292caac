package store

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/jward/gdlint/internal/diag"
)

// Labels are stored as one msgpack blob of wire labels per diagnostic; they
// are only ever read back whole.

func encodeLabels(labels []diag.Label) ([]byte, error) {
	b, err := msgpack.Marshal(diag.WireLabels(labels))
	if err != nil {
		return nil, fmt.Errorf("encode labels: %w", err)
	}
	return b, nil
}

func decodeLabels(b []byte) ([]diag.Label, error) {
	var wire []diag.WireLabel
	if err := msgpack.Unmarshal(b, &wire); err != nil {
		return nil, fmt.Errorf("decode labels: %w", err)
	}
	return diag.LabelsFromWire(wire), nil
}

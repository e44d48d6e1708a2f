package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// NodeID identifies a pipeline node. Editors send ids either as JSON strings
// or JSON numbers; both are accepted and kept apart, so "1" and 1 are
// different nodes. The zero value is an unset id.
type NodeID struct {
	raw string
}

// StringID returns the NodeID for a string identifier.
func StringID(s string) NodeID {
	b, _ := json.Marshal(s)
	return NodeID{raw: string(b)}
}

// IntID returns the NodeID for an integer identifier.
func IntID(n int64) NodeID {
	return NodeID{raw: strconv.FormatInt(n, 10)}
}

// NumberID returns the NodeID for a numeric identifier. Integral values are
// written as plain integers, so NumberID(2) == IntID(2).
func NumberID(n float64) NodeID {
	return NodeID{raw: formatFloat(n)}
}

func formatFloat(n float64) string {
	if math.IsInf(n, 0) || math.IsNaN(n) || n != math.Trunc(n) {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	if n == 0 {
		return "0"
	}
	return new(big.Float).SetFloat64(n).Text('f', 0)
}

func (id NodeID) IsSet() bool {
	return id.raw != ""
}

func (id NodeID) IsNumber() bool {
	return id.raw != "" && id.raw[0] != '"'
}

// String returns the identifier without JSON quoting.
func (id NodeID) String() string {
	if id.IsNumber() || id.raw == "" {
		return id.raw
	}
	var s string
	_ = json.Unmarshal([]byte(id.raw), &s)
	return s
}

func (id NodeID) MarshalJSON() ([]byte, error) {
	if id.raw == "" {
		return []byte("null"), nil
	}
	return []byte(id.raw), nil
}

func (id *NodeID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		// integer literals keep every digit; only fractional or exponent
		// forms go through float64
		if !bytes.ContainsAny(data, ".eE") {
			n, ok := new(big.Int).SetString(string(data), 10)
			if !ok {
				return fmt.Errorf("invalid numeric node id %s", data)
			}
			*id = NodeID{raw: n.String()}
			return nil
		}
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("invalid numeric node id %s: %w", data, err)
		}
		*id = NumberID(n)
	default:
		return fmt.Errorf("node id must be a string or a number, got %s", data)
	}

	return nil
}

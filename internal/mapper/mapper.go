// Package mapper translates between the backend wire schema and the domain
// model. Every function is pure.
package mapper

import (
	"encoding/json"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// ErrNotSerializable is returned when an outgoing payload does not survive a
// JSON round trip.
var ErrNotSerializable = errors.New("payload is not serializable")

// Serializable marshals v and parses the result back, returning the encoded
// form. Payloads failing either step must not be sent.
func Serializable(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(ErrNotSerializable, err.Error())
	}
	var probe any
	if err := json.Unmarshal(b, &probe); err != nil {
		return nil, errors.Wrap(ErrNotSerializable, err.Error())
	}
	return b, nil
}

func gate[T any](v T) (T, error) {
	if _, err := Serializable(v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// clamp returns d limited to zero from below.
func clamp(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// numericID returns id as a positive integer when it is one.
func numericID(id string) (int64, bool) {
	n, err := cast.ToInt64E(strings.TrimSpace(id))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

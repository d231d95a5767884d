package schemac

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/go-json-experiment/json"
)

// Rat wraps big.Rat so exact decimal comparisons (maximum/minimum/
// multipleOf/...) survive JSON round-tripping without the precision loss
// a plain float64 would introduce.
type Rat struct {
	*big.Rat
}

// UnmarshalJSON implements json.Unmarshaler for Rat.
func (r *Rat) UnmarshalJSON(data []byte) error {
	var tmp any
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	converted, err := convertToBigRat(tmp)
	if err != nil {
		return err
	}
	r.Rat = converted
	return nil
}

// MarshalJSON implements json.Marshaler for Rat.
func (r *Rat) MarshalJSON() ([]byte, error) {
	formatted := FormatRat(r)
	if strings.Contains(formatted, "/") {
		return json.Marshal(formatted)
	}
	return []byte(formatted), nil
}

// convertToBigRat converts a decoded numeric scalar (the float64 the
// compiler's loader stack produces, any other Go integer or float type, or
// a numeric string) into a big.Rat.
func convertToBigRat(data any) (*big.Rat, error) {
	var str string
	switch v := data.(type) {
	case float64, float32, int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		str = fmt.Sprint(v)
	case string:
		str = v
	default:
		return nil, bugf(nil, "value of type %T cannot be used as a numeric bound", data)
	}

	rat := new(big.Rat)
	if _, ok := rat.SetString(str); !ok {
		return nil, bugf(nil, "cannot parse %q as a rational number", str)
	}
	return rat, nil
}

// NewRat builds a Rat from any decoded JSON scalar, returning nil if the
// value cannot be interpreted as a number. A JSON string is never read as a
// number, even when its text is numeric.
func NewRat(value any) *Rat {
	if _, isString := value.(string); isString {
		return nil
	}
	converted, err := convertToBigRat(value)
	if err != nil {
		return nil
	}
	return &Rat{converted}
}

// FormatRat renders a Rat as the shortest decimal string that round-trips,
// falling back to plain integer form when there is no fractional part.
func FormatRat(r *Rat) string {
	if r == nil {
		return "null"
	}
	if r.IsInt() {
		return r.Num().String()
	}

	dec := r.FloatString(10)
	trimmed := strings.TrimRight(dec, "0")
	trimmed = strings.TrimRight(trimmed, ".")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

package num

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// Decimal is an exact decimal number. The zero value is 0.
type Decimal struct {
	decimal.Decimal
}

// Zero returns the decimal 0.
func Zero() Decimal {
	return Decimal{}
}

// One returns the decimal 1.
func One() Decimal {
	return Decimal{decimal.NewFromInt(1)}
}

// FromInt returns the decimal for an integer value.
func FromInt(v int64) Decimal {
	return Decimal{decimal.NewFromInt(v)}
}

// FromString parses a decimal from its literal string form.
func FromString(s string) (Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return Decimal{d}, nil
}

// FromAny coerces loosely typed document values into a Decimal.
// JSON numbers keep their literal form. Floats convert through their
// shortest decimal representation.
func FromAny(v any) (Decimal, error) {
	switch n := v.(type) {
	case Decimal:
		return n, nil
	case decimal.Decimal:
		return Decimal{n}, nil
	case json.Number:
		return FromString(n.String())
	case string:
		return FromString(n)
	case int:
		return FromInt(int64(n)), nil
	case int32:
		return FromInt(int64(n)), nil
	case int64:
		return FromInt(n), nil
	case float64:
		return Decimal{decimal.NewFromFloat(n)}, nil
	case nil:
		return Decimal{}, fmt.Errorf("missing numeric value")
	default:
		return Decimal{}, fmt.Errorf("value %v of type %T is not a number", v, v)
	}
}

// Equal reports whether two decimals represent the same number.
func (d Decimal) Equal(o Decimal) bool {
	return d.Decimal.Equal(o.Decimal)
}

// MarshalDynamoDBAttributeValue encodes the decimal as a number attribute
// carrying the literal decimal string.
func (d Decimal) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberN{Value: d.String()}, nil
}

// UnmarshalDynamoDBAttributeValue decodes a number attribute.
func (d *Decimal) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	n, ok := av.(*types.AttributeValueMemberN)
	if !ok {
		return fmt.Errorf("cannot decode attribute of type %T into a decimal", av)
	}
	parsed, err := decimal.NewFromString(n.Value)
	if err != nil {
		return fmt.Errorf("invalid number attribute %q: %w", n.Value, err)
	}
	d.Decimal = parsed
	return nil
}

// MarshalJSON renders the decimal as a bare number literal, matching the
// authored document form.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalJSON accepts bare number literals and quoted decimal strings.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		return nil
	}
	parsed, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	d.Decimal = parsed
	return nil
}

package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Centavos is a monetary amount in integer minor units (hundredths).
// Amounts are always stored and compared in centavos so that balance
// checks never go through floating point.
type Centavos int64

// ParseCentavos parses a decimal string into centavos. Both "1234.56" and
// the Brazilian "1234,56" comma form are accepted. Amounts with more than
// two decimal places are rejected.
func ParseCentavos(s string) (Centavos, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return 0, fmt.Errorf("valor monetário inválido: %q", s)
	}
	cents := d.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return 0, fmt.Errorf("valor monetário com mais de duas casas decimais: %q", s)
	}
	return Centavos(cents.IntPart()), nil
}

// String renders the amount as a plain decimal with two places, "1234.56".
func (c Centavos) String() string {
	return decimal.New(int64(c), -2).StringFixed(2)
}

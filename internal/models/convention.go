package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SignConvention selects how Tx is derived from the Debit and Credit columns.
type SignConvention string

const (
	// SignConventionSubtract computes Tx = Credit - Debit, so money leaving the
	// account is negative. This is what Xero's statement import expects.
	SignConventionSubtract SignConvention = "subtract"

	// SignConventionAdd computes Tx = Credit + Debit, for exports where debits
	// are already recorded as negative amounts.
	SignConventionAdd SignConvention = "add"

	// DefaultSignConvention is used when nothing is configured.
	DefaultSignConvention = SignConventionSubtract
)

// ParseSignConvention validates a configured convention name.
func ParseSignConvention(name string) (SignConvention, error) {
	switch c := SignConvention(strings.ToLower(strings.TrimSpace(name))); c {
	case SignConventionSubtract, SignConventionAdd:
		return c, nil
	case "":
		return DefaultSignConvention, nil
	default:
		return "", fmt.Errorf("unknown sign convention '%s' (must be '%s' or '%s')", name, SignConventionSubtract, SignConventionAdd)
	}
}

// Tx combines rounded debit and credit amounts according to c.
func (c SignConvention) Tx(debit, credit decimal.Decimal) decimal.Decimal {
	if c == SignConventionAdd {
		return credit.Add(debit)
	}
	return credit.Sub(debit)
}

func (c SignConvention) String() string {
	return string(c)
}

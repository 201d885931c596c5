package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount is a currency value in micro-units
type Amount uint64

// Unit is one whole currency unit
const Unit Amount = 1_000_000

// Fees charged by paid operations
const (
	BasicCreationFee    Amount = Unit / 2
	EnhancedCreationFee Amount = Unit
	AbilityUnlockFee    Amount = Unit / 5
	AscensionFee        Amount = 5 * Unit
)

// String renders the amount as a decimal number of units
func (a Amount) String() string {
	whole := uint64(a / Unit)
	frac := uint64(a % Unit)
	if frac == 0 {
		return strconv.FormatUint(whole, 10)
	}
	s := fmt.Sprintf("%d.%06d", whole, frac)
	return strings.TrimRight(s, "0")
}

// ParseAmount parses a decimal unit string such as "1.5" into micro-units
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	whole, frac, _ := strings.Cut(s, ".")
	w, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if len(frac) > 6 {
		return 0, fmt.Errorf("invalid amount %q: more than 6 decimal places", s)
	}
	var f uint64
	if frac != "" {
		f, err = strconv.ParseUint(frac+strings.Repeat("0", 6-len(frac)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", s, err)
		}
	}
	if w > math.MaxUint64/uint64(Unit) {
		return 0, fmt.Errorf("invalid amount %q: out of range", s)
	}
	whole64 := w * uint64(Unit)
	if whole64 > math.MaxUint64-f {
		return 0, fmt.Errorf("invalid amount %q: out of range", s)
	}
	return Amount(whole64 + f), nil
}

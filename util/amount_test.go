package util_test

import (
	"strings"
	"testing"

	. "github.com/kaspanet/cellwallet/util"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		unit     AmountUnit
		valid    bool
		expected Amount
	}{
		// Positive tests.
		{
			name:     "zero",
			input:    "0",
			unit:     AmountUnitCKB,
			valid:    true,
			expected: AmountZero,
		},
		{
			name:     "whole CKB",
			input:    "61",
			unit:     AmountUnitCKB,
			valid:    true,
			expected: NewAmount(61 * ShannonsPerCKB),
		},
		{
			name:     "fraction",
			input:    "0.01234567",
			unit:     AmountUnitCKB,
			valid:    true,
			expected: NewAmount(1234567),
		},
		{
			name:     "shannons",
			input:    "18446744073709551615",
			unit:     AmountUnitShannon,
			valid:    true,
			expected: NewAmount(^uint64(0)),
		},

		// Negative tests.
		{name: "empty", input: "", unit: AmountUnitCKB},
		{name: "negative", input: "-1", unit: AmountUnitCKB},
		{name: "nine decimals", input: "0.123456789", unit: AmountUnitCKB},
		{name: "no integer part", input: ".1", unit: AmountUnitCKB},
		{name: "zero padded", input: "012", unit: AmountUnitCKB},
		{name: "thirteen digits", input: "1111111111111", unit: AmountUnitCKB},
		{name: "text", input: "ckb", unit: AmountUnitCKB},
		{name: "fractional shannons", input: "1.5", unit: AmountUnitShannon},
	}

	for _, test := range tests {
		amount, err := ParseAmount(test.input, test.unit)
		switch {
		case test.valid && err != nil:
			t.Errorf("%v: Positive test ParseAmount failed with: %v", test.name, err)
			continue
		case !test.valid && err == nil:
			t.Errorf("%v: Negative test ParseAmount succeeded (value %v) when should fail", test.name, amount)
			continue
		case !test.valid:
			continue
		}

		if !amount.Eq(test.expected) {
			t.Errorf("%v: Parsed amount %v does not match expected %v", test.name, amount, test.expected)
		}
	}
}

func TestAmountFormat(t *testing.T) {
	tests := []struct {
		name   string
		amount Amount
		unit   AmountUnit
		s      string
	}{
		{
			name:   "min change",
			amount: NewAmount(61 * ShannonsPerCKB),
			unit:   AmountUnitCKB,
			s:      "61.00000000",
		},
		{
			name:   "fraction",
			amount: NewAmount(44433322211100),
			unit:   AmountUnitCKB,
			s:      "444333.22211100",
		},
		{
			name:   "one shannon",
			amount: NewAmount(1),
			unit:   AmountUnitCKB,
			s:      "0.00000001",
		},
		{
			name:   "shannon unit",
			amount: NewAmount(44433322211100),
			unit:   AmountUnitShannon,
			s:      "44433322211100",
		},
	}

	for _, test := range tests {
		s := test.amount.Format(test.unit)
		if s != test.s {
			t.Errorf("%v: format '%v' does not match expected '%v'", test.name, s, test.s)
		}
	}

	if got := NewAmount(ShannonsPerCKB).FormatCKB(); got != "1.00000000 CKB" {
		t.Errorf("FormatCKB: got %q", got)
	}
}

func TestAmountArithmetic(t *testing.T) {
	a := NewAmount(1000)
	b := NewAmount(110)

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %+v", err)
	}
	if !sum.Eq(NewAmount(1110)) {
		t.Fatalf("Add: got %s, want 1110", sum)
	}
	if difference := sum.Sub(b); !difference.Eq(a) {
		t.Fatalf("Sub: got %s, want %s", difference, a)
	}

	if !b.Lt(a) || !a.Gt(b) || !a.Gte(a) || !a.Lte(a) || a.Lt(a) || a.Gt(a) {
		t.Fatalf("comparisons of %s and %s are inconsistent", a, b)
	}
	if a.Cmp(b) != 1 || b.Cmp(a) != -1 || a.Cmp(a) != 0 {
		t.Fatalf("Cmp of %s and %s is inconsistent", a, b)
	}
	if !AmountZero.IsZero() || a.IsZero() {
		t.Fatalf("IsZero is inconsistent")
	}

	product, err := NewAmount(12345).MulUint64(1000)
	if err != nil {
		t.Fatalf("MulUint64: %+v", err)
	}
	if !product.Eq(NewAmount(12345000)) {
		t.Fatalf("MulUint64: got %s", product)
	}
	if quotient := NewAmount(12345001).DivCeilUint64(1000); !quotient.Eq(NewAmount(12346)) {
		t.Fatalf("DivCeilUint64: got %s, want 12346", quotient)
	}
	if quotient := NewAmount(12345000).DivCeilUint64(1000); !quotient.Eq(NewAmount(12345)) {
		t.Fatalf("DivCeilUint64: got %s, want 12345", quotient)
	}

	value, ok := NewAmount(42).Uint64()
	if !ok || value != 42 {
		t.Fatalf("Uint64: got (%d, %t)", value, ok)
	}
}

func TestAmountBeyondUint64(t *testing.T) {
	maxUint64 := NewAmount(^uint64(0))
	sum, err := maxUint64.Add(NewAmount(1))
	if err != nil {
		t.Fatalf("Add: %+v", err)
	}
	if _, ok := sum.Uint64(); ok {
		t.Fatalf("Uint64 of %s unexpectedly fits", sum)
	}
	if sum.String() != "18446744073709551616" {
		t.Fatalf("String: got %s", sum)
	}

	huge, err := ParseAmount(strings.Repeat("9", 77), AmountUnitShannon)
	if err != nil {
		t.Fatalf("ParseAmount: %+v", err)
	}
	if _, err := huge.Add(huge); err == nil {
		t.Fatalf("Add of %s to itself unexpectedly succeeded", huge)
	}
	if _, err := huge.MulUint64(2); err == nil {
		t.Fatalf("MulUint64 of %s unexpectedly succeeded", huge)
	}
}

func TestAmountSubUnderflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Sub underflow didn't panic")
		}
	}()
	NewAmount(1).Sub(NewAmount(2))
}

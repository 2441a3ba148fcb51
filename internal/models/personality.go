package models

import (
	"fmt"
	"strings"
)

// TypeCode is a four-letter personality type such as "INTJ".
// Each position holds one of two opposing letters:
// E/I (energy), S/N (information), T/F (decisions), J/P (structure).
type TypeCode string

// dimensions lists the two letters allowed at each position of a TypeCode.
var dimensions = [4][2]byte{
	{'E', 'I'},
	{'S', 'N'},
	{'T', 'F'},
	{'J', 'P'},
}

// AllTypeCodes returns the 16 valid type codes in canonical order.
func AllTypeCodes() []TypeCode {
	codes := make([]TypeCode, 0, 16)
	for _, a := range dimensions[0] {
		for _, b := range dimensions[1] {
			for _, c := range dimensions[2] {
				for _, d := range dimensions[3] {
					codes = append(codes, TypeCode([]byte{a, b, c, d}))
				}
			}
		}
	}
	return codes
}

// ParseTypeCode normalizes s and returns it as a TypeCode.
// It returns an error unless s is one of the 16 valid codes.
func ParseTypeCode(s string) (TypeCode, error) {
	code := TypeCode(strings.ToUpper(strings.TrimSpace(s)))
	if !code.Valid() {
		return "", fmt.Errorf("invalid personality type %q", s)
	}
	return code, nil
}

// Valid reports whether c is one of the 16 type codes.
func (c TypeCode) Valid() bool {
	if len(c) != 4 {
		return false
	}
	for i, pair := range dimensions {
		if c[i] != pair[0] && c[i] != pair[1] {
			return false
		}
	}
	return true
}

// Opposite returns the opposing letter for position i of a type code,
// or 0 if letter is not valid at that position.
func Opposite(i int, letter byte) byte {
	if i < 0 || i >= len(dimensions) {
		return 0
	}
	switch letter {
	case dimensions[i][0]:
		return dimensions[i][1]
	case dimensions[i][1]:
		return dimensions[i][0]
	}
	return 0
}

// String implements fmt.Stringer.
func (c TypeCode) String() string {
	return string(c)
}

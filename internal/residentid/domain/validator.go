package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Length is the number of characters in an identifier.
const Length = 18

// Field boundaries within an identifier.
const (
	addressEnd = 6
	dateEnd    = 14
	orderEnd   = 17
)

// weights[i] is 2^i mod 11, where i counts positions from the last character.
var weights = [Length]int{1, 2, 4, 8, 5, 10, 9, 7, 3, 6, 1, 2, 4, 8, 5, 10, 9, 7}

// Validate checks an identifier and extracts the attributes it encodes.
//
// Checks run in order and the first failure wins: length, character class,
// checksum, then the birth date. A non-nil error is always a ValidationError.
func Validate(id string) (PersonalInfo, error) {
	if utf8.RuneCountInString(id) != Length {
		return PersonalInfo{}, ErrInvalidLength
	}
	// 18 code points but more bytes means at least one non-ASCII character.
	if len(id) != Length {
		return PersonalInfo{}, ErrInvalidCharacters
	}

	sum := 0
	for i := range Length {
		c := id[Length-1-i]
		var digit int
		switch {
		case i == 0 && (c == 'X' || c == 'x'):
			digit = 10
		case c >= '0' && c <= '9':
			digit = int(c - '0')
		default:
			return PersonalInfo{}, ErrInvalidCharacters
		}
		sum += digit * weights[i]
	}
	if sum%11 != 1 {
		return PersonalInfo{}, ErrChecksum
	}

	dob, err := time.Parse(DateLayout, id[addressEnd:dateEnd])
	if err != nil {
		return PersonalInfo{}, ErrInvalidDate
	}

	order := mustParseOrder(id[dateEnd:orderEnd])
	return PersonalInfo{
		Address:     id[:addressEnd],
		DateOfBirth: dob,
		Order:       order,
		Gender:      GenderFromOrder(order),
	}, nil
}

// mustParseOrder parses the sequence order. The checksum loop has already
// verified every position before the check character is a digit.
func mustParseOrder(s string) uint16 {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil || n > 999 {
		panic(fmt.Sprintf("residentid: order segment %q passed character checks but is not 0-999", s))
	}
	return uint16(n)
}

// CheckDigit computes the check character for a 17-digit body so that the
// body followed by the result passes Validate's checksum.
func CheckDigit(body string) (byte, error) {
	if len(body) != Length-1 {
		return 0, ErrInvalidLength
	}
	sum := 0
	for j := range Length - 1 {
		c := body[j]
		if c < '0' || c > '9' {
			return 0, ErrInvalidCharacters
		}
		sum += int(c-'0') * weights[Length-1-j]
	}
	check := ((1-sum)%11 + 11) % 11
	if check == 10 {
		return 'X', nil
	}
	return byte('0' + check), nil
}

// Mask renders an identifier for logs: the region code and the last two
// characters are kept and everything else is starred. Input of the wrong
// length is starred entirely.
func Mask(id string) string {
	runes := []rune(id)
	if len(runes) != Length {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:addressEnd]) + strings.Repeat("*", Length-addressEnd-2) + string(runes[Length-2:])
}

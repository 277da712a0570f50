package domain

import (
	"fmt"
	"time"
)

// Gender is inferred from the parity of the sequence order.
type Gender uint8

const (
	GenderMale Gender = iota + 1
	GenderFemale
)

// GenderFromOrder maps an odd order to male and an even order to female.
func GenderFromOrder(order uint16) Gender {
	if order%2 == 0 {
		return GenderFemale
	}
	return GenderMale
}

// String returns the lowercase gender name.
func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "unknown"
	}
}

// DateLayout is the layout of the birth date segment.
const DateLayout = "20060102"

// PersonalInfo holds the attributes embedded in a valid identifier.
//
// Invariants:
//   - Address is exactly 6 ASCII digits
//   - Order is below 1000
//   - Gender is GenderFromOrder(Order)
type PersonalInfo struct {
	Address     string
	DateOfBirth time.Time
	Order       uint16
	Gender      Gender
}

// AgeAt returns the completed years of age at now.
// A birth date after now yields 0.
func (p PersonalInfo) AgeAt(now time.Time) int {
	y, m, d := now.Date()
	by, bm, bd := p.DateOfBirth.Date()
	age := y - by
	if m < bm || (m == bm && d < bd) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

func (p PersonalInfo) String() string {
	return fmt.Sprintf("PersonalInfo{Address:%s DateOfBirth:%s Order:%d Gender:%s}",
		p.Address, p.DateOfBirth.Format(time.DateOnly), p.Order, p.Gender)
}

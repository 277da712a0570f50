package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// withCheckDigit completes a 17-digit body into a checksum-valid identifier.
func withCheckDigit(t *testing.T, body string) string {
	t.Helper()
	c, err := CheckDigit(body)
	require.NoError(t, err)
	return body + string(c)
}

func TestValidate_KnownCases(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PersonalInfo
		wantErr error
	}{
		{name: "empty", input: "", wantErr: ErrInvalidLength},
		{name: "letters", input: "abcdefghijklmnopqr", wantErr: ErrInvalidCharacters},
		{name: "X outside check position", input: "11010220000101XXXX", wantErr: ErrInvalidCharacters},
		{name: "non-existent leap day", input: "110102199902290014", wantErr: ErrInvalidDate},
		{name: "checksum mismatch", input: "11010220000101001X", wantErr: ErrChecksum},
		{
			name:  "odd order is male",
			input: "110102200002290014",
			want: PersonalInfo{
				Address:     "110102",
				DateOfBirth: date(2000, time.February, 29),
				Order:       1,
				Gender:      GenderMale,
			},
		},
		{
			name:  "even order is female",
			input: "110102200002291009",
			want: PersonalInfo{
				Address:     "110102",
				DateOfBirth: date(2000, time.February, 29),
				Order:       100,
				Gender:      GenderFemale,
			},
		},
		{
			name:  "uppercase X check character",
			input: "11010519491231002X",
			want: PersonalInfo{
				Address:     "110105",
				DateOfBirth: date(1949, time.December, 31),
				Order:       2,
				Gender:      GenderFemale,
			},
		},
		{
			name:  "lowercase x check character",
			input: "11010519491231002x",
			want: PersonalInfo{
				Address:     "110105",
				DateOfBirth: date(1949, time.December, 31),
				Order:       2,
				Gender:      GenderFemale,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, PersonalInfo{}, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate_Length(t *testing.T) {
	t.Run("rejects short and long input", func(t *testing.T) {
		for _, n := range []int{1, 15, 17, 19, 36} {
			_, err := Validate(strings.Repeat("1", n))
			assert.ErrorIs(t, err, ErrInvalidLength, "length %d", n)
		}
	})

	t.Run("counts code points, not bytes", func(t *testing.T) {
		// 17 code points, 18 bytes.
		_, err := Validate("é1010220000229001")
		assert.ErrorIs(t, err, ErrInvalidLength)
	})

	t.Run("length wins over every other check", func(t *testing.T) {
		_, err := Validate("abc")
		assert.ErrorIs(t, err, ErrInvalidLength)
	})
}

func TestValidate_Characters(t *testing.T) {
	t.Run("rejects non-ASCII code points", func(t *testing.T) {
		_, err := Validate("11010220000229001é")
		assert.ErrorIs(t, err, ErrInvalidCharacters)
	})

	t.Run("rejects full-width digits", func(t *testing.T) {
		_, err := Validate(strings.Repeat("１", Length))
		assert.ErrorIs(t, err, ErrInvalidCharacters)
	})

	t.Run("rejects X in the order segment", func(t *testing.T) {
		_, err := Validate("1101022000022900X4")
		assert.ErrorIs(t, err, ErrInvalidCharacters)
	})

	t.Run("rejects letters other than X in check position", func(t *testing.T) {
		_, err := Validate("11010220000229001A")
		assert.ErrorIs(t, err, ErrInvalidCharacters)
	})

	t.Run("character class wins over checksum", func(t *testing.T) {
		_, err := Validate("1101022000022900 4")
		assert.ErrorIs(t, err, ErrInvalidCharacters)
	})
}

func TestValidate_Checksum(t *testing.T) {
	t.Run("every wrong check character is rejected", func(t *testing.T) {
		valid := "110102200002290014"
		for _, c := range "0123456789X" {
			candidate := valid[:Length-1] + string(c)
			if candidate == valid {
				continue
			}
			_, err := Validate(candidate)
			assert.ErrorIs(t, err, ErrChecksum, "check character %q", c)
		}
	})

	t.Run("single digit transcription error is detected", func(t *testing.T) {
		valid := []byte("110102200002290014")
		valid[3] = '2'
		_, err := Validate(string(valid))
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("checksum runs before date parsing", func(t *testing.T) {
		// Invalid date and invalid checksum: checksum is reported.
		_, err := Validate("110102199902290015")
		assert.ErrorIs(t, err, ErrChecksum)
	})
}

func TestValidate_Date(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "February 30", body: "11010220000230001"},
		{name: "month 13", body: "11010220001301001"},
		{name: "month 00", body: "11010220000001001"},
		{name: "day 00", body: "11010220000100001"},
		{name: "April 31", body: "11010220000431001"},
		{name: "century non-leap year", body: "11010219000229001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(withCheckDigit(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidDate)
		})
	}

	t.Run("accepts leap day in a leap year", func(t *testing.T) {
		info, err := Validate(withCheckDigit(t, "44030419960229123"))
		require.NoError(t, err)
		assert.Equal(t, date(1996, time.February, 29), info.DateOfBirth)
	})
}

func TestValidate_OrderAndGender(t *testing.T) {
	tests := []struct {
		order  string
		want   uint16
		gender Gender
	}{
		{order: "000", want: 0, gender: GenderFemale},
		{order: "001", want: 1, gender: GenderMale},
		{order: "998", want: 998, gender: GenderFemale},
		{order: "999", want: 999, gender: GenderMale},
	}
	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			info, err := Validate(withCheckDigit(t, "32010619850713"+tt.order))
			require.NoError(t, err)
			assert.Equal(t, tt.want, info.Order)
			assert.Equal(t, tt.gender, info.Gender)
			assert.Equal(t, "320106", info.Address)
		})
	}
}

func TestValidate_Deterministic(t *testing.T) {
	inputs := []string{"", "110102200002290014", "110102199902290014", "11010220000101001X"}
	for _, in := range inputs {
		first, firstErr := Validate(in)
		second, secondErr := Validate(in)
		assert.Equal(t, first, second)
		assert.Equal(t, firstErr, secondErr)
	}
}

func TestWeights(t *testing.T) {
	w := 1
	for i := range Length {
		assert.Equal(t, w%11, weights[i], "weight %d", i)
		w *= 2
	}
}

func TestCheckDigit(t *testing.T) {
	t.Run("produces X when the remainder calls for ten", func(t *testing.T) {
		c, err := CheckDigit("11010519491231002")
		require.NoError(t, err)
		assert.Equal(t, byte('X'), c)
	})

	t.Run("matches known identifiers", func(t *testing.T) {
		c, err := CheckDigit("11010220000229001")
		require.NoError(t, err)
		assert.Equal(t, byte('4'), c)

		c, err = CheckDigit("11010220000229100")
		require.NoError(t, err)
		assert.Equal(t, byte('9'), c)
	})

	t.Run("rejects malformed bodies", func(t *testing.T) {
		_, err := CheckDigit("1101022000022900")
		assert.ErrorIs(t, err, ErrInvalidLength)

		_, err = CheckDigit("1101022000022900A")
		assert.ErrorIs(t, err, ErrInvalidCharacters)
	})
}

func TestMask(t *testing.T) {
	assert.Equal(t, "110102**********14", Mask("110102200002290014"))
	assert.Equal(t, "***", Mask("abc"))
	assert.Equal(t, "", Mask(""))
}

func TestValidationError(t *testing.T) {
	t.Run("codes are stable", func(t *testing.T) {
		assert.Equal(t, "invalid_length", ErrInvalidLength.Code())
		assert.Equal(t, "invalid_characters", ErrInvalidCharacters.Code())
		assert.Equal(t, "invalid_date", ErrInvalidDate.Code())
		assert.Equal(t, "checksum_error", ErrChecksum.Code())
		assert.Equal(t, "unknown", ValidationError(0).Code())
	})

	t.Run("extracts kind from wrapped errors", func(t *testing.T) {
		_, err := Validate("")
		kind, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, ErrInvalidLength, kind)

		_, ok = AsValidationError(assert.AnError)
		assert.False(t, ok)
	})
}

func TestPersonalInfo(t *testing.T) {
	info := PersonalInfo{
		Address:     "110102",
		DateOfBirth: date(2000, time.February, 29),
		Order:       1,
		Gender:      GenderMale,
	}

	t.Run("age counts completed years", func(t *testing.T) {
		assert.Equal(t, 25, info.AgeAt(date(2026, time.February, 28)))
		assert.Equal(t, 26, info.AgeAt(date(2026, time.March, 1)))
		assert.Equal(t, 0, info.AgeAt(date(1999, time.January, 1)))
	})

	t.Run("string form is debuggable", func(t *testing.T) {
		assert.Equal(t, "PersonalInfo{Address:110102 DateOfBirth:2000-02-29 Order:1 Gender:male}", info.String())
	})
}

package code

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		input string
		valid bool
	}{
		{"lowercase", "abc-defg-hij", true},
		{"all z", "zzz-zzzz-zzz", true},
		{"uppercase", "ABC-defg-hij", false},
		{"single uppercase", "abc-deFg-hij", false},
		{"too short", "abcdefg-hij", false},
		{"too long", "abc-defg-hijk", false},
		{"empty", "", false},
		{"wrong separators", "abc.defg.hij", false},
		{"missing first dash", "abcxdefg-hij", false},
		{"missing second dash", "abc-defgxhij", false},
		{"digit", "abc-defg-hi9", false},
		{"dash in letter slot", "ab--defg-hij", false},
		{"leading space", " bc-defg-hij", false},
		{"multibyte", "abc-défg-hi", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := Validate(c.input)
			if c.valid && err != nil {
				t.Errorf("expected %q to be valid got: %v", c.input, err)
			}
			if !c.valid && !errors.Is(err, ErrInvalid) {
				t.Errorf("expected %q to be rejected got: %v", c.input, err)
			}
		})
	}
}

func TestValidateEveryLetterSlot(t *testing.T) {
	base := []byte("abc-defg-hij")
	for i := range base {
		if base[i] == '-' {
			continue
		}
		for _, c := range []byte{'A', 'Z', '0', '9', '-', '_', '`', '{', ' '} {
			candidate := append([]byte(nil), base...)
			candidate[i] = c
			if Validate(string(candidate)) == nil {
				t.Errorf("expected %q to be rejected", candidate)
			}
		}
	}
}

func TestErrorMessage(t *testing.T) {
	if ErrInvalid.Error() != "invalid code" {
		t.Errorf("wrong message expected: %v got: %v", "invalid code", ErrInvalid.Error())
	}
}

func TestGenerateRandom(t *testing.T) {
	for i := 0; i < 100; i++ {
		c := GenerateRandom()
		if len(c) != Length {
			t.Errorf("wrong length expected: %d got %d", Length, len(c))
		}
		if err := Validate(c); err != nil {
			t.Errorf("generated code %q rejected: %v", c, err)
		}
	}
}

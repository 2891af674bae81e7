package code

import (
	"errors"
	"math/rand"
	"strings"
	"time"
)

var letters = strings.Split("abcdefghijklmnopqrstuvwxyz", "")

// Length is the byte length of a meeting code such as "abc-defg-hij".
const Length = 12

var dashes = [...]int{3, 8}

var ErrInvalid = errors.New("invalid code")

// Validate reports whether candidate has the xxx-xxxx-xxx shape with lowercase
// ASCII letters in every x position. No normalization is applied.
func Validate(candidate string) error {
	if len(candidate) != Length {
		return ErrInvalid
	}
	for i := 0; i < Length; i++ {
		c := candidate[i]
		if i == dashes[0] || i == dashes[1] {
			if c != '-' {
				return ErrInvalid
			}
			continue
		}
		if c < 'a' || c > 'z' {
			return ErrInvalid
		}
	}
	return nil
}

func GenerateRandom() string {
	var b strings.Builder
	s := rand.NewSource(time.Now().UnixNano())
	r := rand.New(s)
	for i := 0; i < Length; i++ {
		if i == dashes[0] || i == dashes[1] {
			b.WriteByte('-')
			continue
		}
		b.WriteString(letters[r.Intn(len(letters))])
	}
	return b.String()
}

package contact

import (
	"fmt"
	"strconv"
	"strings"
)

// Captcha operand bounds.
const (
	CaptchaMinOperand = 1
	CaptchaMaxOperand = 10
)

// Captcha is a small arithmetic challenge shown on the contact form.
// INVARIANT: Answer() is never negative
type Captcha struct {
	A  int
	B  int
	Op string // "+" or "-"
}

// NewCaptcha draws a challenge using intn, which must behave like rand.IntN.
func NewCaptcha(intn func(n int) int) Captcha {
	span := CaptchaMaxOperand - CaptchaMinOperand + 1
	a := intn(span) + CaptchaMinOperand
	b := intn(span) + CaptchaMinOperand
	if intn(2) == 0 {
		return Captcha{A: a, B: b, Op: "+"}
	}
	if b > a {
		a, b = b, a
	}
	return Captcha{A: a, B: b, Op: "-"}
}

// Question renders the challenge for display.
func (c Captcha) Question() string {
	return fmt.Sprintf("%d %s %d", c.A, c.Op, c.B)
}

// Answer returns the expected result.
func (c Captcha) Answer() int {
	if c.Op == "-" {
		return c.A - c.B
	}
	return c.A + c.B
}

// CheckAnswer compares a visitor's typed answer with the expected one.
func CheckAnswer(expected int, input string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return false
	}
	return n == expected
}

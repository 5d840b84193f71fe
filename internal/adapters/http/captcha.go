package web

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gorilla/securecookie"

	"trust/internal/domain/contact"
)

// captchaTTL bounds how long a contact form may stay open.
const captchaTTL = 2 * time.Hour

const captchaName = "contact_captcha"

// captchaToken is the signed payload carried in the contact form.
// Nonce makes each token single-use.
type captchaToken struct {
	Answer int
	Nonce  string
}

func newCaptchaCodec(hashKey []byte) *securecookie.SecureCookie {
	return securecookie.New(hashKey, nil).MaxAge(int(captchaTTL.Seconds()))
}

// nonceSet remembers spent captcha nonces until their tokens expire.
type nonceSet struct {
	mu    sync.Mutex
	spent map[string]time.Time
}

func newNonceSet() *nonceSet {
	return &nonceSet{spent: make(map[string]time.Time)}
}

// spend marks nonce as used. It returns false if it was already used.
func (n *nonceSet) spend(nonce string, now time.Time) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for k, exp := range n.spent {
		if now.After(exp) {
			delete(n.spent, k)
		}
	}
	if _, used := n.spent[nonce]; used {
		return false
	}
	n.spent[nonce] = now.Add(captchaTTL)
	return true
}

var spentCaptchas = newNonceSet()

// issueCaptcha draws a new challenge and signs its answer.
func issueCaptcha() (question, token string, err error) {
	c := contact.NewCaptcha(rand.IntN)
	token, err = captchaCodec.Encode(captchaName, captchaToken{Answer: c.Answer(), Nonce: generateID()})
	if err != nil {
		return "", "", err
	}
	return c.Question(), token, nil
}

// verifyCaptcha checks the visitor's answer against a signed token.
// Tampered, expired or already used tokens fail. A wrong answer does not
// spend the token.
func verifyCaptcha(token, answer string) bool {
	var t captchaToken
	if err := captchaCodec.Decode(captchaName, token, &t); err != nil {
		return false
	}
	if t.Nonce == "" || !contact.CheckAnswer(t.Answer, answer) {
		return false
	}
	return spentCaptchas.spend(t.Nonce, timeNow())
}

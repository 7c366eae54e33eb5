package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perrs "claimboard/internal/platform/errors"
)

// TokenPort resolves a bearer token to the subject it stands for
type TokenPort func(token string) (subject string, err error)

// Parse reads Authorization: Bearer <token> and hands the token to p
func (p TokenPort) Parse(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(s) < len("bearer") || !strings.EqualFold(s[:len("bearer")], "bearer") {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	tok := strings.TrimSpace(s[len("bearer"):])
	if tok == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	sub, err := p(tok)
	if err != nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	return sub, nil
}

// StaticToken accepts exactly one shared secret and reports subject as the caller
// an empty secret rejects every request
func StaticToken(subject, secret string) TokenPort {
	return func(token string) (string, error) {
		if secret == "" || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			return "", perrs.Unauthorizedf("invalid bearer token")
		}
		return subject, nil
	}
}

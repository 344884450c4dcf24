package token

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
)

func TestCreateAndVerifyToken(t *testing.T) {
	RegisterTestingT(t)

	j := JWT{Secret: "test-secret", TTL: time.Hour}

	tokenString, err := j.CreateToken("user-123", "a@x.com")

	Expect(err).To(BeNil())
	Expect(tokenString).To(Not(BeEmpty()))

	claims, err := j.VerifyToken(tokenString)

	Expect(err).To(BeNil())
	Expect(claims["sub"]).To(Equal("user-123"))
	Expect(claims["email"]).To(Equal("a@x.com"))
}

func TestVerifyExpiredToken(t *testing.T) {
	j := JWT{Secret: "test-secret", TTL: -time.Minute}

	tokenString, err := j.CreateToken("user-123", "a@x.com")
	assert.NoError(t, err)

	_, err = j.VerifyToken(tokenString)
	assert.Error(t, err)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	issuer := JWT{Secret: "right-secret", TTL: time.Hour}
	verifier := JWT{Secret: "wrong-secret"}

	tokenString, err := issuer.CreateToken("user-123", "a@x.com")
	assert.NoError(t, err)

	_, err = verifier.VerifyToken(tokenString)
	assert.Error(t, err)
}

func TestVerifyMalformedToken(t *testing.T) {
	j := JWT{Secret: "test-secret"}

	_, err := j.VerifyToken("not-a-token")
	assert.Error(t, err)
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssuer_Token_Round_Trip(t *testing.T) {
	req := require.New(t)
	issuer := NewIssuer("secret", time.Hour)

	token, err := issuer.GenerateToken("shop")
	req.NoError(err)
	id, err := issuer.ValidateToken(token)
	req.NoError(err)
	req.EqualValues("shop", id)

	_, err = issuer.GenerateToken("")
	req.ErrorIs(err, ErrInvalidToken)
}

func TestIssuer_Expired_Token(t *testing.T) {
	req := require.New(t)
	issuer := NewIssuer("secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := issuer.GenerateToken("shop")
	req.NoError(err)

	issuer.now = time.Now
	_, err = issuer.ValidateToken(token)
	req.ErrorIs(err, ErrInvalidToken)
}

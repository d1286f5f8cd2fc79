package session

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/fleetcheck/internal/common"
	"github.com/dmitrijs2005/fleetcheck/internal/models"
)

// SignedCodec mints HS256 JWTs. Tokens signed with another secret, or with
// another algorithm, do not decode.
type SignedCodec struct {
	secret []byte
}

type jwtClaims struct {
	jwt.RegisteredClaims
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
}

func NewSignedCodec(secret []byte) (*SignedCodec, error) {
	if len(secret) == 0 {
		return nil, errors.New("signing secret must not be empty")
	}
	return &SignedCodec{secret: append([]byte(nil), secret...)}, nil
}

func (s *SignedCodec) Mint(c Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  c.Subject,
			IssuedAt: jwt.NewNumericDate(c.IssuedAt),
		},
		Email: c.Email,
		Name:  c.Name,
		Role:  c.Role,
	})
	return token.SignedString(s.secret)
}

func (s *SignedCodec) Decode(tokenString string) (Claims, error) {
	claims := &jwtClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", common.ErrDecode, err)
	}
	if !token.Valid {
		return Claims{}, fmt.Errorf("%w: invalid token", common.ErrDecode)
	}

	c := Claims{Subject: claims.Subject, Email: claims.Email, Name: claims.Name, Role: claims.Role}
	if claims.IssuedAt != nil {
		c.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	if err := c.validate(); err != nil {
		return Claims{}, err
	}
	return c, nil
}

package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/fleetcheck/internal/common"
	"github.com/dmitrijs2005/fleetcheck/internal/models"
)

// Claims is what a credential carries.
type Claims struct {
	Subject  string
	Email    string
	Name     string
	Role     models.Role
	IssuedAt time.Time
}

func ClaimsFor(a models.Account, issuedAt time.Time) Claims {
	return Claims{Subject: a.ID, Email: a.Email, Name: a.Name, Role: a.Role, IssuedAt: issuedAt}
}

// Account rebuilds the account the claims were minted for. CreatedAt is not
// part of the credential and stays zero.
func (c Claims) Account() models.Account {
	return models.Account{ID: c.Subject, Email: c.Email, Name: c.Name, Role: c.Role}
}

func (c Claims) validate() error {
	if c.Subject == "" {
		return fmt.Errorf("%w: missing sub", common.ErrDecode)
	}
	if c.Email == "" {
		return fmt.Errorf("%w: missing email", common.ErrDecode)
	}
	if !c.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", common.ErrDecode, c.Role)
	}
	return nil
}

// Codec turns claims into a credential string and back.
type Codec interface {
	Mint(c Claims) (string, error)
	// Decode returns an error wrapping common.ErrDecode for any token it
	// does not accept.
	Decode(token string) (Claims, error)
}

// PlainCodec encodes the JSON claims with standard padded base64. It does
// not sign anything.
type PlainCodec struct{}

type plainWire struct {
	Sub   string      `json:"sub"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
	Iat   json.Number `json:"iat"`
}

func (PlainCodec) Mint(c Claims) (string, error) {
	w := plainWire{
		Sub:   c.Subject,
		Email: c.Email,
		Name:  c.Name,
		Role:  c.Role,
		Iat:   json.Number(strconv.FormatInt(c.IssuedAt.UnixMilli(), 10)),
	}
	data, err := json.Marshal(w)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func (PlainCodec) Decode(token string) (Claims, error) {
	data, err := base64.StdEncoding.Strict().DecodeString(token)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", common.ErrDecode, err)
	}

	var w plainWire
	if err := json.Unmarshal(data, &w); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", common.ErrDecode, err)
	}

	c := Claims{Subject: w.Sub, Email: w.Email, Name: w.Name, Role: w.Role}
	if w.Iat != "" {
		ms, err := w.Iat.Float64()
		if err != nil {
			return Claims{}, fmt.Errorf("%w: iat: %v", common.ErrDecode, err)
		}
		c.IssuedAt = time.UnixMilli(int64(ms)).UTC()
	}

	if err := c.validate(); err != nil {
		return Claims{}, err
	}
	return c, nil
}

var defaultCodec Codec = PlainCodec{}

// Mint issues a plain credential for a.
func Mint(a models.Account, issuedAt time.Time) (string, error) {
	return defaultCodec.Mint(ClaimsFor(a, issuedAt))
}

// Decode reads a plain credential. It never panics; any malformed input
// yields ok=false.
func Decode(token string) (models.Account, bool) {
	c, err := defaultCodec.Decode(token)
	if err != nil {
		return models.Account{}, false
	}
	return c.Account(), true
}

package session

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fleetcheck/internal/common"
	"github.com/dmitrijs2005/fleetcheck/internal/models"
)

var issued = time.Date(2026, 6, 1, 12, 30, 15, 123_000_000, time.UTC)

func TestMintDecode_RoundTrip(t *testing.T) {
	accounts := []models.Account{
		{ID: "admin-001", Email: "admin@example.com", Name: "Administrador", Role: models.RoleAdmin},
		{ID: "0190f3c2-7a1b-7c3d-9e4f-123456789abc", Email: "a@x.com", Name: "Ana", Role: models.RoleUser},
		{ID: "u-3", Email: "joão@exemplo.br", Name: "João Ação 🚚 Ñandú", Role: models.RoleUser},
		{ID: "u-4", Email: "n@x.com", Name: "", Role: models.RoleUser},
	}
	for _, a := range accounts {
		t.Run(a.Email, func(t *testing.T) {
			tok, err := Mint(a, issued)
			require.NoError(t, err)

			got, ok := Decode(tok)
			require.True(t, ok)
			assert.Equal(t, a.ID, got.ID)
			assert.Equal(t, a.Email, got.Email)
			assert.Equal(t, a.Name, got.Name)
			assert.Equal(t, a.Role, got.Role)
		})
	}
}

func TestPlainCodec_WireFormat(t *testing.T) {
	tok, err := PlainCodec{}.Mint(Claims{Subject: "admin-001", Email: "admin@example.com", Name: "Administrador", Role: models.RoleAdmin, IssuedAt: issued})
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(tok)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sub":"admin-001","email":"admin@example.com","name":"Administrador","role":"admin","iat":1780317015123}`, string(raw))

	c, err := PlainCodec{}.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, issued, c.IssuedAt)
}

func TestPlainCodec_AcceptsOriginalAppTokens(t *testing.T) {
	// Produced by Buffer.from(JSON.stringify(payload)).toString('base64').
	payload := `{"sub":"1700000000000","email":"a@x.com","name":"Ana","role":"user","iat":1700000000123}`
	tok := base64.StdEncoding.EncodeToString([]byte(payload))

	got, ok := Decode(tok)
	require.True(t, ok)
	assert.Equal(t, models.Account{ID: "1700000000000", Email: "a@x.com", Name: "Ana", Role: models.RoleUser}, got)
}

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func TestDecode_Garbage(t *testing.T) {
	valid, err := Mint(models.Account{ID: "u", Email: "e@x", Role: models.RoleUser}, issued)
	require.NoError(t, err)

	cases := map[string]string{
		"empty":            "",
		"not base64":       "%%%not-base64%%%",
		"url alphabet":     "eyJzdWIiOiJ1In0-_w==",
		"missing padding":  valid[:len(valid)-1],
		"truncated":        valid[:len(valid)/2],
		"not json":         b64("hello world"),
		"json array":       b64(`["sub","email"]`),
		"missing sub":      b64(`{"email":"e@x","role":"user"}`),
		"missing email":    b64(`{"sub":"u","role":"user"}`),
		"unknown role":     b64(`{"sub":"u","email":"e@x","role":"root"}`),
		"non-numeric iat":  b64(`{"sub":"u","email":"e@x","role":"user","iat":"yesterday"}`),
		"jwt not accepted": "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJ1In0.c2ln",
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			require.NotPanics(t, func() {
				_, ok := Decode(tok)
				assert.False(t, ok)
			})
			_, err := PlainCodec{}.Decode(tok)
			require.ErrorIs(t, err, common.ErrDecode)
		})
	}
}

func TestPlainCodec_ForgeryIsAccepted(t *testing.T) {
	forged := b64(`{"sub":"someone-else","email":"victim@x.com","name":"Mallory","role":"admin","iat":0}`)

	got, ok := Decode(forged)
	require.True(t, ok, "plain credentials are not authenticated")
	assert.Equal(t, models.RoleAdmin, got.Role)
}

func TestSignedCodec(t *testing.T) {
	codec, err := NewSignedCodec([]byte("right-secret"))
	require.NoError(t, err)

	c := Claims{Subject: "u-1", Email: "a@x.com", Name: "Ana", Role: models.RoleUser, IssuedAt: issued}
	tok, err := codec.Mint(c)
	require.NoError(t, err)

	got, err := codec.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.Subject)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, models.RoleUser, got.Role)
	assert.Equal(t, issued.Truncate(time.Second), got.IssuedAt)

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewSignedCodec([]byte("wrong-secret"))
		require.NoError(t, err)
		_, err = other.Decode(tok)
		require.ErrorIs(t, err, common.ErrDecode)
	})

	t.Run("plain token", func(t *testing.T) {
		plain, err := PlainCodec{}.Mint(c)
		require.NoError(t, err)
		_, err = codec.Decode(plain)
		require.ErrorIs(t, err, common.ErrDecode)
	})

	t.Run("alg none", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u-1", "email": "a@x.com", "role": "admin"})
		s, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = codec.Decode(s)
		require.ErrorIs(t, err, common.ErrDecode)
	})

	t.Run("signed but incomplete", func(t *testing.T) {
		tok, err := codec.Mint(Claims{Subject: "u-1", Role: models.RoleUser, IssuedAt: issued})
		require.NoError(t, err)
		_, err = codec.Decode(tok)
		require.ErrorIs(t, err, common.ErrDecode)
	})

	_, err = NewSignedCodec(nil)
	require.Error(t, err)
}

func TestSession_NilSafe(t *testing.T) {
	var s *Session
	assert.False(t, s.IsAdmin())
	assert.Empty(t, s.SubjectID())

	s = &Session{Account: models.Account{ID: "admin-001", Role: models.RoleAdmin}}
	assert.True(t, s.IsAdmin())
	assert.Equal(t, "admin-001", s.SubjectID())
}

func TestClaimsJSONHasNoCreatedAt(t *testing.T) {
	tok, err := Mint(models.Account{ID: "u", Email: "e@x", Role: models.RoleUser, CreatedAt: issued}, issued)
	require.NoError(t, err)
	raw, _ := base64.StdEncoding.DecodeString(tok)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.NotContains(t, m, "createdAt")
}

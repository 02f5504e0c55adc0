package server

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"io"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/gravitas-games/gridstash/internal/config"
	"github.com/gravitas-games/gridstash/internal/network"
)

const testIssuer = "test-issuer"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(`
server:
  max_players: 2
jwt:
  issuer: test-issuer
inventory:
  grid_width: 4
  grid_height: 2
  metric: {origin_x: 0, origin_y: 0, cell_size: 10}
  equipment: [head, ring]
  slots:
    head: {x: 100, y: 0, w: 20, h: 20}
    ring: {x: 100, y: 30, w: 10, h: 10}
`))
	require.NoError(t, err)
	return cfg
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type recordSender struct {
	msgs []*network.ServerMessage
}

func (r *recordSender) SendMessage(msg *network.ServerMessage) {
	r.msgs = append(r.msgs, msg)
}

func (r *recordSender) types() []string {
	out := make([]string, len(r.msgs))
	for i, m := range r.msgs {
		out[i] = m.Type
	}
	return out
}

func (r *recordSender) last() *network.ServerMessage {
	if len(r.msgs) == 0 {
		return nil
	}
	return r.msgs[len(r.msgs)-1]
}

func (r *recordSender) reset() { r.msgs = nil }

func testKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return key
}

func testValidator(cfg *config.Config, key *ecdsa.PrivateKey) *JWTValidator {
	v := &JWTValidator{config: cfg, log: quietLogger()}
	v.setPublicKey(&key.PublicKey)
	return v
}

func signToken(t *testing.T, key *ecdsa.PrivateKey, mutate func(*Claims)) string {
	t.Helper()
	claims := Claims{
		UserID:    42,
		Username:  "tester",
		Email:     "tester@example.com",
		Activated: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	if mutate != nil {
		mutate(&claims)
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

package token

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const rsaKeySize = 2048

// Signer signs access tokens and login session tokens with a local RSA key.
// The key is loaded from keyPath when present, otherwise generated and
// written there; an empty keyPath keeps the key in memory only.
type Signer struct {
	privateKey *rsa.PrivateKey
	issuer     string
	logger     *zap.Logger
}

// Claims are the registered plus service claims carried by every token.
type Claims struct {
	ClientID string `json:"client_id,omitempty"`
	Scope    string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// NewSigner creates a signer, loading or generating the RSA key pair.
func NewSigner(keyPath, issuer string, logger *zap.Logger) (*Signer, error) {
	key, err := loadOrGenerateKey(keyPath)
	if err != nil {
		return nil, fmt.Errorf("error preparing signing key: %w", err)
	}

	return &Signer{
		privateKey: key,
		issuer:     issuer,
		logger:     logger,
	}, nil
}

// SignAccessToken produces a signed RS256 access token. Revocation is still
// decided against the stored row; the signature only proves origin.
func (s *Signer) SignAccessToken(tokenID, userID, clientID string, scopes []string, expiresAt time.Time) (string, error) {
	claims := Claims{
		ClientID: clientID,
		Scope:    strings.Join(scopes, " "),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(s.privateKey)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		return "", err
	}
	return signed, nil
}

// SignSession produces a short-lived session token for the login surface.
func (s *Signer) SignSession(userID string, duration time.Duration) (string, error) {
	return s.SignAccessToken("", userID, "", nil, time.Now().Add(duration))
}

// ParseAndVerify validates the signature and expiry and returns the claims.
func (s *Signer) ParseAndVerify(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return &s.privateKey.PublicKey, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func loadOrGenerateKey(keyPath string) (*rsa.PrivateKey, error) {
	if keyPath != "" {
		if key, err := loadKey(keyPath); err == nil {
			return key, nil
		}
	}

	key, err := rsa.GenerateKey(rand.Reader, rsaKeySize)
	if err != nil {
		return nil, err
	}

	if keyPath != "" {
		if err := writeKey(keyPath, key); err != nil {
			return nil, err
		}
	}
	return key, nil
}

func loadKey(keyPath string) (*rsa.PrivateKey, error) {
	pemBytes, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("no PEM block in %s", keyPath)
	}
	return x509.ParsePKCS1PrivateKey(block.Bytes)
}

func writeKey(keyPath string, key *rsa.PrivateKey) error {
	if err := os.MkdirAll(filepath.Dir(keyPath), 0700); err != nil {
		return err
	}
	pemBytes := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	return os.WriteFile(keyPath, pemBytes, 0600)
}

package security

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func pemEncode(t *testing.T, blockType string, der []byte) string {
	t.Helper()
	return string(pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der}))
}

func TestParsePrivateKeyInlinePEM(t *testing.T) {
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate ec key: %v", err)
	}
	ecDER, err := x509.MarshalECPrivateKey(ecKey)
	if err != nil {
		t.Fatalf("marshal ec key: %v", err)
	}
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	pkcs8, err := x509.MarshalPKCS8PrivateKey(rsaKey)
	if err != nil {
		t.Fatalf("marshal pkcs8: %v", err)
	}

	cases := []struct {
		name string
		pem  string
	}{
		{"ec private key", pemEncode(t, "EC PRIVATE KEY", ecDER)},
		{"pkcs1 rsa", pemEncode(t, "RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(rsaKey))},
		{"pkcs8", pemEncode(t, "PRIVATE KEY", pkcs8)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			signer, err := ParsePrivateKey(tc.pem)
			if err != nil {
				t.Fatalf("ParsePrivateKey returned error: %v", err)
			}
			if signer == nil {
				t.Fatal("ParsePrivateKey returned nil signer")
			}
		})
	}
}

func TestParsePublicKeyFromFile(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	der, err := x509.MarshalPKIXPublicKey(key.Public())
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	path := filepath.Join(t.TempDir(), "jwt_pub.pem")
	if err := os.WriteFile(path, []byte(pemEncode(t, "PUBLIC KEY", der)), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}

	pub, err := ParsePublicKey(path)
	if err != nil {
		t.Fatalf("ParsePublicKey returned error: %v", err)
	}
	if _, ok := pub.(*ecdsa.PublicKey); !ok {
		t.Errorf("public key type = %T, want *ecdsa.PublicKey", pub)
	}
}

func TestParseKeyErrors(t *testing.T) {
	if _, err := ParsePrivateKey(""); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("empty input error = %v, want ErrInvalidKey", err)
	}
	if _, err := ParsePrivateKey("-----BEGIN GARBAGE-----\nabc\n-----END GARBAGE-----"); err == nil {
		t.Error("ParsePrivateKey accepted garbage PEM")
	}
	if _, err := ParsePublicKey("-----BEGIN CERTIFICATE-----\nabc\n-----END CERTIFICATE-----"); err == nil {
		t.Error("ParsePublicKey accepted a certificate block")
	}
	if _, err := ParsePublicKey(filepath.Join(t.TempDir(), "missing.pem")); err == nil {
		t.Error("ParsePublicKey accepted a missing file")
	}
}

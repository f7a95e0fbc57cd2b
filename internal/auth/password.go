package auth

import (
	"crypto/md5"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

// passwordPrefix is prepended to the password before hashing. VIGI firmware
// requires this exact prefix; the resulting digest must be uppercase hex.
const passwordPrefix = "TPCQ75NF2Y:"

// HashPassword derives the MD5 digest the camera expects in place of the
// plain password. MD5 is mandated by the vendor login scheme, not chosen here.
func HashPassword(password string) string {
	sum := md5.Sum([]byte(passwordPrefix + password))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// ParsePublicKey decodes the RSA public key returned by get_encrypt_info.
// The camera sends it URL-escaped on top of base64-encoded DER.
func ParsePublicKey(escaped string) (*rsa.PublicKey, error) {
	unescaped, err := url.QueryUnescape(escaped)
	if err != nil {
		return nil, fmt.Errorf("unescape public key: %w", err)
	}
	der, err := base64.StdEncoding.DecodeString(unescaped)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("unexpected public key type %T", key)
	}
	return pub, nil
}

// EncryptCredentials produces the base64 login password field: the PKCS1v15
// encryption of "<passwordHash>:<nonce>" under the camera's session key.
func EncryptCredentials(pub *rsa.PublicKey, passwordHash, nonce string) (string, error) {
	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, pub, []byte(passwordHash+":"+nonce))
	if err != nil {
		return "", fmt.Errorf("encrypt credentials: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

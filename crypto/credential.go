package crypto

import (
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/artfi/suiops/crypto/bech32"
	"github.com/artfi/suiops/errors"
)

// PrivateKeyPrefix is the human readable part of a bech32 encoded private
// key.
const PrivateKeyPrefix = "suiprivkey"

// KeyFormat is the encoding of private key material.
type KeyFormat string

const (
	// FormatBech32 is flag || secret encoded with the suiprivkey prefix.
	FormatBech32 KeyFormat = "bech32"
	// FormatHex is the hex encoded 32 byte secret.
	FormatHex KeyFormat = "hex"
	// FormatBase64 is the base64 encoded flag || secret, as stored in a
	// keystore file.
	FormatBase64 KeyFormat = "base64"
	// FormatMnemonic is a BIP-39 mnemonic phrase.
	FormatMnemonic KeyFormat = "mnemonic"
)

// ParseKeyFormat returns the key format for its name.
func ParseKeyFormat(name string) (KeyFormat, error) {
	switch f := KeyFormat(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatBech32, FormatHex, FormatBase64, FormatMnemonic:
		return f, nil
	default:
		return "", errors.Wrapf(errors.ErrConfiguration, "unsupported key type %q", name)
	}
}

// Credential holds private key material in its encoded form, together with
// what is needed to decode it. A credential is passed explicitly to the
// code that needs to sign. The decoded key only exists for the duration of
// a WithSigner call.
type Credential struct {
	scheme Scheme
	format KeyFormat
	path   string
	secret []byte
}

// NewCredential returns a credential for the given key material. The
// material is validated only when the key is opened. Derivation path is
// used only by the mnemonic format and may be empty.
func NewCredential(scheme Scheme, format KeyFormat, material, path string) (*Credential, error) {
	if err := scheme.Validate(); err != nil {
		return nil, err
	}
	if _, err := ParseKeyFormat(string(format)); err != nil {
		return nil, err
	}
	material = strings.TrimSpace(material)
	if material == "" {
		return nil, errors.Wrap(errors.ErrConfiguration, "private key not provided")
	}
	return &Credential{
		scheme: scheme,
		format: format,
		path:   path,
		secret: []byte(material),
	}, nil
}

// Scheme returns the scheme of the key.
func (c *Credential) Scheme() Scheme {
	return c.scheme
}

// Open decodes the private key. The caller is responsible for destroying
// the returned key. Use WithSigner to get that done automatically.
func (c *Credential) Open() (PrivateKey, error) {
	if c == nil || c.secret == nil {
		return nil, errors.Wrap(errors.ErrConfiguration, "credential destroyed")
	}
	switch c.format {
	case FormatMnemonic:
		key, err := KeyFromMnemonic(c.scheme, string(c.secret), c.path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrConfiguration, err.Error())
		}
		return key, nil
	case FormatHex:
		secret, err := hex.DecodeString(strings.TrimPrefix(string(c.secret), "0x"))
		if err != nil {
			return nil, errors.Wrap(errors.ErrConfiguration, "private key is not hex encoded")
		}
		defer zero(secret)
		return c.newKey(secret)
	case FormatBase64:
		raw, err := base64.StdEncoding.DecodeString(string(c.secret))
		if err != nil {
			return nil, errors.Wrap(errors.ErrConfiguration, "private key is not base64 encoded")
		}
		defer zero(raw)
		return c.newFlaggedKey(raw)
	case FormatBech32:
		raw, err := bech32.DecodeWithPrefix(PrivateKeyPrefix, string(c.secret))
		if err != nil {
			return nil, errors.Wrap(errors.ErrConfiguration, err.Error())
		}
		defer zero(raw)
		return c.newFlaggedKey(raw)
	default:
		return nil, errors.Wrapf(errors.ErrConfiguration, "unsupported key type %q", c.format)
	}
}

func (c *Credential) newFlaggedKey(raw []byte) (PrivateKey, error) {
	if len(raw) != 1+SecretSize {
		return nil, errors.Wrapf(errors.ErrConfiguration, "flagged private key must be %d bytes, got %d", 1+SecretSize, len(raw))
	}
	if Scheme(raw[0]) != c.scheme {
		return nil, errors.Wrapf(errors.ErrConfiguration, "private key is of scheme flag 0x%02x, configured %s", raw[0], c.scheme)
	}
	return c.newKey(raw[1:])
}

func (c *Credential) newKey(secret []byte) (PrivateKey, error) {
	key, err := NewPrivateKey(c.scheme, secret)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfiguration, err.Error())
	}
	return key, nil
}

// Destroy overwrites the key material. The credential cannot be used
// afterwards.
func (c *Credential) Destroy() {
	if c == nil {
		return
	}
	zero(c.secret)
	c.secret = nil
}

// WithSigner opens the credential and calls fn with the decoded key. Secret
// material of the decoded key is zeroed when fn returns.
func WithSigner(c *Credential, fn func(Signer) error) error {
	key, err := c.Open()
	if err != nil {
		return err
	}
	defer key.Destroy()
	return fn(key)
}

// EncodePrivateKey returns the bech32 form of a private key.
func EncodePrivateKey(key PrivateKey) (string, error) {
	secret := key.Secret()
	defer zero(secret)
	payload := append([]byte{key.PublicKey().Scheme().Flag()}, secret...)
	defer zero(payload)
	return bech32.Encode(PrivateKeyPrefix, payload)
}

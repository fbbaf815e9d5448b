// Package password, şifre hash'leme ve doğrulamayı yönetir.
//
// Yeni hash'ler argon2id (memory-hard) ile PHC string formatında üretilir:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash>
//
// Eski hesaplardan kalan bcrypt hash'leri ($2a$, $2b$, $2y$) hâlâ doğrulanır;
// NeedsRehashFor bu hesapları login sırasında argon2id'ye taşımak için kullanılır.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Params, argon2id maliyet parametreleri.
type Params struct {
	Memory  uint32 // KiB
	Time    uint32
	Threads uint8
	SaltLen uint32
	KeyLen  uint32
}

// DefaultParams, production için kullanılan parametreler.
var DefaultParams = Params{
	Memory:  64 * 1024,
	Time:    3,
	Threads: 2,
	SaltLen: 16,
	KeyLen:  32,
}

var (
	// ErrMismatch, şifre hash ile eşleşmediğinde döner.
	ErrMismatch = errors.New("password does not match")
	// ErrUnknownFormat, hash tanınan bir formatta değilse döner.
	ErrUnknownFormat = errors.New("unknown password hash format")
)

var b64 = base64.RawStdEncoding

// Hash, şifreyi DefaultParams ile hash'ler.
func Hash(plain string) (string, error) {
	return HashWithParams(plain, DefaultParams)
}

// HashWithParams, şifreyi verilen parametrelerle hash'ler.
func HashWithParams(plain string, p Params) (string, error) {
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plain), salt, p.Time, p.Memory, p.Threads, p.KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Threads,
		b64.EncodeToString(salt), b64.EncodeToString(key),
	), nil
}

// Verify, şifreyi saklanan hash ile karşılaştırır.
// Eşleşmezse ErrMismatch, format bozuksa ErrUnknownFormat sarılı döner.
func Verify(plain, encoded string) error {
	switch {
	case strings.HasPrefix(encoded, "$argon2id$"):
		return verifyArgon2(plain, encoded)
	case isBcrypt(encoded):
		err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(plain))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnknownFormat, err)
		}
		return nil
	default:
		return ErrUnknownFormat
	}
}

// NeedsRehashFor, hash argon2id değilse veya parametreleri target'tan
// zayıfsa true döner.
func NeedsRehashFor(encoded string, target Params) bool {
	if !strings.HasPrefix(encoded, "$argon2id$") {
		return true
	}
	p, _, _, err := decodeArgon2(encoded)
	if err != nil {
		return true
	}
	return p.Memory < target.Memory || p.Time < target.Time || p.KeyLen < target.KeyLen
}

func verifyArgon2(plain, encoded string) error {
	p, salt, want, err := decodeArgon2(encoded)
	if err != nil {
		return err
	}

	got := argon2.IDKey([]byte(plain), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}

func decodeArgon2(encoded string) (Params, []byte, []byte, error) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, hash
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return Params{}, nil, nil, ErrUnknownFormat
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Params{}, nil, nil, ErrUnknownFormat
	}

	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return Params{}, nil, nil, ErrUnknownFormat
	}

	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return Params{}, nil, nil, ErrUnknownFormat
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return Params{}, nil, nil, ErrUnknownFormat
	}

	p.SaltLen = uint32(len(salt))
	p.KeyLen = uint32(len(key))
	return p, salt, key, nil
}

func isBcrypt(encoded string) bool {
	return strings.HasPrefix(encoded, "$2a$") ||
		strings.HasPrefix(encoded, "$2b$") ||
		strings.HasPrefix(encoded, "$2y$")
}

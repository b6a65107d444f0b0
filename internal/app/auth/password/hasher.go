package password

import (
	"github.com/alexedwards/argon2id"
	customErrors "github.com/lumenchat/auth-service/internal/domain/auth/errors"
)

// Fixed conservative work factor. Changing it only affects new hashes;
// existing hashes carry their own parameters.
var defaultParams = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

type Hasher interface {
	Hash(plaintext string) (string, error)

	// Verify is constant-time with respect to the hash contents.
	Verify(plaintext, hash string) (bool, error)
}

type argonHasher struct {
	params *argon2id.Params
	pepper string
}

func NewArgonHasher(pepper string) Hasher {
	return &argonHasher{params: defaultParams, pepper: pepper}
}

func (h *argonHasher) Hash(plaintext string) (string, error) {
	hash, err := argon2id.CreateHash(plaintext+h.pepper, h.params)
	if err != nil {
		return "", customErrors.WrapInternal(err, "hash password")
	}
	return hash, nil
}

func (h *argonHasher) Verify(plaintext, hash string) (bool, error) {
	ok, err := argon2id.ComparePasswordAndHash(plaintext+h.pepper, hash)
	if err != nil {
		return false, customErrors.WrapInternal(err, "verify password")
	}
	return ok, nil
}

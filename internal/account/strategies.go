package account

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

var emailPattern = regexp.MustCompile(`^[\w.+-]+@([\w-]+\.)+[\w]+$`)

// RegexValidator valida e-mails com uma expressão regular simples
type RegexValidator struct{}

// Valid implementa EmailValidator
func (RegexValidator) Valid(email string) bool {
	return emailPattern.MatchString(email)
}

// PBKDF2Hasher gera hashes PBKDF2-SHA512 no formato
// $pbkdf2-sha512$<rodadas>$<sal>$<hash>, com base64 sem padding.
type PBKDF2Hasher struct {
	Rounds  int
	SaltLen int
	KeyLen  int
}

const hashPrefix = "$pbkdf2-sha512$"

// NewPBKDF2Hasher cria um hasher com os parâmetros padrão
func NewPBKDF2Hasher() PBKDF2Hasher {
	return PBKDF2Hasher{Rounds: 25000, SaltLen: 16, KeyLen: 64}
}

// Hash implementa Hasher
func (h PBKDF2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := pbkdf2.Key([]byte(password), salt, h.Rounds, h.KeyLen, sha512.New)
	return fmt.Sprintf("%s%d$%s$%s", hashPrefix, h.Rounds,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// Verify implementa Hasher
func (h PBKDF2Hasher) Verify(candidate, stored string) bool {
	if !strings.HasPrefix(stored, hashPrefix) {
		return false
	}
	parts := strings.Split(strings.TrimPrefix(stored, hashPrefix), "$")
	if len(parts) != 3 {
		return false
	}
	rounds, err := strconv.Atoi(parts[0])
	if err != nil || rounds < 1 {
		return false
	}
	salt, err := b64.DecodeString(parts[1])
	if err != nil {
		return false
	}
	want, err := b64.DecodeString(parts[2])
	if err != nil || len(want) == 0 {
		return false
	}
	got := pbkdf2.Key([]byte(candidate), salt, rounds, len(want), sha512.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

var b64 = base64.RawStdEncoding

// ClientHash aplica o hash SHA-512 que os front ends fazem antes de
// enviar a senha, para que a senha em texto puro nunca chegue ao Manager.
func ClientHash(password string) string {
	sum := sha512.Sum512([]byte(password))
	return hex.EncodeToString(sum[:])
}

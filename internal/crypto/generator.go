package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math/big"
	"strconv"

	"golang.org/x/crypto/pbkdf2"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"
	symbolChars    = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

	MinLength = 5
	MaxLength = 35

	iterations = 100000
	keyLength  = 32
)

var (
	ErrLengthTooShort     = errors.New("password length must be at least 5")
	ErrLengthTooLong      = errors.New("password length must be at most 35")
	ErrNoCharacterTypes   = errors.New("at least one character type must be selected")
	ErrLengthInsufficient = errors.New("password length must be at least equal to the number of selected character types")
	ErrInvalidCounter     = errors.New("counter must be at least 1")
)

// GeneratePassword derives a LessPass v2 password. Identical inputs always yield the same password.
func GeneratePassword(site, login string, master []byte, p PasswordProfile) (string, error) {
	if err := p.validate(); err != nil {
		return "", err
	}

	entropy := calcEntropy(site, login, master, p.Counter)
	return renderPassword(entropy, p), nil
}

func (p PasswordProfile) validate() error {
	if p.Length < MinLength {
		return ErrLengthTooShort
	}
	if p.Length > MaxLength {
		return ErrLengthTooLong
	}
	rules := p.charsets()
	if len(rules) == 0 {
		return ErrNoCharacterTypes
	}
	if p.Length < len(rules) {
		return ErrLengthInsufficient
	}
	if p.Counter < 1 {
		return ErrInvalidCounter
	}
	return nil
}

// charsets lists the selected character classes in their fixed rendering order.
func (p PasswordProfile) charsets() []string {
	var sets []string
	if p.Lowercase {
		sets = append(sets, lowercaseChars)
	}
	if p.Uppercase {
		sets = append(sets, uppercaseChars)
	}
	if p.Digits {
		sets = append(sets, digitChars)
	}
	if p.Symbols {
		sets = append(sets, symbolChars)
	}
	return sets
}

// calcEntropy runs PBKDF2-HMAC-SHA256 over site+login+hex(counter) and reads the key as a big integer.
func calcEntropy(site, login string, master []byte, counter int) *big.Int {
	salt := site + login + strconv.FormatInt(int64(counter), 16)
	key := pbkdf2.Key(master, []byte(salt), iterations, keyLength, sha256.New)

	entropy, _ := new(big.Int).SetString(hex.EncodeToString(key), 16)
	return entropy
}

func renderPassword(entropy *big.Int, p PasswordProfile) string {
	rules := p.charsets()

	var pool string
	for _, set := range rules {
		pool += set
	}

	password, entropy := consumeEntropy("", entropy, pool, p.Length-len(rules))

	// One character from each selected class guarantees every class appears.
	var required string
	for _, set := range rules {
		var ch string
		ch, entropy = consumeEntropy("", entropy, set, 1)
		required += ch
	}

	return insertPseudoRandomly(password, entropy, required)
}

// consumeEntropy appends characters from charset to password until it reaches maxLength,
// each pick being the remainder of dividing the entropy by len(charset).
func consumeEntropy(password string, quotient *big.Int, charset string, maxLength int) (string, *big.Int) {
	base := big.NewInt(int64(len(charset)))
	buf := []byte(password)
	q := new(big.Int).Set(quotient)
	r := new(big.Int)

	for len(buf) < maxLength {
		q.DivMod(q, base, r)
		buf = append(buf, charset[r.Int64()])
	}
	return string(buf), q
}

// insertPseudoRandomly splices each character of chars into password at an entropy-driven position.
func insertPseudoRandomly(password string, entropy *big.Int, chars string) string {
	buf := []byte(password)
	q := new(big.Int).Set(entropy)
	r := new(big.Int)

	for i := 0; i < len(chars); i++ {
		q.DivMod(q, big.NewInt(int64(len(buf))), r)
		pos := int(r.Int64())
		buf = append(buf[:pos], append([]byte{chars[i]}, buf[pos:]...)...)
	}
	return string(buf)
}

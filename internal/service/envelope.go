package service

import (
	"strings"

	"github.com/fantabuste/envelope-server-go/internal/util"
)

const sealedPrefix = "enc:v1:"

// envelopeCipher encrypts envelope text at rest when a key is configured.
// Rows written before a key was set stay readable because sealed values
// carry a prefix.
type envelopeCipher struct {
	key string
}

func (c envelopeCipher) seal(text string) (string, error) {
	if c.key == "" || text == "" {
		return text, nil
	}
	sealed, err := util.Encrypt(c.key, text)
	if err != nil {
		return "", err
	}
	return sealedPrefix + sealed, nil
}

func (c envelopeCipher) open(stored string) (string, error) {
	sealed, ok := strings.CutPrefix(stored, sealedPrefix)
	if !ok {
		return stored, nil
	}
	return util.Decrypt(c.key, sealed)
}

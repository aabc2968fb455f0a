package service

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/fantabuste/envelope-server-go/internal/config"
)

// sessionCodeChars drops O, I, 0 and 1 so codes survive being read aloud.
const sessionCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

var sessionCodeAlphabetSize = big.NewInt(int64(len(sessionCodeChars)))

// generateSessionCode draws each character uniformly from sessionCodeChars.
func generateSessionCode() (string, error) {
	code := make([]byte, config.SessionCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, sessionCodeAlphabetSize)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		code[i] = sessionCodeChars[n.Int64()]
	}
	return string(code), nil
}

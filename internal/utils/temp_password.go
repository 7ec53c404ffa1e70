package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateTempPassword produces the human-readable temporary password handed
// to newly provisioned employees: two four-character base-36 segments, the
// first upper-cased, joined with a hyphen and suffixed with "!"
// (e.g. "K3QZ-8fwa!").
func GenerateTempPassword() (string, error) {
	part1, err := randomBase36(4)
	if err != nil {
		return "", err
	}
	part2, err := randomBase36(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s!", strings.ToUpper(part1), part2), nil
}

func randomBase36(length int) (string, error) {
	var sb strings.Builder
	max := big.NewInt(int64(len(base36Alphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random index: %w", err)
		}
		sb.WriteByte(base36Alphabet[n.Int64()])
	}
	return sb.String(), nil
}

package server

import (
	"crypto/rand"
	"encoding/hex"
)

func newToken() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

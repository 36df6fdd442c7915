package models

import (
	"encoding/hex"
	"net"
	"strings"

	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"
)

// ContactMessage is a message left through the contact form.
type ContactMessage struct {
	gorm.Model
	Name       string `gorm:"type:varchar(120);not null"`
	Email      string `gorm:"type:varchar(254);not null;index"`
	Body       string `gorm:"type:text;not null"`
	RemoteHash string `gorm:"type:varchar(64);index"`
}

// HashRemote returns a hex blake2b-256 digest of the host part of addr so
// that messages from the same visitor can be grouped without storing the
// address itself. An empty addr hashes to the empty string.
func HashRemote(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	sum := blake2b.Sum256([]byte(addr))
	return hex.EncodeToString(sum[:])
}

// Package claimcode generates opaque, human-typable claim codes.
package claimcode

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"
	"strings"
)

// Prefix tags every generated code.
const Prefix = "CLAIM-"

// bodyLen is the fixed length of the random portion.
const bodyLen = 8

// New returns a fresh claim code: Prefix plus 8 uppercase base36 characters
// rendered from 48 bits of crypto/rand randomness. Codes are not derivable
// from drop, user, or issuance order.
func New() (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[2:]); err != nil {
		return "", err
	}
	n := binary.BigEndian.Uint64(buf[:]) // top two bytes zero: 48-bit value
	body := strings.ToUpper(strconv.FormatUint(n, 36))
	if len(body) > bodyLen {
		body = body[:bodyLen]
	}
	for len(body) < bodyLen {
		body += "0"
	}
	return Prefix + body, nil
}

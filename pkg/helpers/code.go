package helpers

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// QR code prefixes. A listing code travels with the offer while it
// sits in the marketplace; a secure code replaces it at purchase.
const (
	ListingCodePrefix = "QR-"
	SecureCodePrefix  = "SECURE-QR-"
)

// genCode returns 2*n secure random uppercase hex characters.
func genCode(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

// NewListingCode generates the QR-XXXXXXXX code attached to a fresh listing.
func NewListingCode() (string, error) {
	c, err := genCode(4)
	if err != nil {
		return "", err
	}
	return ListingCodePrefix + c, nil
}

// NewSecureCode generates the SECURE-QR-XXXXXXXX code handed to a buyer.
func NewSecureCode() (string, error) {
	c, err := genCode(4)
	if err != nil {
		return "", err
	}
	return SecureCodePrefix + c, nil
}

// Package auth holds the credential primitives of the store: bcrypt password
// hashing and signed identity tokens for authenticated users.
package auth

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// dummyHashes are compared against when the account does not exist so that
// a miss costs as much as a wrong password. One per cost.
var (
	dummyMu     sync.Mutex
	dummyHashes = map[int][]byte{}
)

// NormalizeCost clamps cost into bcrypt's accepted range; zero selects
// bcrypt.DefaultCost.
func NormalizeCost(cost int) int {
	switch {
	case cost == 0:
		return bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		return bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		return bcrypt.MaxCost
	}
	return cost
}

// HashPassword returns the salted bcrypt hash of pw.
func HashPassword(pw string, cost int) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), NormalizeCost(cost))
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// CheckPassword reports whether pw matches hash. A mismatch is a normal
// outcome and is not an error.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// BurnPasswordCheck spends one comparison against a fixed hash of the given
// cost. Used when the account is unknown.
func BurnPasswordCheck(pw string, cost int) {
	cost = NormalizeCost(cost)

	dummyMu.Lock()
	h, ok := dummyHashes[cost]
	if !ok {
		var err error
		h, err = bcrypt.GenerateFromPassword([]byte("gophcal-dummy-password"), cost)
		if err != nil {
			dummyMu.Unlock()
			return
		}
		dummyHashes[cost] = h
	}
	dummyMu.Unlock()

	_ = bcrypt.CompareHashAndPassword(h, []byte(pw))
}

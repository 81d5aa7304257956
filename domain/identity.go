package domain

import "strings"

// Identity is an opaque handle naming a business or a customer account.
// The identity provider owns it, the core never mutates it.
type Identity string

// Valid reports whether the identity can be used as a storage key.
// NUL is reserved as key separator.
func (i Identity) Valid() bool {
	return i != "" && !strings.ContainsRune(string(i), 0)
}

func (i Identity) String() string { return string(i) }

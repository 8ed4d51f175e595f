package entity

import "strings"

// MinPasswordLength is the shortest password a User accepts.
const MinPasswordLength = 7

// User is identified by its name. Construction never fails; a blank name or
// an unacceptable password leaves the corresponding field empty and the
// user reports !Valid().
type User struct {
	name     string
	password string
}

func NewUser(name, password string) *User {
	u := &User{name: strings.TrimSpace(name)}
	if len(password) >= MinPasswordLength {
		u.password = password
	}
	return u
}

func (u *User) Name() string { return u.name }
func (u *User) Password() string { return u.password }

// Valid reports whether both the name and the password survived
// construction.
func (u *User) Valid() bool {
	return u.name != "" && u.password != ""
}

func (u *User) String() string { return "<User " + u.name + ">" }

func CompareUsers(a, b *User) int {
	return strings.Compare(a.name, b.name)
}

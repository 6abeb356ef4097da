package social

import (
	"fmt"

	"github.com/san-kum/orbsim/internal/orbit"
)

const (
	TagCentralUser orbit.Tag = "central_user"
	TagUser        orbit.Tag = "user"
)

// Gender is M or F.
type Gender string

const (
	Male   Gender = "M"
	Female Gender = "F"
)

// ParseGender accepts M or F.
func ParseGender(s string) (Gender, error) {
	switch g := Gender(s); g {
	case Male, Female:
		return g, nil
	}
	return "", fmt.Errorf("social: unknown gender: %s", s)
}

// Profile is shared by the central user and friends.
type Profile struct {
	Age    int    `json:"age"`
	Gender Gender `json:"gender"`
}

// CentralUser is the owner of the circle.
type CentralUser struct {
	Profile
}

func (c *CentralUser) Tag() orbit.Tag { return TagCentralUser }

func (c *CentralUser) ClonePayload() orbit.Payload {
	cp := *c
	return &cp
}

// User is a friend in the circle.
type User struct {
	Profile
}

func (u *User) Tag() orbit.Tag { return TagUser }

func (u *User) ClonePayload() orbit.Payload {
	cp := *u
	return &cp
}

func init() {
	orbit.RegisterPayload(TagCentralUser, orbit.DecodeJSON[CentralUser]())
	orbit.RegisterPayload(TagUser, orbit.DecodeJSON[User]())
}

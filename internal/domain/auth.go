package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexibleID decodes identifiers the API may send as either a JSON string or
// a JSON number.
type FlexibleID string

func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*id = FlexibleID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = FlexibleID(n.String())
	return nil
}

func (id FlexibleID) String() string { return string(id) }

// User is the profile returned by the auth endpoints.
type User struct {
	ID         FlexibleID `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"name,omitempty"`
	LastName   string     `json:"last_name,omitempty"`
	UserType   UserType   `json:"user_type,omitempty"`
	ChildEmail string     `json:"child_email,omitempty"`
}

// DisplayName returns the user's full name, falling back to the email.
func (u User) DisplayName() string {
	switch {
	case u.Name != "" && u.LastName != "":
		return u.Name + " " + u.LastName
	case u.Name != "":
		return u.Name
	default:
		return u.Email
	}
}

// AuthSession is the locally persisted credential set. The three fields are
// either all set or all empty.
type AuthSession struct {
	AccessToken  string
	RefreshToken string
	UserID       string
}

// Complete reports whether every credential is present.
func (s AuthSession) Complete() bool {
	return s.AccessToken != "" && s.RefreshToken != "" && s.UserID != ""
}

// Empty reports whether no credential is present.
func (s AuthSession) Empty() bool {
	return s.AccessToken == "" && s.RefreshToken == "" && s.UserID == ""
}

// SignupRequest is the JSON body for POST /auth/signup.
type SignupRequest struct {
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Name       string   `json:"name"`
	LastName   string   `json:"last_name"`
	UserType   UserType `json:"user_type"`
	ChildEmail string   `json:"child_email,omitempty"`
}

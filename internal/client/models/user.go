// Package models defines client-side data models exchanged with the
// support-portal backend and cached by the CLI.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// User mirrors the backend user record. Field names follow the backend JSON.
// Only the username is required: the backend stores emails without checking
// their format, so neither may the client.
type User struct {
	ID                   int64     `json:"id,omitempty"`
	UserID               string    `json:"userId,omitempty"`
	FirstName            string    `json:"firstName"`
	LastName             string    `json:"lastName"`
	Username             string    `json:"username" validate:"required"`
	Email                string    `json:"email"`
	ProfileImageURL      string    `json:"profileImageUrl,omitempty"`
	LastLoginDate        Timestamp `json:"lastLoginDate"`
	LastLoginDateDisplay Timestamp `json:"lastLoginDateDisplay"`
	JoinDate             Timestamp `json:"joinDate"`
	Role                 string    `json:"role"`
	Authorities          []string  `json:"authorities,omitempty"`
	Active               bool      `json:"active"`
	NotLocked            bool      `json:"notLocked"`
}

// FullName returns "First Last", trimmed when either part is empty.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// String renders a single listing line.
func (u User) String() string {
	status := "active"
	if !u.Active {
		status = "inactive"
	}
	if !u.NotLocked {
		status += ",locked"
	}
	return fmt.Sprintf("%-16s %-24s %-28s %-16s %s", u.Username, u.FullName(), u.Email, u.Role, status)
}

// Timestamp is a point in time that the backend may encode either as epoch
// milliseconds or as an RFC 3339 string. A JSON null leaves it zero.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON accepts a number (epoch milliseconds), a string or null.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			t.Time = time.Time{}
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			parsed, err = time.Parse("2006-01-02T15:04:05.000-0700", s)
			if err != nil {
				return fmt.Errorf("invalid timestamp %q: %w", s, err)
			}
		}
		t.Time = parsed
		return nil
	}

	ms, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", b, err)
	}
	t.Time = time.UnixMilli(ms).UTC()
	return nil
}

// MarshalJSON writes epoch milliseconds, or null for the zero time.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}

package models

import "strings"

// User is a registered account. Password is kept verbatim.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// Session is the non-sensitive projection of the authenticated User.
type Session struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session returns the projection stored at login.
func (u User) Session() Session {
	return Session{Name: u.Name, Email: u.Email, Role: u.Role}
}

// FirstName is the first word of Name, used in greetings.
func (s Session) FirstName() string {
	fields := strings.Fields(s.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// NormalizeEmail trims and lowercases an address; emails are compared in
// this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

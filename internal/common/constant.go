// Package common contains shared constants and sentinel errors used across
// AgriLink components.
package common

// Storage keys of the local state tables. They are a stable contract: data
// written by earlier builds must stay readable.
const (
	KeyUsers    = "agrilink_users"
	KeyAuth     = "agrilink_auth"
	KeyProducts = "agrilink_products"
	KeyLang     = "agrilink_lang"
)

// Entry points used as redirect targets.
const (
	EntryHome      = "./index.html"
	EntryLogin     = "./login.html"
	EntryRegister  = "./register.html"
	EntryDashboard = "./dashboard.html"
)

// RequestIDHeaderName carries the per-request id assigned by the shell server.
const RequestIDHeaderName = "X-Request-Id"

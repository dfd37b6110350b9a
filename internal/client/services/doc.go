// Package services holds the client's application services. They implement
// the account, product and locale operations on top of the local state
// store and are what the CLI commands call.
package services

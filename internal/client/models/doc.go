// Package models defines the records persisted by the local state store.
//
// JSON field names are part of the storage contract and match what earlier
// builds of the application wrote.
package models

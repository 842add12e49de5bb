// Package types defines the phone book entities, their field validators,
// the Config consumed by the storage backends, and the standard errors
// shared by every layer of the system.
package types

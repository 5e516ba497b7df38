// Package types defines the entity types, the Entity contract, configuration
// and the standard errors shared by the registers store, persistence adapters
// and CLI.
package types

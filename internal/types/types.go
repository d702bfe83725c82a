// internal/types/types.go
package types

// EntityID identifies an enemy, tower or bullet. Zero is never issued.
type EntityID uint64

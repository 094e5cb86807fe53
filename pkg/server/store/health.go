package store

// HealthStore abstracts the health check against the backing store
type HealthStore interface {
	// Ping verifies the store is reachable.
	Ping() error
}

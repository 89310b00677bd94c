package querycache

// strategy tracks the ordering or frequency metadata behind one eviction
// policy. The engine calls it with its lock held; implementations need no
// locking of their own.
type strategy interface {
	// onInsert records key as freshly set. Called for new inserts and
	// overwrites alike; overwrite tells the strategy which one it is.
	onInsert(key string, overwrite bool)

	// onAccess records a Get hit on key.
	onAccess(key string)

	// onRemove forgets key after invalidation, expiry, or eviction.
	onRemove(key string)

	// victim returns the key to evict. Only called when at least one entry
	// is present.
	victim() string

	// reset forgets all keys.
	reset()
}

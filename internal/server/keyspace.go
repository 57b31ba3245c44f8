package server

import (
	"sync"
	"time"
)

const (
	DatabaseCount       = 16
	MaxCleanupBatchSize = 1000
)

type (
	entry struct {
		value    []byte
		expireAt time.Time
	}

	// Keyspace holds string values per logical database. Every method
	// expects the caller to hold the lock; one lock covers the whole store
	// so that commands and scripts observe each other atomically.
	Keyspace struct {
		databases [DatabaseCount]map[string]*entry
		now       func() time.Time
		sync.Mutex
	}
)

func NewKeyspace() *Keyspace {
	keyspace := &Keyspace{now: time.Now}

	for index := range keyspace.databases {
		keyspace.databases[index] = make(map[string]*entry)
	}

	return keyspace
}

func (entry *entry) volatile() bool {
	return !entry.expireAt.IsZero()
}

func (entry *entry) expiredAt(now time.Time) bool {
	return entry.volatile() && !now.Before(entry.expireAt)
}

// lookup drops the key on access when it has already expired.
func (keyspace *Keyspace) lookup(database int, key string) (*entry, bool) {
	found, exists := keyspace.databases[database][key]

	if !exists {
		return nil, false
	}

	if found.expiredAt(keyspace.now()) {
		delete(keyspace.databases[database], key)
		return nil, false
	}

	return found, true
}

func (keyspace *Keyspace) store(database int, key string, value *entry) {
	keyspace.databases[database][key] = value
}

func (keyspace *Keyspace) remove(database int, key string) bool {
	if _, exists := keyspace.lookup(database, key); !exists {
		return false
	}

	delete(keyspace.databases[database], key)
	return true
}

func (keyspace *Keyspace) flush(database int) {
	keyspace.databases[database] = make(map[string]*entry)
}

func (keyspace *Keyspace) flushAll() {
	for index := range keyspace.databases {
		keyspace.flush(index)
	}
}

// sweep removes up to MaxCleanupBatchSize expired keys and reports how many
// went away.
func (keyspace *Keyspace) sweep() int {
	now := keyspace.now()
	removed := 0

	for index := range keyspace.databases {
		for key, found := range keyspace.databases[index] {
			if removed == MaxCleanupBatchSize {
				return removed
			}

			if found.expiredAt(now) {
				delete(keyspace.databases[index], key)
				removed++
			}
		}
	}

	return removed
}

// Size counts the live keys of a database.
func (keyspace *Keyspace) Size(database int) int {
	keyspace.Lock()
	defer keyspace.Unlock()

	now := keyspace.now()
	size := 0

	for _, found := range keyspace.databases[database] {
		if !found.expiredAt(now) {
			size++
		}
	}

	return size
}

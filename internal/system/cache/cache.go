/*
 * Copyright (c) 2026, DonorBridge LLC. (https://www.donorbridge.io).
 *
 * DonorBridge LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package cache

import (
	"sync"
	"time"
)

// sweepInterval bounds how often Set scans for expired entries, so a cache
// that is only ever written still sheds stale entries.
const sweepInterval = time.Minute

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Cache is an explicit TTL cache. Consumers own their instance; there is no
// shared module-level cache state.
type Cache struct {
	mutex     sync.RWMutex
	entries   map[string]entry
	ttl       time.Duration
	lastSweep time.Time
}

// NewCache creates a cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries:   make(map[string]entry),
		ttl:       ttl,
		lastSweep: time.Now(),
	}
}

// Set stores a value under key, replacing any previous entry.
func (c *Cache) Set(key string, value interface{}) {

	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	c.entries[key] = entry{value: value, expiresAt: now.Add(c.ttl)}
	if now.Sub(c.lastSweep) >= sweepInterval {
		c.sweepLocked(now)
	}
}

// Get returns the value stored under key, or false when the key is absent
// or its entry has expired.
func (c *Cache) Get(key string) (interface{}, bool) {

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	e, found := c.entries[key]
	if !found || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Delete removes the entry stored under key, if any.
func (c *Cache) Delete(key string) {

	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, key)
}

// Flush removes every entry.
func (c *Cache) Flush() {

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]entry)
}

// sweepLocked drops expired entries. Callers hold the write lock.
func (c *Cache) sweepLocked(now time.Time) {
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.lastSweep = now
}

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

// Package cache holds the candidate-list cache: an explicit TTL cache
// component with invalidation hooks, invalidated whenever a contact is
// merged or mutated.
package cache

import (
	"sync"
	"time"

	"github.com/donorbridge/contact-data-service/internal/dedup/finder"
	syscache "github.com/donorbridge/contact-data-service/internal/system/cache"
	"github.com/donorbridge/contact-data-service/internal/system/config"
)

var (
	candidateCache *syscache.Cache
	once           sync.Once
)

func getCache() *syscache.Cache {

	once.Do(func() {
		ttl := 300
		if config.IsInitialized() {
			ttl = config.GetCDSRuntime().Config.Dedup.CandidateCacheTTLSeconds
		}
		candidateCache = syscache.NewCache(time.Duration(ttl) * time.Second)
	})
	return candidateCache
}

func cacheKey(accountID, contactID string) string {

	return accountID + ":" + contactID
}

// Get returns the cached candidate list for a contact, if present and fresh.
func Get(accountID, contactID string) ([]finder.ScoredCandidate, bool) {

	value, found := getCache().Get(cacheKey(accountID, contactID))
	if !found {
		return nil, false
	}
	candidates, ok := value.([]finder.ScoredCandidate)
	return candidates, ok
}

// Put stores a candidate list for a contact.
func Put(accountID, contactID string, candidates []finder.ScoredCandidate) {

	getCache().Set(cacheKey(accountID, contactID), candidates)
}

// InvalidateContact drops the cached candidates for a single contact.
func InvalidateContact(accountID, contactID string) {

	getCache().Delete(cacheKey(accountID, contactID))
}

// InvalidateAccount drops every cached candidate list. Merges change the
// candidate sets of contacts other than the merged pair, so account-level
// events flush the whole cache.
func InvalidateAccount(accountID string) {

	getCache().Flush()
}

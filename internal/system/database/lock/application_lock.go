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

package lock

import (
	"database/sql"
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/donorbridge/contact-data-service/internal/system/database/client"
	"github.com/donorbridge/contact-data-service/internal/system/errors"
	"github.com/donorbridge/contact-data-service/internal/system/log"
)

// GenerateLockKey hashes a string lock key to the bigint keyspace used by
// PostgreSQL advisory locks.
func GenerateLockKey(key string) (int64, error) {

	logger := log.GetLogger()
	h := fnv.New64a()
	_, err := h.Write([]byte(key))
	if err != nil {
		errorMsg := fmt.Sprintf("failed to hash lock key '%s'", key)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_KEY_GEN.Code,
			Message:     errors.LOCK_KEY_GEN.Message,
			Description: errorMsg,
		}, err)
		return 0, serverError
	}
	return int64(h.Sum64()), nil
}

// AcquireContactLocksTx takes transaction-scoped advisory locks for the given
// contact ids inside an open transaction. Lock keys are taken in sorted order
// so concurrent merges touching overlapping contacts cannot deadlock. The
// locks are released automatically on commit or rollback.
//
// Returns false without error when any lock is already held elsewhere; the
// caller surfaces that as a conflict, not as a failure.
func AcquireContactLocksTx(tx *sql.Tx, contactIDs ...string) (bool, error) {

	logger := log.GetLogger()

	keys := make([]int64, 0, len(contactIDs))
	for _, id := range contactIDs {
		lockID, err := GenerateLockKey("contact:" + id)
		if err != nil {
			return false, err
		}
		keys = append(keys, lockID)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, lockID := range keys {
		results, err := client.QueryTx(tx, "SELECT pg_try_advisory_xact_lock($1)", lockID)
		if err != nil {
			errorMsg := "Failed to execute pg_try_advisory_xact_lock"
			logger.Error(errorMsg, log.Error(err))
			return false, errors.NewServerError(errors.ErrorMessage{
				Code:        errors.LOCK_ACQUIRE.Code,
				Message:     errors.LOCK_ACQUIRE.Message,
				Description: errorMsg,
			}, err)
		}
		if len(results) == 0 || results[0]["pg_try_advisory_xact_lock"] == nil {
			errorMsg := fmt.Sprintf("pg_try_advisory_xact_lock returned no results for lock Id %d", lockID)
			logger.Error(errorMsg)
			return false, errors.NewServerError(errors.ErrorMessage{
				Code:        errors.LOCK_RESULT_INVALID.Code,
				Message:     errors.LOCK_RESULT_INVALID.Message,
				Description: errorMsg,
			}, nil)
		}
		acquired, ok := results[0]["pg_try_advisory_xact_lock"].(bool)
		if !ok {
			errorMsg := fmt.Sprintf("pg_try_advisory_xact_lock returned a non-boolean for lock Id %d", lockID)
			logger.Error(errorMsg)
			return false, errors.NewServerError(errors.ErrorMessage{
				Code:        errors.LOCK_RESULT_INVALID.Code,
				Message:     errors.LOCK_RESULT_INVALID.Message,
				Description: errorMsg,
			}, nil)
		}
		if !acquired {
			logger.Debug(fmt.Sprintf("Advisory lock contention for lock Id: %d", lockID))
			return false, nil
		}
	}
	return true, nil
}

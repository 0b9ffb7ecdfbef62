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

package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/donorbridge/contact-data-service/internal/dedup/model"
	"github.com/donorbridge/contact-data-service/internal/system/database/provider"
	errors2 "github.com/donorbridge/contact-data-service/internal/system/errors"
	"github.com/donorbridge/contact-data-service/internal/system/log"
)

const uniqueViolation = pq.ErrorCode("23505")

// RecordMatch inserts a pending duplicate match for the normalized pair.
// Returns false when an unresolved match already exists for the pair, either
// found up front or detected as a unique-constraint violation when two
// detection runs race; the losing insert is not an error.
func RecordMatch(match model.DuplicateMatch) (bool, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for recording a duplicate match"
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	contactA, contactB := model.NormalizePair(match.ContactAID, match.ContactBID)

	existing, err := dbClient.ExecuteQuery(
		`SELECT match_id FROM duplicate_matches
		 WHERE contact_a_id = $1 AND contact_b_id = $2 AND resolved = false;`,
		contactA, contactB)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed checking for an existing pending match for pair (%s, %s)",
			contactA, contactB)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.RECORD_MATCH.Code,
			Message:     errors2.RECORD_MATCH.Message,
			Description: errorMsg,
		}, err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	query := `
		INSERT INTO duplicate_matches (
			match_id, account_id, contact_a_id, contact_b_id, confidence_score,
			name_score, email_score, phone_score, address_score, resolved, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false, $10);`

	_, err = dbClient.ExecuteStatement(query,
		match.MatchID,
		match.AccountID,
		contactA,
		contactB,
		match.ConfidenceScore,
		match.NameScore,
		match.EmailScore,
		match.PhoneScore,
		match.AddressScore,
		time.Now().UTC(),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			// A concurrent run recorded the pair first; treat as already recorded.
			logger.Debug(fmt.Sprintf("Pending match for pair (%s, %s) already recorded", contactA, contactB))
			return false, nil
		}
		errorMsg := fmt.Sprintf("Failed inserting duplicate match for pair (%s, %s)", contactA, contactB)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.RECORD_MATCH.Code,
			Message:     errors2.RECORD_MATCH.Message,
			Description: errorMsg,
		}, err)
	}
	return true, nil
}

// GetMatch retrieves a duplicate match by id. Returns nil without error when
// no match exists.
func GetMatch(matchID string) (*model.DuplicateMatch, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching match: %s", matchID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(
		`SELECT match_id, account_id, contact_a_id, contact_b_id, confidence_score,
		        name_score, email_score, phone_score, address_score, resolved,
		        reviewed_by, reviewed_at, created_at
		 FROM duplicate_matches WHERE match_id = $1;`, matchID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed fetching duplicate match: %s", matchID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_MATCHES.Code,
			Message:     errors2.FETCH_MATCHES.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	match := scanMatchRow(results[0])
	return &match, nil
}

// ListPending retrieves a page of unresolved matches for the account in
// descending confidence order.
func ListPending(accountID string, limit, offset, minConfidence int) ([]model.DuplicateMatch, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for listing matches for account: %s", accountID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(
		`SELECT match_id, account_id, contact_a_id, contact_b_id, confidence_score,
		        name_score, email_score, phone_score, address_score, resolved,
		        reviewed_by, reviewed_at, created_at
		 FROM duplicate_matches
		 WHERE account_id = $1 AND resolved = false AND confidence_score >= $2
		 ORDER BY confidence_score DESC, created_at DESC
		 LIMIT $3 OFFSET $4;`, accountID, minConfidence, limit, offset)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed listing pending matches for account: %s", accountID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_MATCHES.Code,
			Message:     errors2.FETCH_MATCHES.Message,
			Description: errorMsg,
		}, err)
	}

	matches := make([]model.DuplicateMatch, 0, len(results))
	for _, row := range results {
		matches = append(matches, scanMatchRow(row))
	}
	return matches, nil
}

// CountPending returns the number of unresolved matches for the account at
// or above the confidence floor.
func CountPending(accountID string, minConfidence int) (int, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for counting matches for account: %s", accountID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(
		`SELECT COUNT(*) AS total FROM duplicate_matches
		 WHERE account_id = $1 AND resolved = false AND confidence_score >= $2;`,
		accountID, minConfidence)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed counting pending matches for account: %s", accountID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_MATCHES.Code,
			Message:     errors2.FETCH_MATCHES.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return asInt(results[0]["total"]), nil
}

// ListPendingPairs returns the set of normalized pending pairs for the
// account, keyed "a|b". Detection scans use it to skip pairs already
// awaiting review.
func ListPendingPairs(accountID string) (map[string]bool, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching pending pairs for account: %s", accountID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(
		`SELECT contact_a_id, contact_b_id FROM duplicate_matches
		 WHERE account_id = $1 AND resolved = false;`, accountID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed fetching pending pairs for account: %s", accountID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_MATCHES.Code,
			Message:     errors2.FETCH_MATCHES.Message,
			Description: errorMsg,
		}, err)
	}

	pairs := make(map[string]bool, len(results))
	for _, row := range results {
		pairs[PairKey(asString(row["contact_a_id"]), asString(row["contact_b_id"]))] = true
	}
	return pairs, nil
}

// PairKey builds the normalized lookup key for an unordered contact pair.
func PairKey(id1, id2 string) string {

	a, b := model.NormalizePair(id1, id2)
	return a + "|" + b
}

// ResolveMatch flips a pending match to resolved with reviewer attribution.
// Returns the number of rows updated: zero means the match was missing or
// already resolved.
func ResolveMatch(matchID, reviewer string) (int64, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for resolving match: %s", matchID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	affected, err := dbClient.ExecuteStatement(
		`UPDATE duplicate_matches
		 SET resolved = true, reviewed_by = $1, reviewed_at = $2
		 WHERE match_id = $3 AND resolved = false;`,
		reviewer, time.Now().UTC(), matchID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed resolving duplicate match: %s", matchID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.RESOLVE_MATCH.Code,
			Message:     errors2.RESOLVE_MATCH.Message,
			Description: errorMsg,
		}, err)
	}
	return affected, nil
}

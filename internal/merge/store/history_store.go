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
	"fmt"
	"time"

	"github.com/donorbridge/contact-data-service/internal/dedup/model"
	"github.com/donorbridge/contact-data-service/internal/system/database/provider"
	errors2 "github.com/donorbridge/contact-data-service/internal/system/errors"
	"github.com/donorbridge/contact-data-service/internal/system/log"
)

// ListMergeHistory retrieves a page of the account's merge audit records,
// newest first.
func ListMergeHistory(accountID string, limit, offset int) ([]model.MergeHistory, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching merge history for account: %s", accountID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(
		`SELECT history_id, account_id, primary_contact_id, merged_contact_id,
		        merged_by, primary_display_name, merged_display_name, merged_at
		 FROM merge_history
		 WHERE account_id = $1
		 ORDER BY merged_at DESC
		 LIMIT $2 OFFSET $3;`, accountID, limit, offset)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed fetching merge history for account: %s", accountID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_MERGE_HISTORY.Code,
			Message:     errors2.ADD_MERGE_HISTORY.Message,
			Description: errorMsg,
		}, err)
	}

	history := make([]model.MergeHistory, 0, len(results))
	for _, row := range results {
		history = append(history, model.MergeHistory{
			HistoryID:          asString(row["history_id"]),
			AccountID:          asString(row["account_id"]),
			PrimaryContactID:   asString(row["primary_contact_id"]),
			MergedContactID:    asString(row["merged_contact_id"]),
			MergedBy:           asString(row["merged_by"]),
			PrimaryDisplayName: asString(row["primary_display_name"]),
			MergedDisplayName:  asString(row["merged_display_name"]),
			MergedAt:           asTime(row["merged_at"]),
		})
	}
	return history, nil
}

func asString(v interface{}) string {
	switch value := v.(type) {
	case string:
		return value
	case []byte:
		return string(value)
	default:
		return ""
	}
}

func asTime(v interface{}) time.Time {
	value, ok := v.(time.Time)
	if !ok {
		return time.Time{}
	}
	return value
}

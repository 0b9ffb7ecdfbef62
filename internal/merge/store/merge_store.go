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
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	contactmodel "github.com/donorbridge/contact-data-service/internal/contact/model"
	"github.com/donorbridge/contact-data-service/internal/system/database/lock"
	"github.com/donorbridge/contact-data-service/internal/system/database/provider"
	errors2 "github.com/donorbridge/contact-data-service/internal/system/errors"
	"github.com/donorbridge/contact-data-service/internal/system/log"
)

// Tables whose rows move from the secondary to the primary contact. Order is
// not significant; every update happens inside the same transaction.
var childTables = []string{
	"contact_emails",
	"contact_phones",
	"contact_locations",
	"donations",
	"employer_data",
}

// MergeContacts reassigns everything the secondary contact owns to the
// primary, resolves every duplicate match touching either contact, records
// merge history and deletes the secondary row. All of it commits atomically
// or none of it does. The primary contact's own attributes are never
// modified.
func MergeContacts(ctx context.Context, primary, secondary contactmodel.Contact, actingUser string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for merging contacts"
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx(ctx)
	if err != nil {
		return mergeFailed(primary.ContactID, secondary.ContactID, "failed to begin transaction", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Serialize merges touching either contact. The locks live until commit
	// or rollback; a concurrent merge holding either lock surfaces as a
	// conflict for the caller to retry.
	acquired, err := lock.AcquireContactLocksTx(tx, primary.ContactID, secondary.ContactID)
	if err != nil {
		return mergeFailed(primary.ContactID, secondary.ContactID, "advisory lock acquisition failed", err)
	}
	if !acquired {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.MERGE_CONFLICT.Code,
			Message:     errors2.MERGE_CONFLICT.Message,
			Description: fmt.Sprintf("A merge involving contact %s or %s is already in flight", primary.ContactID, secondary.ContactID),
		}, http.StatusConflict)
	}

	// The primary contact keeps its own primary email, phone and location,
	// so the secondary's flags are demoted before its rows move over.
	for _, table := range []string{"contact_emails", "contact_phones", "contact_locations"} {
		query := fmt.Sprintf(`UPDATE %s SET is_primary = false WHERE contact_id = $1;`, table)
		if _, err := tx.ExecContext(ctx, query, secondary.ContactID); err != nil {
			return mergeFailed(primary.ContactID, secondary.ContactID,
				fmt.Sprintf("failed demoting primary flags in %s", table), err)
		}
	}

	// Move every child record the secondary owns.
	for _, table := range childTables {
		query := fmt.Sprintf(`UPDATE %s SET contact_id = $1 WHERE contact_id = $2;`, table)
		if _, err := tx.ExecContext(ctx, query, primary.ContactID, secondary.ContactID); err != nil {
			return mergeFailed(primary.ContactID, secondary.ContactID,
				fmt.Sprintf("failed reassigning %s rows", table), err)
		}
	}

	// Resolve every match referencing either contact so no stale pending
	// match can surface for a deleted record.
	_, err = tx.ExecContext(ctx,
		`UPDATE duplicate_matches
		 SET resolved = true, reviewed_by = $1, reviewed_at = $2
		 WHERE resolved = false AND (contact_a_id = $3 OR contact_b_id = $3
		    OR contact_a_id = $4 OR contact_b_id = $4);`,
		actingUser, time.Now().UTC(), primary.ContactID, secondary.ContactID)
	if err != nil {
		return mergeFailed(primary.ContactID, secondary.ContactID, "failed resolving related duplicate matches", err)
	}

	// Keep user access: move associations, then drop the ones that would
	// duplicate an existing primary association.
	_, err = tx.ExecContext(ctx,
		`UPDATE user_contacts SET contact_id = $1
		 WHERE contact_id = $2
		   AND user_id NOT IN (SELECT user_id FROM user_contacts WHERE contact_id = $1);`,
		primary.ContactID, secondary.ContactID)
	if err != nil {
		return mergeFailed(primary.ContactID, secondary.ContactID, "failed reassigning user associations", err)
	}
	_, err = tx.ExecContext(ctx,
		`DELETE FROM user_contacts WHERE contact_id = $1;`, secondary.ContactID)
	if err != nil {
		return mergeFailed(primary.ContactID, secondary.ContactID, "failed removing duplicate user associations", err)
	}

	if err := insertMergeHistoryTx(ctx, tx, primary, secondary, actingUser); err != nil {
		return mergeFailed(primary.ContactID, secondary.ContactID, "failed recording merge history", err)
	}

	// By now the secondary owns nothing; the cascade on this delete is the
	// integrity backstop, not the mechanism.
	result, err := tx.ExecContext(ctx, `DELETE FROM contacts WHERE contact_id = $1;`, secondary.ContactID)
	if err != nil {
		return mergeFailed(primary.ContactID, secondary.ContactID, "failed deleting secondary contact", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return mergeFailed(primary.ContactID, secondary.ContactID, "secondary contact vanished mid-merge", sql.ErrNoRows)
	}

	if err := tx.Commit(); err != nil {
		return mergeFailed(primary.ContactID, secondary.ContactID, "failed to commit merge transaction", err)
	}
	committed = true

	logger.Info(fmt.Sprintf("Merged contact %s into %s", secondary.ContactID, primary.ContactID))
	return nil
}

func insertMergeHistoryTx(ctx context.Context, tx *sql.Tx, primary, secondary contactmodel.Contact, actingUser string) error {

	_, err := tx.ExecContext(ctx,
		`INSERT INTO merge_history (
			history_id, account_id, primary_contact_id, merged_contact_id,
			merged_by, primary_display_name, merged_display_name, merged_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		uuid.New().String(),
		primary.AccountID,
		primary.ContactID,
		secondary.ContactID,
		actingUser,
		primary.DisplayName(),
		secondary.DisplayName(),
		time.Now().UTC(),
	)
	return err
}

func mergeFailed(primaryID, secondaryID, description string, cause error) error {

	logger := log.GetLogger()
	errorMsg := fmt.Sprintf("Merge of contact %s into %s rolled back: %s", secondaryID, primaryID, description)
	logger.Error(errorMsg, log.Error(cause))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.MERGE_FAILED.Code,
		Message:     errors2.MERGE_FAILED.Message,
		Description: errorMsg,
	}, cause)
}

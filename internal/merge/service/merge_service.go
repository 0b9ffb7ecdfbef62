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

package service

import (
	"context"
	"fmt"
	"net/http"

	contactmodel "github.com/donorbridge/contact-data-service/internal/contact/model"
	contactstore "github.com/donorbridge/contact-data-service/internal/contact/store"
	dedupcache "github.com/donorbridge/contact-data-service/internal/dedup/cache"
	"github.com/donorbridge/contact-data-service/internal/dedup/model"
	"github.com/donorbridge/contact-data-service/internal/merge/store"
	errors2 "github.com/donorbridge/contact-data-service/internal/system/errors"
	"github.com/donorbridge/contact-data-service/internal/system/log"
)

type MergeServiceInterface interface {
	Merge(ctx context.Context, accountID, primaryID, secondaryID, actingUser string) error
	GetMergeHistory(accountID string, limit, offset int) ([]model.MergeHistory, error)
}

// MergeService is the default implementation of the MergeServiceInterface.
type MergeService struct{}

// GetMergeService creates a new instance of MergeService.
func GetMergeService() MergeServiceInterface {

	return &MergeService{}
}

// Merge folds the secondary contact into the primary. Merges are
// user-initiated, at-most-once actions: failures surface to the caller and
// are never retried automatically.
func (ms *MergeService) Merge(ctx context.Context, accountID, primaryID, secondaryID, actingUser string) error {

	if primaryID == secondaryID {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_MERGE_PAIR.Code,
			Message:     errors2.INVALID_MERGE_PAIR.Message,
			Description: fmt.Sprintf("Contact %s cannot be merged into itself", primaryID),
		}, http.StatusConflict)
	}

	primary, err := loadContact(accountID, primaryID)
	if err != nil {
		return err
	}
	secondary, err := loadContact(accountID, secondaryID)
	if err != nil {
		return err
	}

	if err := store.MergeContacts(ctx, *primary, *secondary, actingUser); err != nil {
		return err
	}

	// Candidate lists computed before the merge may reference the deleted
	// contact.
	dedupcache.InvalidateAccount(accountID)

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID: actingUser,
		TargetID:    primaryID,
		TargetType:  "contact",
		ActionID:    log.ActionMergeContacts,
		Data:        map[string]string{"merged_contact_id": secondaryID},
	})
	return nil
}

// GetMergeHistory returns the account's merge audit records.
func (ms *MergeService) GetMergeHistory(accountID string, limit, offset int) ([]model.MergeHistory, error) {

	return store.ListMergeHistory(accountID, limit, offset)
}

func loadContact(accountID, contactID string) (*contactmodel.Contact, error) {

	contact, err := contactstore.GetContact(contactID)
	if err != nil {
		return nil, err
	}
	if contact == nil || contact.AccountID != accountID {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.CONTACT_NOT_FOUND.Code,
			Message:     errors2.CONTACT_NOT_FOUND.Message,
			Description: fmt.Sprintf("No contact found with Id: %s", contactID),
		}, http.StatusNotFound)
	}
	return contact, nil
}

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
	"fmt"
	"net/http"

	"github.com/donorbridge/contact-data-service/internal/contact/model"
	"github.com/donorbridge/contact-data-service/internal/contact/store"
	dedupcache "github.com/donorbridge/contact-data-service/internal/dedup/cache"
	errors2 "github.com/donorbridge/contact-data-service/internal/system/errors"
)

type ContactServiceInterface interface {
	GetContact(accountID, contactID string) (*model.Contact, error)
	ListContactsForAccount(accountID string, limit, offset int) ([]model.Contact, error)
	CountContactsForAccount(accountID string) (int, error)
	SetPrimaryEmail(accountID, contactID, emailID string) error
	SetPrimaryPhone(accountID, contactID, phoneID string) error
	SetPrimaryLocation(accountID, contactID, locationID string) error
}

// ContactService is the default implementation of the ContactServiceInterface.
type ContactService struct{}

// GetContactService creates a new instance of ContactService.
func GetContactService() ContactServiceInterface {

	return &ContactService{}
}

// GetContact fetches a contact scoped to the requesting account.
func (cs *ContactService) GetContact(accountID, contactID string) (*model.Contact, error) {

	contact, err := store.GetContact(contactID)
	if err != nil {
		return nil, err
	}
	if contact == nil || contact.AccountID != accountID {
		return nil, contactNotFound(contactID)
	}
	return contact, nil
}

// ListContactsForAccount fetches a chunk of the account's contacts.
func (cs *ContactService) ListContactsForAccount(accountID string, limit, offset int) ([]model.Contact, error) {

	return store.ListContactsForAccount(accountID, limit, offset)
}

// CountContactsForAccount returns the account's contact count.
func (cs *ContactService) CountContactsForAccount(accountID string) (int, error) {

	return store.CountContactsForAccount(accountID)
}

// SetPrimaryEmail marks one of the contact's emails as primary.
func (cs *ContactService) SetPrimaryEmail(accountID, contactID, emailID string) error {

	if _, err := cs.GetContact(accountID, contactID); err != nil {
		return err
	}
	if err := store.SetPrimaryEmail(contactID, emailID); err != nil {
		return err
	}
	// Cached candidate lists hold a snapshot of the mutated contact.
	dedupcache.InvalidateContact(accountID, contactID)
	return nil
}

// SetPrimaryPhone marks one of the contact's phones as primary.
func (cs *ContactService) SetPrimaryPhone(accountID, contactID, phoneID string) error {

	if _, err := cs.GetContact(accountID, contactID); err != nil {
		return err
	}
	if err := store.SetPrimaryPhone(contactID, phoneID); err != nil {
		return err
	}
	dedupcache.InvalidateContact(accountID, contactID)
	return nil
}

// SetPrimaryLocation marks one of the contact's locations as primary.
func (cs *ContactService) SetPrimaryLocation(accountID, contactID, locationID string) error {

	if _, err := cs.GetContact(accountID, contactID); err != nil {
		return err
	}
	if err := store.SetPrimaryLocation(contactID, locationID); err != nil {
		return err
	}
	dedupcache.InvalidateContact(accountID, contactID)
	return nil
}

func contactNotFound(contactID string) error {

	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.CONTACT_NOT_FOUND.Code,
		Message:     errors2.CONTACT_NOT_FOUND.Message,
		Description: fmt.Sprintf("No contact found with Id: %s", contactID),
	}, http.StatusNotFound)
}

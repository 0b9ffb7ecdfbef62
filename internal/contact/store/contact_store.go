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

	"github.com/lib/pq"

	"github.com/donorbridge/contact-data-service/internal/contact/model"
	"github.com/donorbridge/contact-data-service/internal/system/database/provider"
	errors2 "github.com/donorbridge/contact-data-service/internal/system/errors"
	"github.com/donorbridge/contact-data-service/internal/system/log"
)

// GetContact retrieves a contact with all child records hydrated. Returns
// nil without error when no contact exists for the given id.
func GetContact(contactID string) (*model.Contact, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client while fetching contact with Id: %s", contactID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `
		SELECT contact_id, account_id, first_name, last_name, status, created_at, updated_at
		FROM contacts
		WHERE contact_id = $1;`

	results, err := dbClient.ExecuteQuery(query, contactID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed fetching contact with Id: %s", contactID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_CONTACT.Code,
			Message:     errors2.GET_CONTACT.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		logger.Debug(fmt.Sprintf("No contact found with the given Id: %s", contactID))
		return nil, nil
	}

	contact := scanContactRow(results[0])
	contacts := []model.Contact{contact}
	if err := hydrateChildren(dbClient.ExecuteQuery, contacts); err != nil {
		return nil, err
	}
	return &contacts[0], nil
}

// ListContactsForAccount retrieves a chunk of contacts owned by the account,
// children hydrated, ordered by most recent update first.
func ListContactsForAccount(accountID string, limit, offset int) ([]model.Contact, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for listing contacts for account: %s", accountID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `
		SELECT contact_id, account_id, first_name, last_name, status, created_at, updated_at
		FROM contacts
		WHERE account_id = $1
		ORDER BY updated_at DESC, contact_id
		LIMIT $2 OFFSET $3;`

	results, err := dbClient.ExecuteQuery(query, accountID, limit, offset)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed listing contacts for account: %s", accountID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.LIST_CONTACTS.Code,
			Message:     errors2.LIST_CONTACTS.Message,
			Description: errorMsg,
		}, err)
	}

	contacts := make([]model.Contact, 0, len(results))
	for _, row := range results {
		contacts = append(contacts, scanContactRow(row))
	}
	if err := hydrateChildren(dbClient.ExecuteQuery, contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// CountContactsForAccount returns the number of contacts owned by the account.
func CountContactsForAccount(accountID string) (int, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for counting contacts for account: %s", accountID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(
		`SELECT COUNT(*) AS total FROM contacts WHERE account_id = $1;`, accountID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed counting contacts for account: %s", accountID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.LIST_CONTACTS.Code,
			Message:     errors2.LIST_CONTACTS.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return asInt(results[0]["total"]), nil
}

// SetPrimaryEmail marks one email as the contact's primary address using the
// reset-then-set pattern so at most one primary row exists per contact.
func SetPrimaryEmail(contactID, emailID string) error {
	return setPrimaryChild("contact_emails", "email_id", contactID, emailID)
}

// SetPrimaryPhone marks one phone as the contact's primary number.
func SetPrimaryPhone(contactID, phoneID string) error {
	return setPrimaryChild("contact_phones", "phone_id", contactID, phoneID)
}

// SetPrimaryLocation marks one location as the contact's primary address.
func SetPrimaryLocation(contactID, locationID string) error {
	return setPrimaryChild("contact_locations", "location_id", contactID, locationID)
}

func setPrimaryChild(table, idColumn, contactID, childID string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for updating primary flag on %s", table)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	// Reset all primaries for the contact, then set exactly one.
	resetQuery := fmt.Sprintf(`UPDATE %s SET is_primary = false WHERE contact_id = $1;`, table)
	if _, err := dbClient.ExecuteStatement(resetQuery, contactID); err != nil {
		errorMsg := fmt.Sprintf("Failed resetting primary flags on %s for contact: %s", table, contactID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_CONTACT.Code,
			Message:     errors2.UPDATE_CONTACT.Message,
			Description: errorMsg,
		}, err)
	}

	setQuery := fmt.Sprintf(`UPDATE %s SET is_primary = true WHERE contact_id = $1 AND %s = $2;`, table, idColumn)
	affected, err := dbClient.ExecuteStatement(setQuery, contactID, childID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed setting primary flag on %s for contact: %s", table, contactID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_CONTACT.Code,
			Message:     errors2.UPDATE_CONTACT.Message,
			Description: errorMsg,
		}, err)
	}
	if affected == 0 {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.CONTACT_NOT_FOUND.Code,
			Message:     errors2.CONTACT_NOT_FOUND.Message,
			Description: fmt.Sprintf("No %s row %s belongs to contact %s", table, childID, contactID),
		}, 404)
	}
	return nil
}

type queryFunc func(query string, args ...interface{}) ([]map[string]interface{}, error)

// hydrateChildren loads all child tables for the given contacts in one query
// per table and attaches the rows to their owners.
func hydrateChildren(execute queryFunc, contacts []model.Contact) error {

	if len(contacts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(contacts))
	index := make(map[string]*model.Contact, len(contacts))
	for i := range contacts {
		ids = append(ids, contacts[i].ContactID)
		index[contacts[i].ContactID] = &contacts[i]
	}

	logger := log.GetLogger()
	childError := func(table string, err error) error {
		errorMsg := fmt.Sprintf("Failed fetching %s rows for contacts", table)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_CONTACT.Code,
			Message:     errors2.GET_CONTACT.Message,
			Description: errorMsg,
		}, err)
	}

	rows, err := execute(
		`SELECT email_id, contact_id, address, type, is_primary
		 FROM contact_emails WHERE contact_id = ANY($1);`, pq.Array(ids))
	if err != nil {
		return childError("contact_emails", err)
	}
	for _, row := range rows {
		owner := index[asString(row["contact_id"])]
		owner.Emails = append(owner.Emails, model.Email{
			EmailID:   asString(row["email_id"]),
			ContactID: asString(row["contact_id"]),
			Address:   asString(row["address"]),
			Type:      asString(row["type"]),
			IsPrimary: asBool(row["is_primary"]),
		})
	}

	rows, err = execute(
		`SELECT phone_id, contact_id, number, type, is_primary
		 FROM contact_phones WHERE contact_id = ANY($1);`, pq.Array(ids))
	if err != nil {
		return childError("contact_phones", err)
	}
	for _, row := range rows {
		owner := index[asString(row["contact_id"])]
		owner.Phones = append(owner.Phones, model.Phone{
			PhoneID:   asString(row["phone_id"]),
			ContactID: asString(row["contact_id"]),
			Number:    asString(row["number"]),
			Type:      asString(row["type"]),
			IsPrimary: asBool(row["is_primary"]),
		})
	}

	rows, err = execute(
		`SELECT location_id, contact_id, street, city, state, zip, type, is_primary
		 FROM contact_locations WHERE contact_id = ANY($1);`, pq.Array(ids))
	if err != nil {
		return childError("contact_locations", err)
	}
	for _, row := range rows {
		owner := index[asString(row["contact_id"])]
		owner.Locations = append(owner.Locations, model.Location{
			LocationID: asString(row["location_id"]),
			ContactID:  asString(row["contact_id"]),
			Street:     asString(row["street"]),
			City:       asString(row["city"]),
			State:      asString(row["state"]),
			Zip:        asString(row["zip"]),
			Type:       asString(row["type"]),
			IsPrimary:  asBool(row["is_primary"]),
		})
	}

	rows, err = execute(
		`SELECT donation_id, contact_id, amount, paid_at, recurring_period, recurring_duration,
		        committee_name, contribution_form, order_number
		 FROM donations WHERE contact_id = ANY($1);`, pq.Array(ids))
	if err != nil {
		return childError("donations", err)
	}
	for _, row := range rows {
		owner := index[asString(row["contact_id"])]
		owner.Donations = append(owner.Donations, model.Donation{
			DonationID:        asString(row["donation_id"]),
			ContactID:         asString(row["contact_id"]),
			Amount:            asString(row["amount"]),
			PaidAt:            asTimePtr(row["paid_at"]),
			RecurringPeriod:   asString(row["recurring_period"]),
			RecurringDuration: asIntPtr(row["recurring_duration"]),
			CommitteeName:     asString(row["committee_name"]),
			ContributionForm:  asString(row["contribution_form"]),
			OrderNumber:       asString(row["order_number"]),
		})
	}

	rows, err = execute(
		`SELECT employer_data_id, contact_id, employer_name, occupation
		 FROM employer_data WHERE contact_id = ANY($1);`, pq.Array(ids))
	if err != nil {
		return childError("employer_data", err)
	}
	for _, row := range rows {
		owner := index[asString(row["contact_id"])]
		owner.EmployerData = append(owner.EmployerData, model.EmployerData{
			EmployerDataID: asString(row["employer_data_id"]),
			ContactID:      asString(row["contact_id"]),
			EmployerName:   asString(row["employer_name"]),
			Occupation:     asString(row["occupation"]),
		})
	}

	return nil
}

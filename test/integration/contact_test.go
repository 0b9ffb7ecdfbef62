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

package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contactservice "github.com/donorbridge/contact-data-service/internal/contact/service"
	dedupcache "github.com/donorbridge/contact-data-service/internal/dedup/cache"
	dedupservice "github.com/donorbridge/contact-data-service/internal/dedup/service"
	"github.com/donorbridge/contact-data-service/internal/system/errors"
)

func TestGetContact_HydratesChildren(t *testing.T) {
	accountID := uuid.New().String()
	svc := contactservice.GetContactService()

	contactID := seedContact(t, accountID, "Mei", "Lin", "mei@example.com", "415-555-7777")
	seedDonation(t, contactID, "250.00")

	contact, err := svc.GetContact(accountID, contactID)
	require.NoError(t, err)

	assert.Equal(t, "Mei", contact.FirstName)
	require.Len(t, contact.Emails, 1)
	assert.Equal(t, "mei@example.com", contact.Emails[0].Address)
	require.Len(t, contact.Phones, 1)
	require.Len(t, contact.Donations, 1)
}

func TestGetContact_CrossAccount_NotFound(t *testing.T) {
	accountID := uuid.New().String()
	svc := contactservice.GetContactService()

	contactID := seedContact(t, accountID, "Tomás", "Reyes", "", "")

	_, err := svc.GetContact(uuid.New().String(), contactID)
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
}

func TestSetPrimaryEmail_SingleFlag(t *testing.T) {
	accountID := uuid.New().String()
	svc := contactservice.GetContactService()

	contactID := seedContact(t, accountID, "Hana", "Kim", "hana@example.com", "")

	secondEmail := uuid.New().String()
	_, err := testDB.Exec(
		`INSERT INTO contact_emails (email_id, contact_id, address, is_primary)
		 VALUES ($1, $2, $3, false);`, secondEmail, contactID, "hana.kim@work.com")
	require.NoError(t, err)

	err = svc.SetPrimaryEmail(accountID, contactID, secondEmail)
	require.NoError(t, err)

	assert.Equal(t, 1, countRows(t,
		`SELECT COUNT(*) FROM contact_emails WHERE contact_id = $1 AND is_primary;`, contactID))
	assert.Equal(t, 1, countRows(t,
		`SELECT COUNT(*) FROM contact_emails WHERE email_id = $1 AND is_primary;`, secondEmail))
}

func TestSetPrimaryEmail_UnknownEmail(t *testing.T) {
	accountID := uuid.New().String()
	svc := contactservice.GetContactService()

	contactID := seedContact(t, accountID, "Igor", "Petrov", "igor@example.com", "")

	err := svc.SetPrimaryEmail(accountID, contactID, uuid.New().String())
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
}

func TestSetPrimaryEmail_EvictsCachedCandidates(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New().String()
	contactSvc := contactservice.GetContactService()
	dedupSvc := dedupservice.GetDuplicateService()

	target := seedContact(t, accountID, "Ravi", "Nair", "ravi@example.com", "")
	seedContact(t, accountID, "Ravi", "Nair", "ravi@example.com", "")

	_, err := dedupSvc.FindCandidatesForContact(ctx, accountID, target)
	require.NoError(t, err)
	_, found := dedupcache.Get(accountID, target)
	require.True(t, found, "candidate list should be cached after a read")

	secondEmail := uuid.New().String()
	_, err = testDB.Exec(
		`INSERT INTO contact_emails (email_id, contact_id, address, is_primary)
		 VALUES ($1, $2, $3, false);`, secondEmail, target, "ravi.nair@work.com")
	require.NoError(t, err)
	require.NoError(t, contactSvc.SetPrimaryEmail(accountID, target, secondEmail))

	_, found = dedupcache.Get(accountID, target)
	assert.False(t, found, "mutating the contact should evict its cached candidates")
}

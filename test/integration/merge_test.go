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
	dedupservice "github.com/donorbridge/contact-data-service/internal/dedup/service"
	mergeservice "github.com/donorbridge/contact-data-service/internal/merge/service"
	"github.com/donorbridge/contact-data-service/internal/system/database/lock"
	"github.com/donorbridge/contact-data-service/internal/system/errors"
)

func TestMerge_MovesChildrenAndDeletesSecondary(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New().String()
	svc := mergeservice.GetMergeService()

	primary := seedContact(t, accountID, "Ana", "Silva", "ana@example.com", "415-555-1000")
	secondary := seedContact(t, accountID, "Ana", "Silva", "ana.silva@work.com", "415-555-2000")
	seedDonation(t, secondary, "100.00")
	seedDonation(t, secondary, "50.00")

	err := svc.Merge(ctx, accountID, primary, secondary, "user-1")
	require.NoError(t, err)

	assert.Equal(t, 0, countRows(t,
		`SELECT COUNT(*) FROM contacts WHERE contact_id = $1;`, secondary))
	assert.Equal(t, 2, countRows(t,
		`SELECT COUNT(*) FROM donations WHERE contact_id = $1;`, primary))
	assert.Equal(t, 2, countRows(t,
		`SELECT COUNT(*) FROM contact_emails WHERE contact_id = $1;`, primary))
	assert.Equal(t, 2, countRows(t,
		`SELECT COUNT(*) FROM contact_phones WHERE contact_id = $1;`, primary))

	// The survivor keeps exactly one primary email and phone.
	assert.Equal(t, 1, countRows(t,
		`SELECT COUNT(*) FROM contact_emails WHERE contact_id = $1 AND is_primary;`, primary))
	assert.Equal(t, 1, countRows(t,
		`SELECT COUNT(*) FROM contact_phones WHERE contact_id = $1 AND is_primary;`, primary))
}

func TestMerge_WritesHistory(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New().String()
	svc := mergeservice.GetMergeService()

	primary := seedContact(t, accountID, "Leo", "Mori", "leo@example.com", "")
	secondary := seedContact(t, accountID, "Leonardo", "Mori", "leo@example.com", "")

	err := svc.Merge(ctx, accountID, primary, secondary, "user-9")
	require.NoError(t, err)

	history, err := svc.GetMergeHistory(accountID, 20, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, primary, history[0].PrimaryContactID)
	assert.Equal(t, secondary, history[0].MergedContactID)
	assert.Equal(t, "user-9", history[0].MergedBy)
	assert.Equal(t, "Leonardo Mori", history[0].MergedDisplayName)
}

func TestMerge_ResolvesAllMatchesTouchingEitherContact(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New().String()

	a := seedContact(t, accountID, "Sam", "Okafor", "sam@example.com", "")
	b := seedContact(t, accountID, "Samuel", "Okafor", "sam@example.com", "")
	seedContact(t, accountID, "Sam", "Okafor", "s.okafor@example.com", "")

	created, err := dedupservice.GetDuplicateService().ScanForDuplicates(ctx, accountID)
	require.NoError(t, err)
	require.Equal(t, 3, created)

	err = mergeservice.GetMergeService().Merge(ctx, accountID, a, b, "user-1")
	require.NoError(t, err)

	// Every pairing among a, b and c touched one of the merged contacts.
	assert.Equal(t, 0, countRows(t,
		`SELECT COUNT(*) FROM duplicate_matches
		 WHERE account_id = $1 AND resolved = false;`, accountID))
}

func TestMerge_ReassignsUserContacts(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New().String()
	svc := mergeservice.GetMergeService()

	primary := seedContact(t, accountID, "Ida", "Berg", "ida@example.com", "")
	secondary := seedContact(t, accountID, "Ida", "Berg", "ida@example.com", "")

	_, err := testDB.Exec(`INSERT INTO user_contacts (user_id, contact_id) VALUES ($1, $2);`,
		"user-a", primary)
	require.NoError(t, err)
	_, err = testDB.Exec(`INSERT INTO user_contacts (user_id, contact_id) VALUES ($1, $2);`,
		"user-a", secondary)
	require.NoError(t, err)
	_, err = testDB.Exec(`INSERT INTO user_contacts (user_id, contact_id) VALUES ($1, $2);`,
		"user-b", secondary)
	require.NoError(t, err)

	err = svc.Merge(ctx, accountID, primary, secondary, "user-a")
	require.NoError(t, err)

	assert.Equal(t, 0, countRows(t,
		`SELECT COUNT(*) FROM user_contacts WHERE contact_id = $1;`, secondary))
	assert.Equal(t, 1, countRows(t,
		`SELECT COUNT(*) FROM user_contacts WHERE user_id = 'user-a' AND contact_id = $1;`, primary))
	assert.Equal(t, 1, countRows(t,
		`SELECT COUNT(*) FROM user_contacts WHERE user_id = 'user-b' AND contact_id = $1;`, primary))
}

func TestMerge_UnknownContact_NotFound(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New().String()
	svc := mergeservice.GetMergeService()

	primary := seedContact(t, accountID, "Noor", "Aziz", "noor@example.com", "")

	err := svc.Merge(ctx, accountID, primary, uuid.New().String(), "user-1")
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
}

func TestMerge_CrossAccountContact_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := mergeservice.GetMergeService()

	accountA := uuid.New().String()
	accountB := uuid.New().String()
	mine := seedContact(t, accountA, "Eva", "Novak", "eva@example.com", "")
	theirs := seedContact(t, accountB, "Eva", "Novak", "eva@example.com", "")

	err := svc.Merge(ctx, accountA, mine, theirs, "user-1")
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)

	// Nothing changed for either contact.
	assert.Equal(t, 1, countRows(t,
		`SELECT COUNT(*) FROM contacts WHERE contact_id = $1;`, theirs))
}

func TestMerge_MidTransactionFailure_RollsBackEverything(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New().String()
	svc := mergeservice.GetMergeService()

	primary := seedContact(t, accountID, "Ida", "Berg", "ida@example.com", "555-0101")
	secondary := seedContact(t, accountID, "Ida", "Berg", "ida.berg@work.com", "555-0102")
	seedDonation(t, secondary, "25.00")

	// Fail the transaction at the history insert, after every child row has
	// already been reassigned inside it.
	_, err := testDB.Exec(
		`CREATE FUNCTION reject_history_insert() RETURNS trigger AS $$
		 BEGIN
		     RAISE EXCEPTION 'history insert rejected';
		 END;
		 $$ LANGUAGE plpgsql;`)
	require.NoError(t, err)
	_, err = testDB.Exec(
		`CREATE TRIGGER reject_merge_history BEFORE INSERT ON merge_history
		 FOR EACH ROW EXECUTE FUNCTION reject_history_insert();`)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = testDB.Exec(`DROP TRIGGER reject_merge_history ON merge_history;`)
		_, _ = testDB.Exec(`DROP FUNCTION reject_history_insert();`)
	})

	err = svc.Merge(ctx, accountID, primary, secondary, "user-1")
	require.Error(t, err)
	serverErr, ok := err.(*errors.ServerError)
	require.True(t, ok, "expected a ServerError")
	assert.Equal(t, errors.MERGE_FAILED.Code, serverErr.Code)

	// Full rollback: the secondary still resolves with all of its children.
	contact, err := contactservice.GetContactService().GetContact(accountID, secondary)
	require.NoError(t, err)
	require.Len(t, contact.Emails, 1)
	assert.True(t, contact.Emails[0].IsPrimary)
	require.Len(t, contact.Phones, 1)
	assert.Equal(t, 1, countRows(t,
		`SELECT COUNT(*) FROM donations WHERE contact_id = $1;`, secondary))

	// Nothing leaked onto the primary and no history row survived.
	assert.Equal(t, 0, countRows(t,
		`SELECT COUNT(*) FROM donations WHERE contact_id = $1;`, primary))
	assert.Equal(t, 0, countRows(t,
		`SELECT COUNT(*) FROM merge_history WHERE account_id = $1;`, accountID))
}

func TestMerge_LockContention_Conflict(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New().String()
	svc := mergeservice.GetMergeService()

	primary := seedContact(t, accountID, "Noor", "Aziz", "noor@example.com", "")
	secondary := seedContact(t, accountID, "Noor", "Aziz", "noor.aziz@work.com", "")

	// Hold the secondary's advisory lock in another session, as an in-flight
	// merge would.
	lockID, err := lock.GenerateLockKey("contact:" + secondary)
	require.NoError(t, err)
	holder, err := testDB.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer func() { _ = holder.Rollback() }()
	_, err = holder.Exec(`SELECT pg_advisory_xact_lock($1);`, lockID)
	require.NoError(t, err)

	err = svc.Merge(ctx, accountID, primary, secondary, "user-2")
	require.Error(t, err)
	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusConflict, clientErr.StatusCode)
	assert.Equal(t, errors.MERGE_CONFLICT.Code, clientErr.Code)

	// The blocked merge changed nothing.
	assert.Equal(t, 1, countRows(t,
		`SELECT COUNT(*) FROM contacts WHERE contact_id = $1;`, secondary))
	assert.Equal(t, 0, countRows(t,
		`SELECT COUNT(*) FROM merge_history WHERE account_id = $1;`, accountID))
}

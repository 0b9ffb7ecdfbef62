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

	contactmodel "github.com/donorbridge/contact-data-service/internal/contact/model"
	dedupservice "github.com/donorbridge/contact-data-service/internal/dedup/service"
	"github.com/donorbridge/contact-data-service/internal/system/constants"
	"github.com/donorbridge/contact-data-service/internal/system/errors"
)

func TestScanRecordsMatchesAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New().String()
	svc := dedupservice.GetDuplicateService()

	seedContact(t, accountID, "Bill", "Smith", "bsmith@example.com", "")
	seedContact(t, accountID, "William", "Smith", "bsmith@example.com", "")
	seedContact(t, accountID, "Akira", "Tanaka", "akira@elsewhere.org", "")

	created, err := svc.ScanForDuplicates(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// A rerun finds the same pair already pending.
	created, err = svc.ScanForDuplicates(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	matches, page, err := svc.RecordedMatches(accountID, 1, 20, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 1, page.Count)
	assert.Equal(t, 80, matches[0].ConfidenceScore)
	assert.False(t, matches[0].Resolved)
	assert.Less(t, matches[0].ContactAID, matches[0].ContactBID)
}

func TestScanHonorsMinConfidenceFilter(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New().String()
	svc := dedupservice.GetDuplicateService()

	// Same name only, no shared email: confidence 75.
	seedContact(t, accountID, "Maria", "Garcia", "maria1@example.com", "")
	seedContact(t, accountID, "Maria", "Garcia", "maria2@elsewhere.org", "")

	created, err := svc.ScanForDuplicates(ctx, accountID)
	require.NoError(t, err)
	require.Equal(t, 1, created)

	matches, _, err := svc.RecordedMatches(accountID, 1, 20, 80)
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, _, err = svc.RecordedMatches(accountID, 1, 20, 70)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestResolveIgnoreIsTerminal(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New().String()
	svc := dedupservice.GetDuplicateService()

	seedContact(t, accountID, "Ken", "Watanabe", "kw@example.com", "")
	seedContact(t, accountID, "Kenneth", "Watanabe", "kw@example.com", "")

	_, err := svc.ScanForDuplicates(ctx, accountID)
	require.NoError(t, err)

	matches, _, err := svc.RecordedMatches(accountID, 1, 20, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	matchID := matches[0].MatchID

	err = svc.ResolveMatch(ctx, accountID, matchID, constants.ResolveActionIgnore, "", "reviewer-1")
	require.NoError(t, err)

	var resolved bool
	var reviewedBy string
	err = testDB.QueryRow(
		`SELECT resolved, reviewed_by FROM duplicate_matches WHERE match_id = $1;`, matchID).
		Scan(&resolved, &reviewedBy)
	require.NoError(t, err)
	assert.True(t, resolved)
	assert.Equal(t, "reviewer-1", reviewedBy)

	// Resolving again conflicts.
	err = svc.ResolveMatch(ctx, accountID, matchID, constants.ResolveActionIgnore, "", "reviewer-2")
	require.Error(t, err)
	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusConflict, clientErr.StatusCode)
}

func TestResolveMatch_UnknownMatch(t *testing.T) {
	svc := dedupservice.GetDuplicateService()

	err := svc.ResolveMatch(context.Background(), uuid.New().String(), uuid.New().String(),
		constants.ResolveActionIgnore, "", "reviewer-1")
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
}

func TestResolveMatch_OtherAccountsMatchHidden(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New().String()
	svc := dedupservice.GetDuplicateService()

	seedContact(t, accountID, "Dana", "Brooks", "dana@example.com", "")
	seedContact(t, accountID, "Dana", "Brooks", "dana@example.com", "")

	_, err := svc.ScanForDuplicates(ctx, accountID)
	require.NoError(t, err)

	matches, _, err := svc.RecordedMatches(accountID, 1, 20, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	err = svc.ResolveMatch(ctx, uuid.New().String(), matches[0].MatchID,
		constants.ResolveActionIgnore, "", "reviewer-1")
	require.Error(t, err)
	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
}

func TestResolveMerge_FoldsSecondaryIntoChosenPrimary(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New().String()
	svc := dedupservice.GetDuplicateService()

	seedContact(t, accountID, "Rosa", "Alvarez", "rosa@example.com", "415-555-0001")
	seedContact(t, accountID, "Rosa", "Alvarez", "rosa@example.com", "415-555-0002")

	_, err := svc.ScanForDuplicates(ctx, accountID)
	require.NoError(t, err)

	matches, _, err := svc.RecordedMatches(accountID, 1, 20, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	match := matches[0]

	seedDonation(t, match.ContactAID, "25.00")

	// Survivor is explicitly the B side; A's records fold into it.
	err = svc.ResolveMatch(ctx, accountID, match.MatchID,
		constants.ResolveActionMerge, match.ContactBID, "reviewer-1")
	require.NoError(t, err)

	assert.Equal(t, 0, countRows(t,
		`SELECT COUNT(*) FROM contacts WHERE contact_id = $1;`, match.ContactAID))
	assert.Equal(t, 1, countRows(t,
		`SELECT COUNT(*) FROM donations WHERE contact_id = $1;`, match.ContactBID))
	assert.Equal(t, 0, countRows(t,
		`SELECT COUNT(*) FROM duplicate_matches WHERE match_id = $1 AND resolved = false;`,
		match.MatchID))
	assert.Equal(t, 1, countRows(t,
		`SELECT COUNT(*) FROM merge_history WHERE account_id = $1;`, accountID))
}

func TestMatchIncomingThreshold(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New().String()
	svc := dedupservice.GetDuplicateService()

	existing := seedContact(t, accountID, "Priya", "Sharma", "priya@example.com", "")

	strongProbe := contactmodel.Contact{
		FirstName: "Priya",
		LastName:  "Sharma",
		Emails:    []contactmodel.Email{{Address: "priya@example.com"}},
	}
	matchedID, ok := svc.MatchIncoming(ctx, accountID, strongProbe)
	assert.True(t, ok)
	assert.Equal(t, existing, matchedID)

	// Name alone scores 75, which meets the gate; a partial name does not.
	weakProbe := contactmodel.Contact{FirstName: "Priya", LastName: "Singh"}
	_, ok = svc.MatchIncoming(ctx, accountID, weakProbe)
	assert.False(t, ok)
}

func TestFindCandidatesForContact(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New().String()
	svc := dedupservice.GetDuplicateService()

	target := seedContact(t, accountID, "Omar", "Haddad", "omar@example.com", "")
	twin := seedContact(t, accountID, "Omar", "Haddad", "omar@example.com", "")
	seedContact(t, accountID, "Lucy", "Chen", "lucy@elsewhere.org", "")

	candidates, err := svc.FindCandidatesForContact(ctx, accountID, target)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, twin, candidates[0].Contact.ContactID)
	assert.GreaterOrEqual(t, candidates[0].Scores.Confidence, 90)
}

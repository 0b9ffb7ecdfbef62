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
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contactmodel "github.com/donorbridge/contact-data-service/internal/contact/model"
	"github.com/donorbridge/contact-data-service/internal/dedup/model"
	"github.com/donorbridge/contact-data-service/internal/dedup/store"
	"github.com/donorbridge/contact-data-service/internal/system/errors"
	"github.com/donorbridge/contact-data-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

// ---------------------------------------------------------------------------
// ResolveMatch – action validation (no DB required)
// ---------------------------------------------------------------------------

func TestResolveMatch_UnknownAction_Rejected(t *testing.T) {
	svc := &DuplicateService{}

	err := svc.ResolveMatch(context.Background(), "acc1", "match1", "dismiss", "", "reviewer1")
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
	assert.Equal(t, errors.INVALID_RESOLVE_ACTION.Code, clientErr.Code)
}

func TestResolveMatch_EmptyAction_Rejected(t *testing.T) {
	svc := &DuplicateService{}

	err := svc.ResolveMatch(context.Background(), "acc1", "match1", "", "", "reviewer1")
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
}

// ---------------------------------------------------------------------------
// pickMergeSides – primary selection rules
// ---------------------------------------------------------------------------

func TestPickMergeSides(t *testing.T) {
	match := &model.DuplicateMatch{
		MatchID:    "match1",
		ContactAID: "contact-a",
		ContactBID: "contact-b",
	}

	primary, secondary, err := pickMergeSides(match, "")
	require.NoError(t, err)
	assert.Equal(t, "contact-a", primary)
	assert.Equal(t, "contact-b", secondary)

	primary, secondary, err = pickMergeSides(match, "contact-b")
	require.NoError(t, err)
	assert.Equal(t, "contact-b", primary)
	assert.Equal(t, "contact-a", secondary)

	_, _, err = pickMergeSides(match, "contact-c")
	require.Error(t, err)
	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
}

// ---------------------------------------------------------------------------
// withoutPendingPairs – pre-scoring filter
// ---------------------------------------------------------------------------

func TestWithoutPendingPairs_SkipsKnownPairs(t *testing.T) {
	candidates := []contactmodel.Contact{
		{ContactID: "contact-b"},
		{ContactID: "contact-c"},
		{ContactID: "contact-d"},
	}
	pending := map[string]bool{
		store.PairKey("contact-a", "contact-c"): true,
	}

	filtered := withoutPendingPairs("contact-a", candidates, pending)

	require.Len(t, filtered, 2)
	assert.Equal(t, "contact-b", filtered[0].ContactID)
	assert.Equal(t, "contact-d", filtered[1].ContactID)
}

func TestWithoutPendingPairs_EmptyPendingKeepsAll(t *testing.T) {
	candidates := []contactmodel.Contact{{ContactID: "contact-b"}}

	filtered := withoutPendingPairs("contact-a", candidates, nil)

	require.Len(t, filtered, 1)
}

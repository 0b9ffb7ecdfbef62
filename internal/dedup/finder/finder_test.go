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

package finder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donorbridge/contact-data-service/internal/contact/model"
)

func testContact(id, first, last string, updated time.Time) model.Contact {
	return model.Contact{
		ContactID: id,
		FirstName: first,
		LastName:  last,
		UpdatedAt: updated,
	}
}

func TestFindCandidates_OrderedByConfidence(t *testing.T) {
	now := time.Now()
	probe := testContact("c0", "Jane", "Doe", now)
	probe.Emails = []model.Email{{Address: "jane@example.com"}}

	exact := testContact("c1", "Jane", "Doe", now)
	exact.Emails = []model.Email{{Address: "jane@example.com"}}
	nameOnly := testContact("c2", "Jane", "Doe", now)
	unrelated := testContact("c3", "Bob", "Nguyen", now)

	candidates, err := FindCandidates(context.Background(), probe,
		[]model.Contact{unrelated, nameOnly, exact}, 50, 4)
	require.NoError(t, err)

	require.Len(t, candidates, 2)
	assert.Equal(t, "c1", candidates[0].Contact.ContactID)
	assert.Equal(t, "c2", candidates[1].Contact.ContactID)
	assert.Greater(t, candidates[0].Scores.Confidence, candidates[1].Scores.Confidence)
}

func TestFindCandidates_TieBrokenByRecency(t *testing.T) {
	now := time.Now()
	probe := testContact("c0", "Jane", "Doe", now)

	older := testContact("older", "Jane", "Doe", now.Add(-time.Hour))
	newer := testContact("newer", "Jane", "Doe", now)

	candidates, err := FindCandidates(context.Background(), probe,
		[]model.Contact{older, newer}, 50, 4)
	require.NoError(t, err)

	require.Len(t, candidates, 2)
	assert.Equal(t, "newer", candidates[0].Contact.ContactID)
	assert.Equal(t, "older", candidates[1].Contact.ContactID)
}

func TestFindCandidates_SkipsSelf(t *testing.T) {
	probe := testContact("c0", "Jane", "Doe", time.Now())

	candidates, err := FindCandidates(context.Background(), probe,
		[]model.Contact{probe}, 0, 4)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestFindCandidates_ThresholdFiltersAll(t *testing.T) {
	now := time.Now()
	probe := testContact("c0", "Jane", "Doe", now)

	candidates, err := FindCandidates(context.Background(), probe,
		[]model.Contact{testContact("c1", "Bob", "Nguyen", now)}, 50, 4)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestFindCandidates_EmptyCandidateSet(t *testing.T) {
	candidates, err := FindCandidates(context.Background(),
		testContact("c0", "Jane", "Doe", time.Now()), nil, 50, 4)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestFindCandidates_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FindCandidates(ctx,
		testContact("c0", "Jane", "Doe", time.Now()),
		[]model.Contact{testContact("c1", "Jane", "Doe", time.Now())}, 0, 1)
	assert.Error(t, err)
}

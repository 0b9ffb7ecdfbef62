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

package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithQuery(query string) *http.Request {
	return httptest.NewRequest(http.MethodGet, "/duplicates?"+query, nil)
}

func TestParseLimit(t *testing.T) {
	limit, err := ParseLimit(requestWithQuery(""))
	require.NoError(t, err)
	assert.Equal(t, 20, limit)

	limit, err = ParseLimit(requestWithQuery("limit=50"))
	require.NoError(t, err)
	assert.Equal(t, 50, limit)

	limit, err = ParseLimit(requestWithQuery("limit=9999"))
	require.NoError(t, err)
	assert.Equal(t, 200, limit)

	_, err = ParseLimit(requestWithQuery("limit=0"))
	assert.Error(t, err)

	_, err = ParseLimit(requestWithQuery("limit=abc"))
	assert.Error(t, err)
}

func TestParsePage(t *testing.T) {
	page, err := ParsePage(requestWithQuery(""))
	require.NoError(t, err)
	assert.Equal(t, 1, page)

	page, err = ParsePage(requestWithQuery("page=7"))
	require.NoError(t, err)
	assert.Equal(t, 7, page)

	_, err = ParsePage(requestWithQuery("page=-1"))
	assert.Error(t, err)
}

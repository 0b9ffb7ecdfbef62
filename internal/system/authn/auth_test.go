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

package authn

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donorbridge/contact-data-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestFromRequest_ValidToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/contacts", nil)
	r.Header.Set("Authorization", "Bearer "+signedToken(t, jwt.MapClaims{
		"sub":     "user-1",
		"account": "acc-1",
	}))

	identity, err := FromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, "acc-1", identity.AccountID)
}

func TestFromRequest_MissingHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/contacts", nil)

	_, err := FromRequest(r)
	assert.Error(t, err)
}

func TestFromRequest_MissingAccountClaim(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/contacts", nil)
	r.Header.Set("Authorization", "Bearer "+signedToken(t, jwt.MapClaims{
		"sub": "user-1",
	}))

	_, err := FromRequest(r)
	assert.Error(t, err)
}

func TestFromRequest_GarbageToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/contacts", nil)
	r.Header.Set("Authorization", "Bearer not-a-jwt")

	_, err := FromRequest(r)
	assert.Error(t, err)
}

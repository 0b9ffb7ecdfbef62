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

package lock

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donorbridge/contact-data-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func TestGenerateLockKey_Deterministic(t *testing.T) {
	first, err := GenerateLockKey("contact:abc")
	require.NoError(t, err)
	second, err := GenerateLockKey("contact:abc")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateLockKey_DistinctInputs(t *testing.T) {
	a, err := GenerateLockKey("contact:abc")
	require.NoError(t, err)
	b, err := GenerateLockKey("contact:abd")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

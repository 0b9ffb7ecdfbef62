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

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePair(t *testing.T) {
	a, b := NormalizePair("ccc", "aaa")
	assert.Equal(t, "aaa", a)
	assert.Equal(t, "ccc", b)

	a, b = NormalizePair("aaa", "ccc")
	assert.Equal(t, "aaa", a)
	assert.Equal(t, "ccc", b)

	a, b = NormalizePair("same", "same")
	assert.Equal(t, "same", a)
	assert.Equal(t, "same", b)
}

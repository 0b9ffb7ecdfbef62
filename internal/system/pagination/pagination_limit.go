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
	"strconv"

	errors2 "github.com/donorbridge/contact-data-service/internal/system/errors"
)

const (
	defaultLimit = 20
	maxLimit     = 200
)

// ParseLimit reads the limit query parameter, defaulting to 20 and
// capping at 200.
func ParseLimit(r *http.Request) (int, error) {

	limit := defaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil || v <= 0 {
			return 0, invalidParam("limit must be a positive integer.")
		}
		if v > maxLimit {
			v = maxLimit
		}
		limit = v
	}
	return limit, nil
}

// ParsePage reads the page query parameter, defaulting to the first page.
func ParsePage(r *http.Request) (int, error) {

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		v, err := strconv.Atoi(p)
		if err != nil || v <= 0 {
			return 0, invalidParam("page must be a positive integer.")
		}
		page = v
	}
	return page, nil
}

func invalidParam(description string) error {

	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.BAD_REQUEST.Code,
		Message:     errors2.BAD_REQUEST.Message,
		Description: description,
	}, http.StatusBadRequest)
}

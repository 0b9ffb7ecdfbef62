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

package services

import (
	"net/http"
	"strings"

	"github.com/donorbridge/contact-data-service/internal/dedup/handler"
)

// DuplicateService handles routing for duplicate review endpoints.
type DuplicateService struct {
	handler *handler.DuplicateHandler
}

// NewDuplicateService creates a new DuplicateService instance.
func NewDuplicateService() *DuplicateService {
	return &DuplicateService{
		handler: handler.NewDuplicateHandler(),
	}
}

// Route dispatches duplicate review requests.
func (s *DuplicateService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")

	switch {
	case method == http.MethodGet && path == "/duplicates":
		s.handler.ListMatches(w, r)

	case method == http.MethodPost && path == "/duplicates/scan":
		s.handler.ScanForDuplicates(w, r)

	case method == http.MethodPost && len(segments) == 3 && segments[2] == "resolve":
		s.handler.ResolveMatch(w, r)

	default:
		http.NotFound(w, r)
	}
}

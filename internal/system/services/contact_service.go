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

	contacthandler "github.com/donorbridge/contact-data-service/internal/contact/handler"
	duplicatehandler "github.com/donorbridge/contact-data-service/internal/dedup/handler"
	mergehandler "github.com/donorbridge/contact-data-service/internal/merge/handler"
)

// ContactService handles routing for contact endpoints, including the
// merge and per-contact duplicate surfaces nested under /contacts.
type ContactService struct {
	contactHandler   *contacthandler.ContactHandler
	duplicateHandler *duplicatehandler.DuplicateHandler
	mergeHandler     *mergehandler.MergeHandler
}

// NewContactService creates a new ContactService instance.
func NewContactService() *ContactService {
	return &ContactService{
		contactHandler:   contacthandler.NewContactHandler(),
		duplicateHandler: duplicatehandler.NewDuplicateHandler(),
		mergeHandler:     mergehandler.NewMergeHandler(),
	}
}

// Route dispatches contact requests.
func (s *ContactService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")

	switch {
	case method == http.MethodPost && path == "/contacts/merge":
		s.mergeHandler.MergeContacts(w, r)

	case method == http.MethodGet && len(segments) == 3 && segments[2] == "duplicates":
		s.duplicateHandler.CandidatesForContact(w, r, segments[1])

	case method == http.MethodPut && len(segments) == 3 && segments[2] == "primary":
		s.contactHandler.SetPrimaryChild(w, r)

	case method == http.MethodGet && len(segments) == 2:
		s.contactHandler.GetContact(w, r)

	default:
		http.NotFound(w, r)
	}
}

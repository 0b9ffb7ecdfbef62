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

	"github.com/donorbridge/contact-data-service/internal/merge/handler"
)

// MergeService handles routing for the merge audit trail.
type MergeService struct {
	handler *handler.MergeHandler
}

// NewMergeService creates a new MergeService instance.
func NewMergeService() *MergeService {
	return &MergeService{
		handler: handler.NewMergeHandler(),
	}
}

// Route dispatches merge history requests.
func (s *MergeService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")

	switch {
	case r.Method == http.MethodGet && path == "/merge-history":
		s.handler.GetMergeHistory(w, r)

	default:
		http.NotFound(w, r)
	}
}

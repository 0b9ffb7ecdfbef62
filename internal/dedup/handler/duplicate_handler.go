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

package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/donorbridge/contact-data-service/internal/dedup/model"
	"github.com/donorbridge/contact-data-service/internal/dedup/provider"
	"github.com/donorbridge/contact-data-service/internal/system/authn"
	errors2 "github.com/donorbridge/contact-data-service/internal/system/errors"
	"github.com/donorbridge/contact-data-service/internal/system/pagination"
	"github.com/donorbridge/contact-data-service/internal/system/utils"
)

type DuplicateHandler struct{}

func NewDuplicateHandler() *DuplicateHandler {

	return &DuplicateHandler{}
}

type matchListResponse struct {
	Matches    []model.DuplicateMatch `json:"matches"`
	Pagination pagination.Pagination  `json:"pagination"`
}

// ListMatches handles GET /duplicates
func (dh *DuplicateHandler) ListMatches(w http.ResponseWriter, r *http.Request) {

	identity, err := authn.FromRequest(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	limit, err := pagination.ParseLimit(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	page, err := pagination.ParsePage(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	minConfidence := 0
	if raw := r.URL.Query().Get("min_confidence"); raw != "" {
		minConfidence, err = strconv.Atoi(raw)
		if err != nil || minConfidence < 0 || minConfidence > 100 {
			utils.HandleError(w, badRequest("min_confidence must be an integer between 0 and 100."))
			return
		}
	}

	duplicateService := provider.NewDuplicateProvider().GetDuplicateService()
	matches, pageInfo, err := duplicateService.RecordedMatches(identity.AccountID, page, limit, minConfidence)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if matches == nil {
		matches = []model.DuplicateMatch{}
	}
	utils.RespondJSON(w, http.StatusOK, matchListResponse{Matches: matches, Pagination: pageInfo})
}

// ScanForDuplicates handles POST /duplicates/scan
func (dh *DuplicateHandler) ScanForDuplicates(w http.ResponseWriter, r *http.Request) {

	identity, err := authn.FromRequest(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	duplicateService := provider.NewDuplicateProvider().GetDuplicateService()
	created, err := duplicateService.ScanForDuplicates(r.Context(), identity.AccountID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]int{"matches_recorded": created})
}

// ResolveMatch handles POST /duplicates/{id}/resolve
func (dh *DuplicateHandler) ResolveMatch(w http.ResponseWriter, r *http.Request) {

	identity, err := authn.FromRequest(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	matchID := extractMatchID(r.URL.Path)
	if matchID == "" {
		utils.HandleError(w, badRequest("Match id is missing from the request path."))
		return
	}

	var request struct {
		Action           string `json:"action"`
		PrimaryContactID string `json:"primary_contact_id"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.HandleError(w, badRequest(utils.HandleDecodeError(err, "resolve request")))
		return
	}

	duplicateService := provider.NewDuplicateProvider().GetDuplicateService()
	err = duplicateService.ResolveMatch(r.Context(), identity.AccountID, matchID,
		request.Action, request.PrimaryContactID, identity.UserID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "resolved"})
}

// CandidatesForContact handles GET /contacts/{id}/duplicates
func (dh *DuplicateHandler) CandidatesForContact(w http.ResponseWriter, r *http.Request, contactID string) {

	identity, err := authn.FromRequest(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	duplicateService := provider.NewDuplicateProvider().GetDuplicateService()
	candidates, err := duplicateService.FindCandidatesForContact(r.Context(), identity.AccountID, contactID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"candidates": candidates})
}

// extractMatchID pulls the match id segment from /duplicates/{id}[/...].
func extractMatchID(path string) string {

	path = strings.TrimSuffix(path, "/")
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if part == "duplicates" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func badRequest(description string) error {

	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.BAD_REQUEST.Code,
		Message:     errors2.BAD_REQUEST.Message,
		Description: description,
	}, http.StatusBadRequest)
}

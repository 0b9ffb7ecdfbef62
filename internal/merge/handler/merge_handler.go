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

	"github.com/donorbridge/contact-data-service/internal/dedup/model"
	"github.com/donorbridge/contact-data-service/internal/merge/provider"
	"github.com/donorbridge/contact-data-service/internal/system/authn"
	errors2 "github.com/donorbridge/contact-data-service/internal/system/errors"
	"github.com/donorbridge/contact-data-service/internal/system/pagination"
	"github.com/donorbridge/contact-data-service/internal/system/utils"
)

type MergeHandler struct{}

func NewMergeHandler() *MergeHandler {

	return &MergeHandler{}
}

// MergeContacts handles POST /contacts/merge
func (mh *MergeHandler) MergeContacts(w http.ResponseWriter, r *http.Request) {

	identity, err := authn.FromRequest(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var request struct {
		PrimaryContactID   string `json:"primary_contact_id"`
		SecondaryContactID string `json:"secondary_contact_id"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.HandleError(w, badRequest(utils.HandleDecodeError(err, "merge request")))
		return
	}
	if request.PrimaryContactID == "" || request.SecondaryContactID == "" {
		utils.HandleError(w, badRequest("primary_contact_id and secondary_contact_id are required."))
		return
	}

	mergeService := provider.NewMergeProvider().GetMergeService()
	err = mergeService.Merge(r.Context(), identity.AccountID,
		request.PrimaryContactID, request.SecondaryContactID, identity.UserID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":             "merged",
		"primary_contact_id": request.PrimaryContactID,
	})
}

// GetMergeHistory handles GET /merge-history
func (mh *MergeHandler) GetMergeHistory(w http.ResponseWriter, r *http.Request) {

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

	mergeService := provider.NewMergeProvider().GetMergeService()
	history, err := mergeService.GetMergeHistory(identity.AccountID, limit, (page-1)*limit)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if history == nil {
		history = []model.MergeHistory{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"history": history})
}

func badRequest(description string) error {

	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.BAD_REQUEST.Code,
		Message:     errors2.BAD_REQUEST.Message,
		Description: description,
	}, http.StatusBadRequest)
}

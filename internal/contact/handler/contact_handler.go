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
	"strings"

	"github.com/donorbridge/contact-data-service/internal/contact/provider"
	"github.com/donorbridge/contact-data-service/internal/system/authn"
	errors2 "github.com/donorbridge/contact-data-service/internal/system/errors"
	"github.com/donorbridge/contact-data-service/internal/system/utils"
)

type ContactHandler struct{}

func NewContactHandler() *ContactHandler {

	return &ContactHandler{}
}

// GetContact handles GET /contacts/{id}
func (ch *ContactHandler) GetContact(w http.ResponseWriter, r *http.Request) {

	identity, err := authn.FromRequest(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	contactID := extractContactID(r.URL.Path)
	if contactID == "" {
		utils.HandleError(w, badRequest("Contact id is missing from the request path."))
		return
	}

	contactService := provider.NewContactProvider().GetContactService()
	contact, err := contactService.GetContact(identity.AccountID, contactID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, contact)
}

// SetPrimaryChild handles PUT /contacts/{id}/primary
func (ch *ContactHandler) SetPrimaryChild(w http.ResponseWriter, r *http.Request) {

	identity, err := authn.FromRequest(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	contactID := extractContactID(r.URL.Path)
	if contactID == "" {
		utils.HandleError(w, badRequest("Contact id is missing from the request path."))
		return
	}

	var request struct {
		ChildType string `json:"child_type"`
		ChildID   string `json:"child_id"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.HandleError(w, badRequest(utils.HandleDecodeError(err, "primary flag")))
		return
	}

	contactService := provider.NewContactProvider().GetContactService()
	switch request.ChildType {
	case "email":
		err = contactService.SetPrimaryEmail(identity.AccountID, contactID, request.ChildID)
	case "phone":
		err = contactService.SetPrimaryPhone(identity.AccountID, contactID, request.ChildID)
	case "location":
		err = contactService.SetPrimaryLocation(identity.AccountID, contactID, request.ChildID)
	default:
		err = badRequest("child_type must be one of email, phone or location.")
	}
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// extractContactID pulls the contact id segment from /contacts/{id}[/...].
func extractContactID(path string) string {

	path = strings.TrimSuffix(path, "/")
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if part == "contacts" && i+1 < len(parts) {
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

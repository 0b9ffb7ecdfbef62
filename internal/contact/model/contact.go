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
	"strings"
	"time"
)

// Contact is the identity record at the center of duplicate detection.
// Child records are hydrated by the store, never embedded in other tables.
type Contact struct {
	ContactID    string         `json:"contact_id"`
	AccountID    string         `json:"account_id"`
	FirstName    string         `json:"first_name,omitempty"`
	LastName     string         `json:"last_name,omitempty"`
	Status       string         `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Emails       []Email        `json:"emails,omitempty"`
	Phones       []Phone        `json:"phones,omitempty"`
	Locations    []Location     `json:"locations,omitempty"`
	Donations    []Donation     `json:"donations,omitempty"`
	EmployerData []EmployerData `json:"employer_data,omitempty"`
}

// DisplayName returns the contact's full name for audit records.
func (c Contact) DisplayName() string {

	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return c.ContactID
	}
	return name
}

type Email struct {
	EmailID   string `json:"email_id"`
	ContactID string `json:"contact_id"`
	Address   string `json:"address"`
	Type      string `json:"type"`
	IsPrimary bool   `json:"is_primary"`
}

type Phone struct {
	PhoneID   string `json:"phone_id"`
	ContactID string `json:"contact_id"`
	Number    string `json:"number"`
	Type      string `json:"type"`
	IsPrimary bool   `json:"is_primary"`
}

type Location struct {
	LocationID string `json:"location_id"`
	ContactID  string `json:"contact_id"`
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Zip        string `json:"zip,omitempty"`
	Type       string `json:"type"`
	IsPrimary  bool   `json:"is_primary"`
}

type Donation struct {
	DonationID        string     `json:"donation_id"`
	ContactID         string     `json:"contact_id"`
	Amount            string     `json:"amount"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`
	RecurringPeriod   string     `json:"recurring_period"`
	RecurringDuration *int       `json:"recurring_duration,omitempty"`
	CommitteeName     string     `json:"committee_name,omitempty"`
	ContributionForm  string     `json:"contribution_form,omitempty"`
	OrderNumber       string     `json:"order_number,omitempty"`
}

type EmployerData struct {
	EmployerDataID string `json:"employer_data_id"`
	ContactID      string `json:"contact_id"`
	EmployerName   string `json:"employer_name,omitempty"`
	Occupation     string `json:"occupation,omitempty"`
}

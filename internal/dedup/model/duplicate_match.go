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

import "time"

// DuplicateMatch is a candidate duplicate pair awaiting review. The pair is
// stored normalized (ContactAID < ContactBID) so each unordered pair has
// exactly one representation.
type DuplicateMatch struct {
	MatchID         string     `json:"match_id"`
	AccountID       string     `json:"account_id"`
	ContactAID      string     `json:"contact_a_id"`
	ContactBID      string     `json:"contact_b_id"`
	ConfidenceScore int        `json:"confidence_score"`
	NameScore       *int       `json:"name_score,omitempty"`
	EmailScore      *int       `json:"email_score,omitempty"`
	PhoneScore      *int       `json:"phone_score,omitempty"`
	AddressScore    *int       `json:"address_score,omitempty"`
	Resolved        bool       `json:"resolved"`
	ReviewedBy      string     `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// MergeHistory is the append-only audit record of a completed merge.
type MergeHistory struct {
	HistoryID          string    `json:"history_id"`
	AccountID          string    `json:"account_id"`
	PrimaryContactID   string    `json:"primary_contact_id"`
	MergedContactID    string    `json:"merged_contact_id"`
	MergedBy           string    `json:"merged_by"`
	PrimaryDisplayName string    `json:"primary_display_name"`
	MergedDisplayName  string    `json:"merged_display_name"`
	MergedAt           time.Time `json:"merged_at"`
}

// NormalizePair orders two contact ids lexicographically so an unordered
// pair always maps to the same (a, b) key.
func NormalizePair(id1, id2 string) (string, string) {

	if id1 < id2 {
		return id1, id2
	}
	return id2, id1
}

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

package constants

const ApiBasePath = "/api/v1"

// Contact status values.
const (
	StatusProspect = "prospect"
	StatusActive   = "active"
	StatusDonor    = "donor"
)

var AllowedContactStatuses = map[string]bool{
	StatusProspect: true,
	StatusActive:   true,
	StatusDonor:    true,
}

// Recurring donation periods.
const (
	RecurringNone      = "none"
	RecurringWeekly    = "weekly"
	RecurringBiweekly  = "biweekly"
	RecurringMonthly   = "monthly"
	RecurringQuarterly = "quarterly"
	RecurringYearly    = "yearly"
)

var AllowedRecurringPeriods = map[string]bool{
	RecurringNone:      true,
	RecurringWeekly:    true,
	RecurringBiweekly:  true,
	RecurringMonthly:   true,
	RecurringQuarterly: true,
	RecurringYearly:    true,
}

// Resolution actions for a duplicate match.
const (
	ResolveActionMerge  = "merge"
	ResolveActionIgnore = "ignore"
)

// Resource names used in JSON responses.
const (
	ContactResource        = "contacts"
	DuplicateMatchResource = "duplicate_matches"
	MergeHistoryResource   = "merge_history"
)

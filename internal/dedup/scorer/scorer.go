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

// Package scorer computes similarity scores for pairs of contact records.
// All functions are pure; the package performs no I/O.
//
// The composite score budgets 35 points to the first name, 40 to the last
// name (name portion capped at 75), 15 to email, 5 to phone and 5 to
// address, on a 0-100 scale.
package scorer

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/donorbridge/contact-data-service/internal/contact/model"
)

const (
	firstNameExactScore   = 35
	firstNameFuzzyScore   = 25
	firstNameInitialScore = 10
	firstNameAbsentScore  = 10

	lastNameExactScore   = 40
	lastNameFuzzyScore   = 28
	lastNameInitialScore = 10
	lastNameAbsentScore  = 10

	nameScoreCap = 75

	emailExactScore  = 15
	emailDomainScore = 5

	phoneMatchScore = 5

	addressZipScore    = 2
	addressStateScore  = 1
	addressCityScore   = 1
	addressStreetScore = 1

	firstNameFuzzyThreshold = 0.8
	lastNameFuzzyThreshold  = 0.7
	minFuzzyNameLength      = 3
)

// Breakdown is the structured result of scoring a contact pair.
type Breakdown struct {
	NameScore    int `json:"name_score"`
	EmailScore   int `json:"email_score"`
	PhoneScore   int `json:"phone_score"`
	AddressScore int `json:"address_score"`
	Confidence   int `json:"confidence_score"`
}

// Score computes the similarity breakdown for two contacts. The result is
// symmetric: Score(a, b) equals Score(b, a).
func Score(a, b model.Contact) Breakdown {

	breakdown := Breakdown{
		NameScore:    nameScore(a, b),
		EmailScore:   emailScore(a.Emails, b.Emails),
		PhoneScore:   phoneScore(a.Phones, b.Phones),
		AddressScore: addressScore(a.Locations, b.Locations),
	}

	composite := breakdown.NameScore + breakdown.EmailScore + breakdown.PhoneScore + breakdown.AddressScore
	if composite > 100 {
		composite = 100
	}
	if composite < 0 {
		composite = 0
	}
	breakdown.Confidence = composite
	return breakdown
}

func nameScore(a, b model.Contact) int {

	score := firstNameScore(a.FirstName, b.FirstName) + lastNameScore(a.LastName, b.LastName)
	if score > nameScoreCap {
		score = nameScoreCap
	}
	return score
}

func firstNameScore(a, b string) int {

	a = normalizeName(a)
	b = normalizeName(b)

	switch {
	case a == "" && b == "":
		return firstNameAbsentScore
	case a == "" || b == "":
		return 0
	case a == b:
		return firstNameExactScore
	case nicknameMatch(a, b):
		return firstNameFuzzyScore
	case nameSimilarity(a, b) >= firstNameFuzzyThreshold:
		return firstNameFuzzyScore
	case a[0] == b[0]:
		return firstNameInitialScore
	default:
		return 0
	}
}

func lastNameScore(a, b string) int {

	a = normalizeName(a)
	b = normalizeName(b)

	switch {
	case a == "" && b == "":
		return lastNameAbsentScore
	case a == "" || b == "":
		return 0
	case a == b:
		return lastNameExactScore
	case len(a) >= minFuzzyNameLength && len(b) >= minFuzzyNameLength &&
		nameSimilarity(a, b) >= lastNameFuzzyThreshold:
		return lastNameFuzzyScore
	case a[0] == b[0]:
		return lastNameInitialScore
	default:
		return 0
	}
}

// nameSimilarity maps edit distance into [0, 1], where 1 is an exact match.
// The edit distance counts runes, so the denominator must too or multibyte
// names skew the ratio.
func nameSimilarity(a, b string) float64 {

	longest := utf8.RuneCountInString(a)
	if runes := utf8.RuneCountInString(b); runes > longest {
		longest = runes
	}
	if longest == 0 {
		return 0
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}

func emailScore(a, b []model.Email) int {

	best := 0
	for _, left := range a {
		leftAddr := strings.ToLower(strings.TrimSpace(left.Address))
		if leftAddr == "" {
			continue
		}
		for _, right := range b {
			rightAddr := strings.ToLower(strings.TrimSpace(right.Address))
			if rightAddr == "" {
				continue
			}
			if leftAddr == rightAddr {
				return emailExactScore
			}
			if emailDomain(leftAddr) != "" && emailDomain(leftAddr) == emailDomain(rightAddr) {
				best = emailDomainScore
			}
		}
	}
	return best
}

func phoneScore(a, b []model.Phone) int {

	for _, left := range a {
		leftDigits := lastSevenDigits(left.Number)
		if leftDigits == "" {
			continue
		}
		for _, right := range b {
			if leftDigits == lastSevenDigits(right.Number) {
				return phoneMatchScore
			}
		}
	}
	return 0
}

// addressScore uses the best-matching location pair; partial credits are not
// summed across pairs.
func addressScore(a, b []model.Location) int {

	best := 0
	for _, left := range a {
		for _, right := range b {
			score := locationPairScore(left, right)
			if score > best {
				best = score
			}
		}
	}
	return best
}

func locationPairScore(a, b model.Location) int {

	score := 0
	if zip := normalizeZip(a.Zip); zip != "" && zip == normalizeZip(b.Zip) {
		score += addressZipScore
	}
	if state := normalizeName(a.State); state != "" && state == normalizeName(b.State) {
		score += addressStateScore
	}
	if city := normalizeName(a.City); city != "" && city == normalizeName(b.City) {
		score += addressCityScore
	}
	if street := NormalizeStreet(a.Street); street != "" && street == NormalizeStreet(b.Street) {
		score += addressStreetScore
	}
	return score
}

func normalizeName(s string) string {

	return strings.ToLower(strings.TrimSpace(s))
}

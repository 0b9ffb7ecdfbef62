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

package scorer

import "strings"

// unitTokens are dropped from street strings: apartment and suite markers
// never distinguish two addresses for matching purposes.
var unitTokens = map[string]bool{
	"apt":       true,
	"apartment": true,
	"unit":      true,
	"ste":       true,
	"suite":     true,
	"fl":        true,
	"floor":     true,
	"rm":        true,
	"room":      true,
	"bldg":      true,
	"building":  true,
	"no":        true,
	"num":       true,
}

var directionalTokens = map[string]bool{
	"n":         true,
	"s":         true,
	"e":         true,
	"w":         true,
	"ne":        true,
	"nw":        true,
	"se":        true,
	"sw":        true,
	"north":     true,
	"south":     true,
	"east":      true,
	"west":      true,
	"northeast": true,
	"northwest": true,
	"southeast": true,
	"southwest": true,
}

var streetAbbreviations = map[string]string{
	"st":   "street",
	"str":  "street",
	"ave":  "avenue",
	"av":   "avenue",
	"rd":   "road",
	"dr":   "drive",
	"blvd": "boulevard",
	"ln":   "lane",
	"ct":   "court",
	"pl":   "place",
	"ter":  "terrace",
	"hwy":  "highway",
	"pkwy": "parkway",
	"cir":  "circle",
	"sq":   "square",
}

// NormalizeStreet reduces a street line to a comparable canonical form:
// lowercased, punctuation and digits stripped, unit/suite and directional
// tokens dropped, common abbreviations expanded.
//
// "123 N. Main St., Apt 4" and "123 Main Street" both normalize to
// "main street".
func NormalizeStreet(street string) string {

	var cleaned strings.Builder
	for _, r := range strings.ToLower(street) {
		switch {
		case r >= 'a' && r <= 'z':
			cleaned.WriteRune(r)
		case r == ' ':
			cleaned.WriteRune(' ')
		default:
			// Punctuation and digits separate tokens rather than joining them.
			cleaned.WriteRune(' ')
		}
	}

	var kept []string
	for _, token := range strings.Fields(cleaned.String()) {
		if unitTokens[token] || directionalTokens[token] {
			continue
		}
		if expanded, ok := streetAbbreviations[token]; ok {
			token = expanded
		}
		kept = append(kept, token)
	}
	return strings.Join(kept, " ")
}

// lastSevenDigits normalizes a phone number to digits only and returns its
// final seven digits, or "" when fewer than seven digits are present.
func lastSevenDigits(number string) string {

	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	s := digits.String()
	if len(s) < 7 {
		return ""
	}
	return s[len(s)-7:]
}

// normalizeZip compares on the five-digit prefix so ZIP+4 forms match their
// base ZIP.
func normalizeZip(zip string) string {

	var digits strings.Builder
	for _, r := range zip {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	s := digits.String()
	if len(s) > 5 {
		return s[:5]
	}
	return s
}

// emailDomain returns the lowercased domain part of an address, or "" when
// the address has no domain.
func emailDomain(address string) string {

	at := strings.LastIndex(address, "@")
	if at < 0 || at == len(address)-1 {
		return ""
	}
	return address[at+1:]
}

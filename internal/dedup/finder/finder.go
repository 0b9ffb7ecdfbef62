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

// Package finder ranks candidate duplicates for a contact. Scoring is pure
// CPU work, so candidates are scored concurrently with a bounded worker
// group; the store reads feeding the candidate set happen upstream.
package finder

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/donorbridge/contact-data-service/internal/contact/model"
	"github.com/donorbridge/contact-data-service/internal/dedup/scorer"
)

// ScoredCandidate pairs a candidate contact with its score breakdown.
type ScoredCandidate struct {
	Contact model.Contact     `json:"contact"`
	Scores  scorer.Breakdown  `json:"scores"`
}

// FindCandidates scores the given candidate set against the contact and
// returns every candidate at or above the threshold, ordered by confidence
// descending with ties broken by most recent update first. The contact
// itself is skipped if present in the candidate set.
func FindCandidates(ctx context.Context, contact model.Contact, candidates []model.Contact,
	threshold, workers int) ([]ScoredCandidate, error) {

	if workers < 1 {
		workers = 1
	}

	var (
		mu      sync.Mutex
		matched []ScoredCandidate
	)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for _, candidate := range candidates {
		if candidate.ContactID == contact.ContactID {
			continue
		}
		candidate := candidate
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			breakdown := scorer.Score(contact, candidate)
			if breakdown.Confidence < threshold {
				return nil
			}
			mu.Lock()
			matched = append(matched, ScoredCandidate{Contact: candidate, Scores: breakdown})
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Scores.Confidence != matched[j].Scores.Confidence {
			return matched[i].Scores.Confidence > matched[j].Scores.Confidence
		}
		return matched[i].Contact.UpdatedAt.After(matched[j].Contact.UpdatedAt)
	})
	return matched, nil
}

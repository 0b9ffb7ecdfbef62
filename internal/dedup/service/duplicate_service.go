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

package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	contactmodel "github.com/donorbridge/contact-data-service/internal/contact/model"
	contactstore "github.com/donorbridge/contact-data-service/internal/contact/store"
	dedupcache "github.com/donorbridge/contact-data-service/internal/dedup/cache"
	"github.com/donorbridge/contact-data-service/internal/dedup/finder"
	"github.com/donorbridge/contact-data-service/internal/dedup/model"
	"github.com/donorbridge/contact-data-service/internal/dedup/store"
	mergeprovider "github.com/donorbridge/contact-data-service/internal/merge/provider"
	"github.com/donorbridge/contact-data-service/internal/system/config"
	"github.com/donorbridge/contact-data-service/internal/system/constants"
	errors2 "github.com/donorbridge/contact-data-service/internal/system/errors"
	"github.com/donorbridge/contact-data-service/internal/system/log"
	"github.com/donorbridge/contact-data-service/internal/system/pagination"
)

type DuplicateServiceInterface interface {
	ScanForDuplicates(ctx context.Context, accountID string) (int, error)
	RecordedMatches(accountID string, page, limit, minConfidence int) ([]model.DuplicateMatch, pagination.Pagination, error)
	ResolveMatch(ctx context.Context, accountID, matchID, action, primaryContactID, reviewer string) error
	FindCandidatesForContact(ctx context.Context, accountID, contactID string) ([]finder.ScoredCandidate, error)
	MatchIncoming(ctx context.Context, accountID string, probe contactmodel.Contact) (string, bool)
}

// Consecutive chunk read failures tolerated before a contact load gives up
// and returns whatever it has.
const maxChunkFailures = 3

// DuplicateService is the default implementation of the DuplicateServiceInterface.
type DuplicateService struct{}

// GetDuplicateService creates a new instance of DuplicateService.
func GetDuplicateService() DuplicateServiceInterface {

	return &DuplicateService{}
}

// ScanForDuplicates scores every unordered contact pair in the account and
// records a pending match for each pair at or above the acceptance
// threshold. Pairs already awaiting review are skipped, and reruns are
// idempotent. Returns the number of matches recorded by this run.
func (ds *DuplicateService) ScanForDuplicates(ctx context.Context, accountID string) (int, error) {

	cfg := config.GetCDSRuntime().Config.Dedup
	logger := log.GetLogger()

	pendingPairs, err := store.ListPendingPairs(accountID)
	if err != nil {
		return 0, err
	}

	contacts := loadAccountContacts(ctx, accountID, cfg.ScanChunkSize)

	created := 0
	for i := range contacts {
		if err := ctx.Err(); err != nil {
			// Cancelled between contacts: everything recorded so far is
			// committed, a rerun picks up the rest.
			logger.Warn("Duplicate scan cancelled", log.String("account_id", accountID))
			return created, nil
		}

		pool := withoutPendingPairs(contacts[i].ContactID, contacts[i+1:], pendingPairs)
		candidates, err := finder.FindCandidates(ctx, contacts[i], pool,
			cfg.AcceptThreshold, cfg.ScorerWorkers)
		if err != nil {
			logger.Warn("Scoring failed for a scan batch, skipping",
				log.String("contact_id", contacts[i].ContactID), log.Error(err))
			continue
		}

		for _, candidate := range candidates {
			// Guards against a concurrent scan recording the pair after the
			// pre-scoring filter ran.
			if pendingPairs[store.PairKey(contacts[i].ContactID, candidate.Contact.ContactID)] {
				continue
			}
			recorded, err := recordScoredMatch(accountID, contacts[i].ContactID, candidate)
			if err != nil {
				return created, err
			}
			if recorded {
				pendingPairs[store.PairKey(contacts[i].ContactID, candidate.Contact.ContactID)] = true
				created++
			}
		}
	}

	logger.Info(fmt.Sprintf("Duplicate scan recorded %d matches for account %s", created, accountID))
	return created, nil
}

// withoutPendingPairs drops candidates whose pair with the contact already
// awaits review, so known pairs are never re-scored.
func withoutPendingPairs(contactID string, candidates []contactmodel.Contact,
	pending map[string]bool) []contactmodel.Contact {

	filtered := make([]contactmodel.Contact, 0, len(candidates))
	for _, candidate := range candidates {
		if pending[store.PairKey(contactID, candidate.ContactID)] {
			continue
		}
		filtered = append(filtered, candidate)
	}
	return filtered
}

// RecordedMatches returns a page of pending matches in descending
// confidence order, plus the pagination envelope.
func (ds *DuplicateService) RecordedMatches(accountID string, page, limit, minConfidence int) (
	[]model.DuplicateMatch, pagination.Pagination, error) {

	offset := (page - 1) * limit
	matches, err := store.ListPending(accountID, limit, offset, minConfidence)
	if err != nil {
		return nil, pagination.Pagination{}, err
	}
	total, err := store.CountPending(accountID, minConfidence)
	if err != nil {
		return nil, pagination.Pagination{}, err
	}
	return matches, pagination.Pagination{
		Count:    total,
		PageSize: limit,
		Page:     page,
	}, nil
}

// ResolveMatch closes a pending match. Action "ignore" flips it resolved
// with reviewer attribution and no further effect. Action "merge" delegates
// to the merge engine, which also resolves every other match touching
// either contact. A resolved match is terminal.
func (ds *DuplicateService) ResolveMatch(ctx context.Context, accountID, matchID, action,
	primaryContactID, reviewer string) error {

	if action != constants.ResolveActionMerge && action != constants.ResolveActionIgnore {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_RESOLVE_ACTION.Code,
			Message:     errors2.INVALID_RESOLVE_ACTION.Message,
			Description: fmt.Sprintf("Unknown resolve action: %s", action),
		}, http.StatusBadRequest)
	}

	match, err := store.GetMatch(matchID)
	if err != nil {
		return err
	}
	if match == nil || match.AccountID != accountID {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.MATCH_NOT_FOUND.Code,
			Message:     errors2.MATCH_NOT_FOUND.Message,
			Description: fmt.Sprintf("No duplicate match found with Id: %s", matchID),
		}, http.StatusNotFound)
	}
	if match.Resolved {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.MATCH_ALREADY_RESOLVED.Code,
			Message:     errors2.MATCH_ALREADY_RESOLVED.Message,
			Description: fmt.Sprintf("Match %s was already resolved by %s", matchID, match.ReviewedBy),
		}, http.StatusConflict)
	}

	if action == constants.ResolveActionIgnore {
		affected, err := store.ResolveMatch(matchID, reviewer)
		if err != nil {
			return err
		}
		if affected == 0 {
			// Lost a race with another reviewer or a merge.
			return errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.MATCH_ALREADY_RESOLVED.Code,
				Message:     errors2.MATCH_ALREADY_RESOLVED.Message,
				Description: fmt.Sprintf("Match %s was resolved concurrently", matchID),
			}, http.StatusConflict)
		}
		log.GetLogger().Audit(log.AuditEvent{
			InitiatorID: reviewer,
			TargetID:    matchID,
			TargetType:  "duplicate_match",
			ActionID:    log.ActionIgnoreMatch,
		})
		return nil
	}

	primaryID, secondaryID, err := pickMergeSides(match, primaryContactID)
	if err != nil {
		return err
	}

	// The merge transaction resolves this match along with every other
	// match touching either contact.
	mergeService := mergeprovider.NewMergeProvider().GetMergeService()
	return mergeService.Merge(ctx, accountID, primaryID, secondaryID, reviewer)
}

// FindCandidatesForContact scores one contact against the rest of the
// account, serving repeated review reads from the candidate cache.
func (ds *DuplicateService) FindCandidatesForContact(ctx context.Context, accountID, contactID string) (
	[]finder.ScoredCandidate, error) {

	if cached, found := dedupcache.Get(accountID, contactID); found {
		return cached, nil
	}

	contact, err := contactstore.GetContact(contactID)
	if err != nil {
		return nil, err
	}
	if contact == nil || contact.AccountID != accountID {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.CONTACT_NOT_FOUND.Code,
			Message:     errors2.CONTACT_NOT_FOUND.Message,
			Description: fmt.Sprintf("No contact found with Id: %s", contactID),
		}, http.StatusNotFound)
	}

	cfg := config.GetCDSRuntime().Config.Dedup
	others := loadAccountContacts(ctx, accountID, cfg.ScanChunkSize)

	pendingPairs, err := store.ListPendingPairs(accountID)
	if err != nil {
		return nil, err
	}

	candidates, err := finder.FindCandidates(ctx, *contact, others, cfg.AcceptThreshold, cfg.ScorerWorkers)
	if err != nil {
		return nil, err
	}

	// Pairs already awaiting review are not re-surfaced.
	fresh := candidates[:0]
	for _, candidate := range candidates {
		if pendingPairs[store.PairKey(contactID, candidate.Contact.ContactID)] {
			continue
		}
		fresh = append(fresh, candidate)
	}

	dedupcache.Put(accountID, contactID, fresh)
	return fresh, nil
}

// MatchIncoming decides whether an incoming record (e.g. a webhook-driven
// donation) belongs to an existing contact. The inline threshold is a hard
// gate: below it the caller creates a new contact. Detection is advisory,
// so every failure here reports "no match" rather than an error.
func (ds *DuplicateService) MatchIncoming(ctx context.Context, accountID string, probe contactmodel.Contact) (string, bool) {

	cfg := config.GetCDSRuntime().Config.Dedup
	logger := log.GetLogger()

	contacts := loadAccountContacts(ctx, accountID, cfg.ScanChunkSize)
	if len(contacts) == 0 {
		return "", false
	}

	candidates, err := finder.FindCandidates(ctx, probe, contacts, cfg.InlineMatchThreshold, cfg.ScorerWorkers)
	if err != nil {
		logger.Warn("Inline contact matching failed, treating as no match", log.Error(err))
		return "", false
	}
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[0].Contact.ContactID, true
}

// loadAccountContacts reads the account's contacts chunk by chunk. A failed
// chunk is logged and skipped rather than aborting the scan; detection is
// advisory and fails open.
func loadAccountContacts(ctx context.Context, accountID string, chunkSize int) []contactmodel.Contact {

	logger := log.GetLogger()
	var contacts []contactmodel.Contact
	failures := 0
	for offset := 0; ; offset += chunkSize {
		if err := ctx.Err(); err != nil {
			return contacts
		}
		chunk, err := contactstore.ListContactsForAccount(accountID, chunkSize, offset)
		if err != nil {
			logger.Warn("Failed loading a contact chunk, continuing with partial set",
				log.String("account_id", accountID), log.Int("offset", offset), log.Error(err))
			failures++
			if failures >= maxChunkFailures {
				return contacts
			}
			continue
		}
		failures = 0
		contacts = append(contacts, chunk...)
		if len(chunk) < chunkSize {
			return contacts
		}
	}
}

func recordScoredMatch(accountID, contactID string, candidate finder.ScoredCandidate) (bool, error) {

	nameScore := candidate.Scores.NameScore
	emailScore := candidate.Scores.EmailScore
	phoneScore := candidate.Scores.PhoneScore
	addressScore := candidate.Scores.AddressScore

	return store.RecordMatch(model.DuplicateMatch{
		MatchID:         uuid.New().String(),
		AccountID:       accountID,
		ContactAID:      contactID,
		ContactBID:      candidate.Contact.ContactID,
		ConfidenceScore: candidate.Scores.Confidence,
		NameScore:       &nameScore,
		EmailScore:      &emailScore,
		PhoneScore:      &phoneScore,
		AddressScore:    &addressScore,
	})
}

func pickMergeSides(match *model.DuplicateMatch, primaryContactID string) (string, string, error) {

	switch primaryContactID {
	case "", match.ContactAID:
		return match.ContactAID, match.ContactBID, nil
	case match.ContactBID:
		return match.ContactBID, match.ContactAID, nil
	default:
		return "", "", errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: fmt.Sprintf("Contact %s is not part of match %s", primaryContactID, match.MatchID),
		}, http.StatusBadRequest)
	}
}

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

package errors

const errorPrefix = "CDS-"

var (
	// Server error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to initialize database client.",
	}

	EXECUTE_QUERY = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while executing database query.",
	}

	GET_CONTACT = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while fetching contact.",
	}

	LIST_CONTACTS = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while listing contacts.",
	}

	UPDATE_CONTACT = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while updating contact.",
	}

	RECORD_MATCH = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while recording duplicate match.",
	}

	FETCH_MATCHES = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while fetching duplicate matches.",
	}

	RESOLVE_MATCH = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while resolving duplicate match.",
	}

	SCAN_DUPLICATES = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while scanning for duplicate contacts.",
	}

	MERGE_FAILED = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Contact merge failed and was rolled back.",
	}

	ADD_MERGE_HISTORY = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while recording merge history.",
	}

	LOCK_ACQUIRE = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Advisory lock acquisition failed.",
	}

	LOCK_KEY_GEN = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Error generating advisory lock key.",
	}

	LOCK_RESULT_INVALID = ErrorMessage{
		Code:    errorPrefix + "15014",
		Message: "Invalid response from advisory lock query.",
	}

	PARSING_ERROR = ErrorMessage{
		Code:    errorPrefix + "15015",
		Message: "Error while parsing request token.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid request body.",
	}

	CONTACT_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "11002",
		Message: "Contact not found.",
	}

	MATCH_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "11003",
		Message: "Duplicate match not found.",
	}

	MATCH_ALREADY_RESOLVED = ErrorMessage{
		Code:    errorPrefix + "11004",
		Message: "Duplicate match has already been resolved.",
	}

	MERGE_CONFLICT = ErrorMessage{
		Code:    errorPrefix + "11005",
		Message: "Another merge involving these contacts is in progress.",
	}

	INVALID_RESOLVE_ACTION = ErrorMessage{
		Code:    errorPrefix + "11006",
		Message: "Resolve action must be either 'merge' or 'ignore'.",
	}

	INVALID_MERGE_PAIR = ErrorMessage{
		Code:    errorPrefix + "11007",
		Message: "Primary and secondary contacts must be two distinct records.",
	}

	UNAUTHORIZED = ErrorMessage{
		Code:    errorPrefix + "11008",
		Message: "Request authentication failed.",
	}
)

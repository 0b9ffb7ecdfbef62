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

package store

import (
	"strconv"
	"time"

	"github.com/donorbridge/contact-data-service/internal/contact/model"
)

func scanContactRow(row map[string]interface{}) model.Contact {

	return model.Contact{
		ContactID: asString(row["contact_id"]),
		AccountID: asString(row["account_id"]),
		FirstName: asString(row["first_name"]),
		LastName:  asString(row["last_name"]),
		Status:    asString(row["status"]),
		CreatedAt: asTime(row["created_at"]),
		UpdatedAt: asTime(row["updated_at"]),
	}
}

// The generic row maps carry driver-dependent types: text arrives as string,
// numeric as []byte, counts as int64. These helpers keep the scanning code flat.

func asString(v interface{}) string {
	switch value := v.(type) {
	case string:
		return value
	case []byte:
		return string(value)
	default:
		return ""
	}
}

func asBool(v interface{}) bool {
	value, ok := v.(bool)
	return ok && value
}

func asInt(v interface{}) int {
	switch value := v.(type) {
	case int64:
		return int(value)
	case int:
		return value
	case []byte:
		parsed, _ := strconv.Atoi(string(value))
		return parsed
	default:
		return 0
	}
}

func asIntPtr(v interface{}) *int {
	if v == nil {
		return nil
	}
	value := asInt(v)
	return &value
}

func asTime(v interface{}) time.Time {
	value, ok := v.(time.Time)
	if !ok {
		return time.Time{}
	}
	return value
}

func asTimePtr(v interface{}) *time.Time {
	value, ok := v.(time.Time)
	if !ok {
		return nil
	}
	return &value
}

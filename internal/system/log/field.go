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

package log

// Field is a key-value pair attached to a log record.
type Field struct {
	Key   string
	Value interface{}
}

// String builds a Field carrying a string value.
func String(key, value string) Field {

	return Field{Key: key, Value: value}
}

// Int builds a Field carrying an integer value.
func Int(key string, value int) Field {

	return Field{Key: key, Value: value}
}

// Any builds a Field carrying an arbitrary value.
func Any(key string, value interface{}) Field {

	return Field{Key: key, Value: value}
}

// Error builds a Field under the conventional "error" key.
func Error(value error) Field {

	return Field{Key: "error", Value: value}
}

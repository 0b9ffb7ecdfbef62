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

package authn

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	errors2 "github.com/donorbridge/contact-data-service/internal/system/errors"
	"github.com/donorbridge/contact-data-service/internal/system/log"
)

// Identity carries the authenticated caller extracted from the request.
// Token issuance and validation live with the identity provider; this
// service only reads the claims it needs for attribution and scoping.
type Identity struct {
	UserID    string
	AccountID string
}

// FromRequest extracts the acting user and account from the Authorization
// header of the HTTP request.
func FromRequest(r *http.Request) (Identity, error) {

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return Identity{}, unauthorizedError("Missing bearer token.")
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := ParseJWTClaims(token)
	if err != nil {
		return Identity{}, unauthorizedError("Malformed bearer token.")
	}

	identity := Identity{}
	if sub, ok := claims["sub"].(string); ok {
		identity.UserID = sub
	}
	if account, ok := claims["account"].(string); ok {
		identity.AccountID = account
	}
	if identity.UserID == "" || identity.AccountID == "" {
		return Identity{}, unauthorizedError("Token is missing required claims.")
	}
	return identity, nil
}

// ParseJWTClaims parses claims from a JWT without verifying the signature.
// Signature verification happens upstream at the gateway.
func ParseJWTClaims(tokenString string) (map[string]interface{}, error) {

	logger := log.GetLogger()
	claims := jwt.MapClaims{}
	_, _, err := new(jwt.Parser).ParseUnverified(tokenString, claims)
	if err != nil {
		errMsg := "Error occurred when parsing claims from JWT token."
		logger.Debug(errMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.PARSING_ERROR.Code,
			Message:     errors2.PARSING_ERROR.Message,
			Description: errMsg,
		}, err)
		return nil, serverError
	}
	return claims, nil
}

func unauthorizedError(description string) error {

	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.UNAUTHORIZED.Code,
		Message:     errors2.UNAUTHORIZED.Message,
		Description: description,
	}, http.StatusUnauthorized)
}

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

package provider

import (
	"github.com/donorbridge/contact-data-service/internal/merge/service"
)

// MergeProviderInterface defines the interface for the merge provider.
type MergeProviderInterface interface {
	GetMergeService() service.MergeServiceInterface
}

// MergeProvider is the default implementation of the MergeProviderInterface.
type MergeProvider struct{}

// NewMergeProvider creates a new instance of MergeProvider.
func NewMergeProvider() MergeProviderInterface {
	return &MergeProvider{}
}

// GetMergeService returns the merge service instance.
func (mp *MergeProvider) GetMergeService() service.MergeServiceInterface {
	return service.GetMergeService()
}

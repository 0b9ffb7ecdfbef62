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

package managers

import (
	"net/http"
	"strings"

	"github.com/donorbridge/contact-data-service/internal/system/services"
)

type ServiceManagerInterface interface {
	RegisterServices(apiBasePath string) error
}

type ServiceManager struct {
	mux *http.ServeMux
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux) ServiceManagerInterface {

	return &ServiceManager{
		mux: mux,
	}
}

func (sm *ServiceManager) RegisterServices(apiBasePath string) error {

	contactService := services.NewContactService()
	duplicateService := services.NewDuplicateService()
	mergeService := services.NewMergeService()
	healthService := services.NewHealthService()

	// Health endpoints live outside the API base path for probes.
	sm.mux.HandleFunc("/health", healthService.Route)
	sm.mux.HandleFunc("/ready", healthService.Route)

	// Single dispatcher for all API services.
	sm.mux.Handle(apiBasePath+"/", http.StripPrefix(apiBasePath,
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := strings.TrimSuffix(r.URL.Path, "/")

			switch {
			case strings.HasPrefix(path, "/contacts"):
				contactService.Route(w, r)
			case strings.HasPrefix(path, "/duplicates"):
				duplicateService.Route(w, r)
			case strings.HasPrefix(path, "/merge-history"):
				mergeService.Route(w, r)
			default:
				http.NotFound(w, r)
			}
		})))
	return nil
}

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
	"github.com/donorbridge/contact-data-service/internal/system/config"
	"github.com/donorbridge/contact-data-service/internal/system/database/provider"
)

const (
	statusUp   = "up"
	statusDown = "down"
)

// ComponentStatus reports the outcome of a single readiness probe.
type ComponentStatus struct {
	Component string `json:"component"`
	Status    string `json:"status"`
	Detail    string `json:"detail,omitempty"`
}

// ReadinessStatus aggregates the per-component probes. Ready is true only
// when every component is up.
type ReadinessStatus struct {
	Ready      bool
	Components []ComponentStatus
}

// HealthCheckServiceInterface defines the service interface.
type HealthCheckServiceInterface interface {
	CheckReadiness() ReadinessStatus
}

// HealthCheckService is the default implementation.
type HealthCheckService struct{}

// GetHealthCheckService returns a new instance.
func GetHealthCheckService() HealthCheckServiceInterface {
	return &HealthCheckService{}
}

func (h HealthCheckService) CheckReadiness() ReadinessStatus {
	status := ReadinessStatus{Ready: true}
	status.add(checkRuntimeConfig())
	status.add(checkContactDatabase())
	return status
}

func (rs *ReadinessStatus) add(cs ComponentStatus) {
	if cs.Status != statusUp {
		rs.Ready = false
	}
	rs.Components = append(rs.Components, cs)
}

func checkRuntimeConfig() ComponentStatus {
	cs := ComponentStatus{Component: "runtime_config", Status: statusUp}
	if !config.IsInitialized() {
		cs.Status = statusDown
		cs.Detail = "runtime configuration is not initialized"
	}
	return cs
}

func checkContactDatabase() ComponentStatus {
	cs := ComponentStatus{Component: "contact_database", Status: statusUp}

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		cs.Status = statusDown
		cs.Detail = "failed to create database client: " + err.Error()
		return cs
	}
	defer dbClient.Close()

	if _, err := dbClient.ExecuteQuery("SELECT 1;"); err != nil {
		cs.Status = statusDown
		cs.Detail = "database connectivity check failed: " + err.Error()
	}
	return cs
}

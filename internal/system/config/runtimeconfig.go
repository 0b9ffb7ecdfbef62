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

package config

import (
	"errors"
	"sync"
)

// CDSRuntime holds the runtime configuration for the contact data service.
type CDSRuntime struct {
	CDSHome string `yaml:"cds_home"`
	Config  Config `yaml:"config"`
}

var (
	runtimeConfig *CDSRuntime
	once          sync.Once
)

// InitializeCDSRuntime installs the loaded deployment configuration as the
// process-wide runtime. Later calls are no-ops; the first configuration wins.
func InitializeCDSRuntime(serviceHome string, config *Config) error {

	if config == nil {
		return errors.New("runtime configuration cannot be nil")
	}

	once.Do(func() {
		runtimeConfig = &CDSRuntime{
			CDSHome: serviceHome,
			Config:  *config,
		}
	})

	return nil
}

// GetCDSRuntime returns the CDSRuntime configuration.
func GetCDSRuntime() *CDSRuntime {

	if runtimeConfig == nil {
		panic("CDSRuntime is not initialized")
	}
	return runtimeConfig
}

// IsInitialized reports whether the runtime configuration has been loaded.
func IsInitialized() bool {

	return runtimeConfig != nil
}

// ResetCDSRuntime clears the runtime configuration. Test use only.
func ResetCDSRuntime() {

	runtimeConfig = nil
	once = sync.Once{}
}

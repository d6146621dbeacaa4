// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package places

import "errors"

var (
	// ErrProviderUnavailable is returned when no provider client is configured.
	ErrProviderUnavailable = errors.New("places provider unavailable")

	// ErrRequestFailed is returned when the provider answered with an error status.
	ErrRequestFailed = errors.New("places request failed")

	// ErrNotFound is returned when a place identifier is unknown to the provider.
	ErrNotFound = errors.New("place not found")

	// ErrAPIKeyRequired is returned by Validate when no API key is configured.
	ErrAPIKeyRequired = errors.New("places config: APIKey is required")
)

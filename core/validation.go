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


package core

import (
	"fmt"
	"math"
)

// ValidateCoordinate validates a Coordinate according to domain rules.
//
// Validation rules:
//   - Lat must be a finite value in [-90, 90]
//   - Lng must be a finite value in [-180, 180]
func ValidateCoordinate(c Coordinate) error {
	if math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: %w: %v", ErrInvalidCoordinate, ErrLatitudeOutOfRange, c.Lat)
	}
	if math.IsNaN(c.Lng) || c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: %w: %v", ErrInvalidCoordinate, ErrLongitudeOutOfRange, c.Lng)
	}
	return nil
}

// ValidateResource validates a Resource according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Name must not be empty
//   - Location must be a valid coordinate when HasLocation is set
//
// NOT validated:
//   - Phone, Website and Hours (sentinel "N/A" is a legal value)
//   - Type (assigned by classification, may be any label)
func ValidateResource(resource *Resource) error {
	if resource == nil {
		return fmt.Errorf("%w: resource is nil", ErrInvalidResource)
	}

	if resource.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidResource, ErrEmptyID)
	}

	if resource.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidResource, ErrEmptyName)
	}

	if resource.HasLocation {
		if err := ValidateCoordinate(resource.Location); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidResource, err)
		}
	}

	return nil
}

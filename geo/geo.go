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


package geo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/poiesic/petplaces/core"
)

// DefaultTimeout bounds a single location attempt.
const DefaultTimeout = 5 * time.Second

// DefaultCoordinate is used whenever the caller's location cannot be determined.
var DefaultCoordinate = core.Coordinate{Lat: 20.5937, Lng: 78.9629}

var (
	// ErrNoLocator is returned when no location source is configured.
	ErrNoLocator = errors.New("no location source configured")

	// ErrLocationUnavailable is returned when the location source fails or times out.
	ErrLocationUnavailable = errors.New("location unavailable")
)

// Locator supplies the caller's current position.
type Locator interface {
	Locate(ctx context.Context) (core.Coordinate, error)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(ctx context.Context) (core.Coordinate, error)

// Locate calls f.
func (f LocatorFunc) Locate(ctx context.Context) (core.Coordinate, error) {
	return f(ctx)
}

// Fixed returns a Locator that always reports c.
func Fixed(c core.Coordinate) Locator {
	return LocatorFunc(func(context.Context) (core.Coordinate, error) {
		return c, nil
	})
}

// Resolution is the outcome of one location attempt.
type Resolution struct {
	Coordinate core.Coordinate
	Defaulted  bool   // Coordinate is DefaultCoordinate because the locator failed
	Advisory   string // Message for the caller when Defaulted
	Err        error  // Why the locator failed
}

// Resolve asks locator for a position once, waiting at most timeout.
// It never fails: any error, timeout, invalid coordinate or missing locator
// yields DefaultCoordinate together with an advisory.
func Resolve(ctx context.Context, locator Locator, timeout time.Duration) Resolution {
	if locator == nil {
		return Resolution{
			Coordinate: DefaultCoordinate,
			Defaulted:  true,
			Advisory:   "Geolocation is not supported. Using default location.",
			Err:        ErrNoLocator,
		}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type answer struct {
		c   core.Coordinate
		err error
	}
	ch := make(chan answer, 1)
	go func() {
		c, err := locator.Locate(ctx)
		ch <- answer{c, err}
	}()

	var err error
	select {
	case a := <-ch:
		err = a.err
		if err == nil {
			err = core.ValidateCoordinate(a.c)
		}
		if err == nil {
			return Resolution{Coordinate: a.c}
		}
	case <-ctx.Done():
		err = ctx.Err()
	}

	err = fmt.Errorf("%w: %w", ErrLocationUnavailable, err)
	return Resolution{
		Coordinate: DefaultCoordinate,
		Defaulted:  true,
		Advisory:   fmt.Sprintf("Location permission denied: %v. Using default location.", err),
		Err:        err,
	}
}

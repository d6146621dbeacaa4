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


package catalog

import "errors"

var (
	// ErrInvalidCatalog is returned when a category table cannot be decoded or is malformed.
	ErrInvalidCatalog = errors.New("invalid category catalog")

	// ErrDuplicateCategory is returned when two categories share an identifier.
	ErrDuplicateCategory = errors.New("duplicate category")

	// ErrNoKeywords is returned for a category with an empty keyword list.
	ErrNoKeywords = errors.New("category has no keywords")

	// ErrUnknownFamily is returned for a family value other than the known service families.
	ErrUnknownFamily = errors.New("unknown category family")
)

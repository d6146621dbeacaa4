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


// Package storage provides the storage abstraction layer for petplaces.
//
// The repositories defined here back two concerns: the place detail cache used
// to avoid repeated provider detail lookups, and checkpoints that let a cache
// warming sweep resume where it stopped.
//
// # Usage
//
// Open a persistent backend and detail repository:
//
//	backend, err := badger.OpenBackend("/var/lib/petplaces", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	details := badger.NewDetailRepository(backend)
//
// Use in tests with in-memory storage:
//
//	details, checkpoints, backend, err := badger.NewMemoryRepositories()
//
// # Serialization
//
// Records are encoded with mus-go. Every encoding starts with a format version
// byte; decoding a record written with another version fails with
// ErrSerializationFailed and callers treat it as a cache miss.
//
// # Thread Safety
//
// All repository implementations must be safe for concurrent use.
package storage

package badger

import (
	"encoding/binary"

	"github.com/poiesic/petplaces/core"
)

const (
	placeDetailPrefix = "plcdet:"
	checkpointPrefix  = "chkpt:"
)

// makeDetailKey generates a fixed-width key for a place detail.
// Provider place IDs are long opaque strings, so they are hashed down to 8 bytes.
// Format: prefix + BigEndian(blake2b-64(placeID))
func makeDetailKey(placeID string) []byte {
	buf := make([]byte, len(placeDetailPrefix)+8)
	offset := copy(buf, placeDetailPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(placeID)))
	return buf
}

// makeCheckpointKey generates a key for a named checkpoint.
func makeCheckpointKey(name string) []byte {
	return []byte(checkpointPrefix + name)
}

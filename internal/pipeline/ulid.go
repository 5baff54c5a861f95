package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Run IDs are ULIDs: 26-character Crockford Base32 strings with a millisecond
// timestamp prefix, so they sort by creation time.

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

func newRunID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	// Timestamp in first 6 bytes (big-endian 48-bit).
	b[0] = byte(ts >> 40)
	b[1] = byte(ts >> 32)
	b[2] = byte(ts >> 24)
	b[3] = byte(ts >> 16)
	b[4] = byte(ts >> 8)
	b[5] = byte(ts)
	// Random in remaining 10 bytes.
	rand.Read(b[6:])
	// Embed sequence in bytes 6-7 so IDs stay unique within one ms.
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	return encodeULID(b)
}

// encodeULID writes the 128 bits as 26 Crockford Base32 characters, five bits
// per character from the low end. 26*5 = 130, so the first character carries
// only the top three bits.
func encodeULID(b [16]byte) string {
	var out [26]byte
	for i := 25; i >= 0; i-- {
		bit := (25 - i) * 5
		idx := 15 - bit/8
		shift := bit % 8
		v := uint16(b[idx]) >> shift
		if shift > 3 && idx > 0 {
			v |= uint16(b[idx-1]) << (8 - shift)
		}
		out[i] = crockford[v&31]
	}
	return string(out[:])
}

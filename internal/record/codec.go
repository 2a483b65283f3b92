package record

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrMalformed is returned when a wire payload cannot be decoded back into
// the records it claims to carry. Decoding failures are fatal protocol
// errors: there is no partial-message recovery, the run aborts.
var ErrMalformed = errors.New("malformed record payload")

// Wire layout for a batch of records:
//
//	┌─────────┬─────────┬───────────┬─────────┬───────────┬───┐
//	│ count   │ len(r0) │ r0 bytes  │ len(r1) │ r1 bytes  │...│
//	│ uint32  │ uint32  │           │ uint32  │           │   │
//	└─────────┴─────────┴───────────┴─────────┴───────────┴───┘
//
// All integers are big-endian. The count prefix makes the batch
// self-describing, so the receiver can validate it against the count the
// sender announced before the payload was transferred.

// EncodeBatch frames a slice of records for point-to-point transfer.
// An empty or nil slice encodes to a batch with a zero count.
//
// Returns an error if any record exceeds MaxLength; such a record could
// never round-trip because DecodeBatch enforces the same bound.
func EncodeBatch(records []Record) ([]byte, error) {
	size := 4
	for _, r := range records {
		if len(r) > MaxLength {
			return nil, fmt.Errorf("encode: record length %d exceeds limit %d", len(r), MaxLength)
		}
		size += 4 + len(r)
	}

	buf := make([]byte, 0, size)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(records)))
	for _, r := range records {
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(r)))
		buf = append(buf, r...)
	}
	return buf, nil
}

// DecodeBatch unframes a batch produced by EncodeBatch. It must round-trip
// exactly for any records within the length bound.
//
// Any truncation, oversized length prefix, or trailing garbage yields an
// error wrapping ErrMalformed.
func DecodeBatch(buf []byte) ([]Record, error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("%w: truncated count prefix (%d bytes)", ErrMalformed, len(buf))
	}
	count := binary.BigEndian.Uint32(buf)
	buf = buf[4:]

	records := make([]Record, 0, count)
	for i := uint32(0); i < count; i++ {
		if len(buf) < 4 {
			return nil, fmt.Errorf("%w: truncated length prefix for record %d of %d", ErrMalformed, i, count)
		}
		n := binary.BigEndian.Uint32(buf)
		buf = buf[4:]
		if n > MaxLength {
			return nil, fmt.Errorf("%w: record %d length %d exceeds limit %d", ErrMalformed, i, n, MaxLength)
		}
		if uint32(len(buf)) < n {
			return nil, fmt.Errorf("%w: record %d truncated (%d of %d bytes)", ErrMalformed, i, len(buf), n)
		}
		records = append(records, Record(buf[:n]))
		buf = buf[n:]
	}
	if len(buf) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after %d records", ErrMalformed, len(buf), count)
	}
	return records, nil
}

// EncodeCount frames a bare record count for the count round of the
// exchange and gather phases, where counts must be known before any
// payload transfer begins.
func EncodeCount(n int) []byte {
	return binary.BigEndian.AppendUint32(nil, uint32(n))
}

// DecodeCount unframes a count produced by EncodeCount.
func DecodeCount(buf []byte) (int, error) {
	if len(buf) != 4 {
		return 0, fmt.Errorf("%w: count frame is %d bytes, want 4", ErrMalformed, len(buf))
	}
	return int(binary.BigEndian.Uint32(buf)), nil
}

// Package dawgio serializes a flattened record array to the frozen
// on-disk DAWG format and implements the read-side walker that is the
// authoritative definition of what a packed file means.
//
// Write follows compressedtrie's Serialize/Deserialize idiom -
// wrap the caller's io.Writer in a bufio.Writer, binary.Write each
// fixed-size value, Flush at the end - with the byte order changed
// from compressedtrie's big-endian header to the little-endian,
// header-less layout this format specifies.
package dawgio

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/nrankin/dawgc/internal/flatten"
)

// Write serializes records as a contiguous sequence of 32-bit
// little-endian words, with no header and no trailing bytes. The
// written byte length is always 4*len(records).
func Write(w io.Writer, records []flatten.Record) (int64, error) {
	buf := bufio.NewWriter(w)
	for _, r := range records {
		if err := binary.Write(buf, binary.LittleEndian, uint32(r)); err != nil {
			return 0, err
		}
	}
	if err := buf.Flush(); err != nil {
		return 0, err
	}
	return int64(len(records)) * 4, nil
}

// ReadRecords parses a raw packed byte slice (as produced by Write)
// back into a record array, for tests and tooling that want the
// decoded form without going through the mmap-backed Reader.
func ReadRecords(data []byte) []flatten.Record {
	records := make([]flatten.Record, len(data)/4)
	for i := range records {
		records[i] = flatten.Record(binary.LittleEndian.Uint32(data[i*4 : i*4+4]))
	}
	return records
}

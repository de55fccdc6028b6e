package metadata

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrOversizedTag reports a TIFF entry whose value size (type size times
// count) does not fit in 32 bits. goexif computes that size in a uint32, so
// the product wraps to a small number and the decoder then allocates Count
// values. A single corrupt entry can ask for tens of gigabytes.
var ErrOversizedTag = errors.New("oversized tag value")

// Size in bytes of each TIFF data type, indexed by type id.
var tiffTypeSize = [...]uint64{
	1:  1, // byte
	2:  1, // ascii
	3:  2, // short
	4:  4, // long
	5:  8, // rational
	6:  1, // signed byte
	7:  1, // undefined
	8:  2, // signed short
	9:  4, // signed long
	10: 8, // signed rational
	11: 4, // float
	12: 8, // double
}

// Tags whose value is the offset of another IFD that goexif follows.
var subIFDPointers = map[uint16]bool{
	0x8769: true, // Exif
	0x8825: true, // GPS
	0xA005: true, // Interoperability
}

// checkTIFFEntries walks every IFD goexif would decode from data and fails
// with ErrOversizedTag if one of their entries would overflow its value size.
// Structural damage (bad offsets, truncation) is left for goexif to report.
func checkTIFFEntries(data []byte) error {
	block := locateTIFF(data)
	if len(block) < 8 {
		return nil
	}

	var order binary.ByteOrder
	switch string(block[:4]) {
	case "II*\x00":
		order = binary.LittleEndian
	case "MM\x00*":
		order = binary.BigEndian
	default:
		return nil
	}

	visited := make(map[uint32]bool)
	pending := []uint32{order.Uint32(block[4:8])}
	for len(pending) > 0 {
		off := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		// Follow the chain of IFDs starting at off
		for off != 0 && !visited[off] {
			visited[off] = true
			next, subDirs, err := checkIFD(block, off, order)
			if err != nil {
				return err
			}
			pending = append(pending, subDirs...)
			off = next
		}
	}
	return nil
}

// checkIFD validates the entries of the IFD at off and returns the offset of
// the next IFD and the sub-IFD offsets it points to.
func checkIFD(block []byte, off uint32, order binary.ByteOrder) (uint32, []uint32, error) {
	start := uint64(off)
	if start+2 > uint64(len(block)) {
		return 0, nil, nil
	}
	n := int16(order.Uint16(block[start:]))
	if n <= 0 {
		return 0, nil, nil
	}

	var subDirs []uint32
	pos := start + 2
	for i := 0; i < int(n); i++ {
		if pos+12 > uint64(len(block)) {
			return 0, subDirs, nil
		}
		entry := block[pos : pos+12]
		tag := order.Uint16(entry[0:2])
		typ := order.Uint16(entry[2:4])
		count := order.Uint32(entry[4:8])
		pos += 12

		if int(typ) >= len(tiffTypeSize) || tiffTypeSize[typ] == 0 {
			continue
		}
		if size := tiffTypeSize[typ] * uint64(count); size > math.MaxUint32 {
			return 0, nil, fmt.Errorf("%w: tag 0x%04x holds %d values of %d bytes",
				ErrOversizedTag, tag, count, tiffTypeSize[typ])
		}
		if subIFDPointers[tag] && count >= 1 {
			switch typ {
			case 3:
				subDirs = append(subDirs, uint32(order.Uint16(entry[8:10])))
			case 4:
				subDirs = append(subDirs, order.Uint32(entry[8:12]))
			}
		}
	}

	if pos+4 > uint64(len(block)) {
		return 0, subDirs, nil
	}
	return order.Uint32(block[pos:]), subDirs, nil
}

// locateTIFF finds the TIFF block the way exif.Decode does: the stream itself
// for TIFF and raw "Exif\0\0" input, otherwise the first JPEG APP1 segment.
// It returns nil if there is none.
func locateTIFF(data []byte) []byte {
	exifHeader := []byte("Exif\x00\x00")
	if len(data) < 4 {
		return nil
	}
	switch string(data[:4]) {
	case "II*\x00", "MM\x00*":
		return data
	case "Exif":
		if !bytes.HasPrefix(data, exifHeader) {
			return nil
		}
		return data[len(exifHeader):]
	}

	for i := 0; i+1 < len(data); {
		j := bytes.IndexByte(data[i:], 0xFF)
		if j < 0 || i+j+1 >= len(data) {
			return nil
		}
		i += j + 2
		if data[i-1] != 0xE1 || i+2 > len(data) {
			continue
		}
		segLen := int(binary.BigEndian.Uint16(data[i:])) - 2
		if segLen == 0 {
			continue
		}
		if segLen < 0 {
			return nil
		}
		seg := data[i+2 : min(i+2+segLen, len(data))]
		if !bytes.HasPrefix(seg, exifHeader) {
			return nil
		}
		return seg[len(exifHeader):]
	}
	return nil
}

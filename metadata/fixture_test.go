package metadata

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

// EXIF tag ids used by the fixtures
const (
	tagDateTime          uint16 = 0x0132
	tagExifIFDPointer    uint16 = 0x8769
	tagDateTimeOriginal  uint16 = 0x9003
	tagDateTimeDigitized uint16 = 0x9004
)

const (
	typeASCII uint16 = 2
	typeLong  uint16 = 4
)

type ifdEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	value []byte // inline value when len <= 4, otherwise placed in the data area
}

// buildTIFF assembles a little-endian TIFF whose IFD0 holds ifd0 and whose
// EXIF sub-IFD holds exifDir. Values are ASCII strings in EXIF date layout.
func buildTIFF(ifd0, exifDir map[uint16]string) []byte {
	asciiEntries := func(m map[uint16]string) []ifdEntry {
		var entries []ifdEntry
		for tag, s := range m {
			v := append([]byte(s), 0)
			entries = append(entries, ifdEntry{tag: tag, typ: typeASCII, count: uint32(len(v)), value: v})
		}
		return entries
	}

	dir0 := asciiEntries(ifd0)
	dir1 := asciiEntries(exifDir)
	if len(dir1) > 0 {
		dir0 = append(dir0, ifdEntry{tag: tagExifIFDPointer, typ: typeLong, count: 1})
	}
	sort.Slice(dir0, func(i, j int) bool { return dir0[i].tag < dir0[j].tag })
	sort.Slice(dir1, func(i, j int) bool { return dir1[i].tag < dir1[j].tag })

	dirSize := func(n int) uint32 { return uint32(2 + 12*n + 4) }
	off0 := uint32(8)
	off1 := off0 + dirSize(len(dir0))
	dataOff := off1
	if len(dir1) > 0 {
		dataOff += dirSize(len(dir1))
	}

	le := binary.LittleEndian
	var data bytes.Buffer
	writeDir := func(buf *bytes.Buffer, entries []ifdEntry) {
		binary.Write(buf, le, uint16(len(entries)))
		for _, e := range entries {
			binary.Write(buf, le, e.tag)
			binary.Write(buf, le, e.typ)
			binary.Write(buf, le, e.count)
			if e.tag == tagExifIFDPointer {
				binary.Write(buf, le, off1)
				continue
			}
			if len(e.value) <= 4 {
				inline := make([]byte, 4)
				copy(inline, e.value)
				buf.Write(inline)
				continue
			}
			binary.Write(buf, le, dataOff+uint32(data.Len()))
			data.Write(e.value)
		}
		binary.Write(buf, le, uint32(0))
	}

	var out bytes.Buffer
	out.WriteString("II")
	binary.Write(&out, le, uint16(42))
	binary.Write(&out, le, off0)
	writeDir(&out, dir0)
	if len(dir1) > 0 {
		writeDir(&out, dir1)
	}
	out.Write(data.Bytes())
	return out.Bytes()
}

// wrapJPEG embeds a TIFF block in the APP1 segment of a minimal JPEG.
func wrapJPEG(tiffData []byte) []byte {
	var out bytes.Buffer
	out.Write([]byte{0xFF, 0xD8, 0xFF, 0xE1})
	binary.Write(&out, binary.BigEndian, uint16(2+6+len(tiffData)))
	out.WriteString("Exif\x00\x00")
	out.Write(tiffData)
	out.Write([]byte{0xFF, 0xD9})
	return out.Bytes()
}

func writeTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

// fakeTags is a TagMapping over display strings.
type fakeTags map[Tag]string

func (f fakeTags) Display(tag Tag) (string, bool) {
	s, ok := f[tag]
	return s, ok
}

// fakeTimes is a FileTimes where a zero time means unsupported.
type fakeTimes struct {
	birth, mod, access time.Time
}

func (f fakeTimes) BirthTime() (time.Time, bool)  { return f.birth, !f.birth.IsZero() }
func (f fakeTimes) ModTime() (time.Time, bool)    { return f.mod, !f.mod.IsZero() }
func (f fakeTimes) AccessTime() (time.Time, bool) { return f.access, !f.access.IsZero() }

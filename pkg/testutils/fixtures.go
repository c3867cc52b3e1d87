// Copyright 2025 walteh LLC
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

// Package testutils builds tiny, valid media fixtures for tests.
package testutils

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 📅 exifDateLayout is the timestamp layout mandated by the EXIF standard
const exifDateLayout = "2006:01:02 15:04:05"

// 🕰️ quicktimeEpoch is the zero point of mvhd timestamps
var quicktimeEpoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// 📷 WriteJPEG writes a minimal JPEG whose EXIF DateTimeOriginal tag carries
// the given capture time.
func WriteJPEG(t *testing.T, path string, taken time.Time) {
	t.Helper()
	writeJPEGWithTIFF(t, path, tiffWithDateTimeOriginal(taken))
}

// 📷 WriteJPEGDateTimeOnly writes a JPEG carrying only the IFD0 DateTime tag,
// the fallback used when no capture time is present.
func WriteJPEGDateTimeOnly(t *testing.T, path string, taken time.Time) {
	t.Helper()
	writeJPEGWithTIFF(t, path, tiffWithDateTime(taken))
}

// 📷 WriteJPEGNoDate writes a JPEG with an EXIF segment but no date tags.
func WriteJPEGNoDate(t *testing.T, path string) {
	t.Helper()
	writeJPEGWithTIFF(t, path, tiffEmpty())
}

// 🎬 WriteMP4 writes a minimal MP4 whose movie header carries the given
// creation time.
func WriteMP4(t *testing.T, path string, taken time.Time) {
	t.Helper()
	secs := taken.UTC().Sub(quicktimeEpoch) / time.Second
	require.NoError(t, os.WriteFile(path, mp4Bytes(uint32(secs)), 0644), "writing mp4 fixture")
}

// 🎬 WriteMP4NoDate writes an MP4 whose movie header creation time is zero,
// as written by cameras that do not track time.
func WriteMP4NoDate(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, mp4Bytes(0), 0644), "writing mp4 fixture")
}

// writeJPEGWithTIFF wraps a TIFF blob in SOI / APP1 / EOI markers
func writeJPEGWithTIFF(t *testing.T, path string, tiff []byte) {
	t.Helper()

	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xD8}) // SOI
	buf.Write([]byte{0xFF, 0xE1}) // APP1
	// segment length covers itself plus the Exif header and TIFF data
	length := 2 + 6 + len(tiff)
	buf.Write([]byte{byte(length >> 8), byte(length)})
	buf.WriteString("Exif\x00\x00")
	buf.Write(tiff)
	buf.Write([]byte{0xFF, 0xD9}) // EOI

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644), "writing jpeg fixture")
}

// tiffHeader emits a little-endian TIFF header pointing IFD0 at offset 8
func tiffHeader(buf *bytes.Buffer) {
	buf.WriteString("II")
	le := binary.LittleEndian
	var word [4]byte
	le.PutUint16(word[:2], 0x2A)
	buf.Write(word[:2])
	le.PutUint32(word[:], 8)
	buf.Write(word[:])
}

// ifdEntry emits a single 12-byte IFD entry
func ifdEntry(buf *bytes.Buffer, tag, typ uint16, count, value uint32) {
	le := binary.LittleEndian
	var word [4]byte
	le.PutUint16(word[:2], tag)
	buf.Write(word[:2])
	le.PutUint16(word[:2], typ)
	buf.Write(word[:2])
	le.PutUint32(word[:], count)
	buf.Write(word[:])
	le.PutUint32(word[:], value)
	buf.Write(word[:])
}

// ifdStart emits the entry count, ifdEnd the next-IFD offset (always 0 here)
func ifdStart(buf *bytes.Buffer, entries uint16) {
	var word [2]byte
	binary.LittleEndian.PutUint16(word[:], entries)
	buf.Write(word[:])
}

func ifdEnd(buf *bytes.Buffer) {
	buf.Write([]byte{0, 0, 0, 0})
}

// tiffWithDateTimeOriginal builds IFD0 -> Exif sub-IFD -> DateTimeOriginal
func tiffWithDateTimeOriginal(taken time.Time) []byte {
	const (
		tagExifIFDPointer   = 0x8769
		tagDateTimeOriginal = 0x9003
		typeLong            = 4
		typeASCII           = 2
	)

	var buf bytes.Buffer
	tiffHeader(&buf)

	// IFD0 at offset 8: one entry pointing at the Exif sub-IFD (offset 26)
	ifdStart(&buf, 1)
	ifdEntry(&buf, tagExifIFDPointer, typeLong, 1, 26)
	ifdEnd(&buf)

	// Exif sub-IFD at offset 26: one ASCII date entry, value at offset 44
	ifdStart(&buf, 1)
	ifdEntry(&buf, tagDateTimeOriginal, typeASCII, 20, 44)
	ifdEnd(&buf)

	buf.WriteString(taken.Format(exifDateLayout))
	buf.WriteByte(0)

	return buf.Bytes()
}

// tiffWithDateTime builds IFD0 carrying only the modification DateTime tag
func tiffWithDateTime(taken time.Time) []byte {
	const (
		tagDateTime = 0x0132
		typeASCII   = 2
	)

	var buf bytes.Buffer
	tiffHeader(&buf)

	// IFD0 at offset 8: one ASCII date entry, value at offset 26
	ifdStart(&buf, 1)
	ifdEntry(&buf, tagDateTime, typeASCII, 20, 26)
	ifdEnd(&buf)

	buf.WriteString(taken.Format(exifDateLayout))
	buf.WriteByte(0)

	return buf.Bytes()
}

// tiffEmpty builds a TIFF with an empty IFD0
func tiffEmpty() []byte {
	var buf bytes.Buffer
	tiffHeader(&buf)
	ifdStart(&buf, 0)
	ifdEnd(&buf)
	return buf.Bytes()
}

// mp4Bytes builds ftyp + moov/mvhd with the given creation time
func mp4Bytes(creationSecs uint32) []byte {
	be := binary.BigEndian

	// mvhd: version/flags + creation + modification + timescale + duration +
	// rate + volume + reserved + matrix + predefined + next track id
	mvhdPayload := make([]byte, 100)
	be.PutUint32(mvhdPayload[4:8], creationSecs)
	be.PutUint32(mvhdPayload[12:16], 1000) // timescale
	be.PutUint32(mvhdPayload[96:100], 2)   // next track id

	var buf bytes.Buffer
	writeBox := func(boxType string, payload []byte) {
		var size [4]byte
		be.PutUint32(size[:], uint32(8+len(payload)))
		buf.Write(size[:])
		buf.WriteString(boxType)
		buf.Write(payload)
	}

	writeBox("ftyp", []byte("isom\x00\x00\x02\x00isom"))

	var mvhd bytes.Buffer
	var size [4]byte
	be.PutUint32(size[:], uint32(8+len(mvhdPayload)))
	mvhd.Write(size[:])
	mvhd.WriteString("mvhd")
	mvhd.Write(mvhdPayload)

	writeBox("moov", mvhd.Bytes())

	return buf.Bytes()
}

package sniffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectHeadAcceptedFormats(t *testing.T) {
	cases := []struct {
		name string
		head []byte
		typ  MediaType
		mime string
	}{
		{
			name: "jpeg",
			head: []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F'},
			typ:  TypeJPEG,
			mime: "image/jpeg",
		},
		{
			name: "png",
			head: []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0x00, 0x00, 0x00, 0x0d},
			typ:  TypePNG,
			mime: "image/png",
		},
		{
			name: "gif87a",
			head: []byte("GIF87a\x01\x00\x01\x00"),
			typ:  TypeGIF,
			mime: "image/gif",
		},
		{
			name: "gif89a",
			head: []byte("GIF89a\x01\x00\x01\x00"),
			typ:  TypeGIF,
			mime: "image/gif",
		},
		{
			name: "webp",
			head: []byte("RIFF\x24\x00\x00\x00WEBPVP8 "),
			typ:  TypeWEBP,
			mime: "image/webp",
		},
		{
			name: "avif",
			head: []byte{0x00, 0x00, 0x00, 0x1c, 'f', 't', 'y', 'p', 'a', 'v', 'i', 'f', 0x00, 0x00, 0x00, 0x00},
			typ:  TypeAVIF,
			mime: "image/avif",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := DetectHead(tc.head)
			require.NoError(t, err)
			assert.Equal(t, tc.typ, result.Type)
			assert.Equal(t, tc.mime, result.MIME)
		})
	}
}

func TestDetectHeadRejectsUnknownBytes(t *testing.T) {
	cases := []struct {
		name string
		head []byte
	}{
		{"empty", nil},
		{"plain text", []byte("hello world, definitely not an image")},
		{"pdf", []byte("%PDF-1.7\n")},
		{"svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`)},
		{"mp4 ftyp without avif brand", []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm'}},
		{"riff without webp", []byte("RIFF\x24\x00\x00\x00WAVEfmt ")},
		{"random binary", []byte{0xde, 0xad, 0xbe, 0xef, 0xde, 0xad, 0xbe, 0xef, 0xde, 0xad, 0xbe, 0xef}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DetectHead(tc.head)
			assert.ErrorIs(t, err, ErrUnknownType)
		})
	}
}

func TestDetectHeadTruncatedHeads(t *testing.T) {
	// Prefixes shorter than each format's magic must not match.
	cases := []struct {
		name string
		head []byte
	}{
		{"jpeg two bytes", []byte{0xff, 0xd8}},
		{"png partial magic", []byte{0x89, 'P', 'N', 'G'}},
		{"gif five bytes", []byte("GIF89")},
		{"webp riff only", []byte("RIFF\x24\x00\x00\x00WEB")},
		{"avif eleven bytes", []byte{0x00, 0x00, 0x00, 0x1c, 'f', 't', 'y', 'p', 'a', 'v', 'i'}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DetectHead(tc.head)
			assert.ErrorIs(t, err, ErrUnknownType)
		})
	}
}

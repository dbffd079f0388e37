package sniffer

import (
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectHead(t *testing.T) {
	cases := []struct {
		name string
		head []byte
		want MediaType
		mime string
	}{
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0}, TypeJPEG, "image/jpeg"},
		{"png", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0}, TypePNG, "image/png"},
		{"gif87", []byte("GIF87a......"), TypeGIF, "image/gif"},
		{"gif89", []byte("GIF89a......"), TypeGIF, "image/gif"},
		{"mp4", []byte{0, 0, 0, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm'}, TypeMP4, "video/mp4"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := DetectHead(tc.head)
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.Type)
			assert.Equal(t, tc.mime, result.MIME)
		})
	}
}

func TestDetectHeadRejectsUnknown(t *testing.T) {
	_, err := DetectHead([]byte("%PDF-1.7"))
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = DetectHead(nil)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestMimeTypeFromHeader(t *testing.T) {
	h := textproto.MIMEHeader{}
	assert.Equal(t, "", MimeTypeFromHeader(h))

	h.Set("Content-Type", "image/png")
	assert.Equal(t, "image/png", MimeTypeFromHeader(h))

	h.Set("Content-Type", "video/mp4; boundary=x")
	assert.Equal(t, "video/mp4", MimeTypeFromHeader(h))
}

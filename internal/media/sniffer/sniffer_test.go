package sniffer

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		head []byte
		want ImageType
		ext  string
	}{
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 0x00}, TypeJPEG, "jpg"},
		{"png", append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, 0, 0), TypePNG, "png"},
		{"gif", []byte("GIF89a\x01\x00"), TypeGIF, "gif"},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), TypeWEBP, "webp"},
		{"avif", []byte("\x00\x00\x00\x1cftypavif\x00\x00\x00\x00"), TypeAVIF, "avif"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Detect(tc.head)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Type)
			assert.Equal(t, tc.ext, got.Extension())
		})
	}
}

func TestDetect_RejectsMarkupAndGarbage(t *testing.T) {
	for _, head := range [][]byte{
		nil,
		[]byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`),
		[]byte(`<?xml version="1.0"?><svg/>`),
		[]byte("hello world"),
	} {
		_, err := Detect(head)
		assert.ErrorIs(t, err, ErrUnsupported)
	}
}

func TestDeclaredType(t *testing.T) {
	h := http.Header{}
	assert.Equal(t, "", DeclaredType(h))

	h.Set("Content-Type", "Image/PNG; charset=binary")
	assert.Equal(t, "image/png", DeclaredType(h))
}

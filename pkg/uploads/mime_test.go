package uploads

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectMIMEFromReader(t *testing.T) {
	t.Parallel()

	pngMagic := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	assert.Equal(t, "image/png", detectMIMEFromReader(bytes.NewReader(pngMagic)))

	jpegMagic := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}
	assert.Equal(t, "image/jpeg", detectMIMEFromReader(bytes.NewReader(jpegMagic)))

	assert.Equal(t, MIMEOctetStream, detectMIMEFromReader(bytes.NewReader(nil)))
}

func TestDetectMIMEWithReader(t *testing.T) {
	t.Parallel()

	t.Run("seekable reader rewinds", func(t *testing.T) {
		t.Parallel()

		pngMagic := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
		mimeType, rs := detectMIMEWithReader(bytes.NewReader(pngMagic))
		assert.Equal(t, "image/png", mimeType)

		buf := make([]byte, len(pngMagic))
		n, _ := rs.Read(buf)
		assert.Equal(t, len(pngMagic), n, "reader should be rewound to the start")
	})

	t.Run("plain reader gets buffered", func(t *testing.T) {
		t.Parallel()

		mimeType, rs := detectMIMEWithReader(strings.NewReader("plain text content"))
		assert.Equal(t, "text/plain; charset=utf-8", mimeType)
		assert.NotNil(t, rs)
	})
}

func TestExtFromMIME(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".jpg", ExtFromMIME("image/jpeg"))
	assert.Equal(t, ".png", ExtFromMIME("IMAGE/PNG"))
	assert.Equal(t, ".txt", ExtFromMIME("text/plain; charset=utf-8"))
	assert.Equal(t, "", ExtFromMIME("application/x-mystery"))
}

func TestMatchesMIME(t *testing.T) {
	t.Parallel()

	assert.True(t, matchesMIME("image/png", []string{"image/*"}))
	assert.True(t, matchesMIME("image/png; charset=binary", []string{"image/png"}))
	assert.True(t, matchesMIME("APPLICATION/PDF", []string{"application/pdf"}))
	assert.False(t, matchesMIME("imagefake/png", []string{"image/*"}))
	assert.False(t, matchesMIME("text/html", []string{"image/*", "application/pdf"}))
}

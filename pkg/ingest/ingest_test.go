package ingest

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestClassifyByExtension(t *testing.T) {
	assert.Equal(t, KindPDF, Classify("report.pdf"))
	assert.Equal(t, KindPDF, Classify("REPORT.PDF"))
	assert.Equal(t, KindCSV, Classify("prices.csv"))
	assert.Equal(t, KindText, Classify("notes.txt"))
	assert.Equal(t, KindText, Classify("README.md"))
	assert.Equal(t, KindText, Classify("noextension"))
}

func TestSizeLabel(t *testing.T) {
	assert.Equal(t, "512 B", SizeLabel(512))
	assert.Equal(t, "1.0 KB", SizeLabel(1024))
	assert.Equal(t, "1.5 KB", SizeLabel(1536))
	assert.Equal(t, "2.0 MB", SizeLabel(2*1024*1024))
}

func TestDecodeTextValidUTF8(t *testing.T) {
	in := "héllo wörld — ok"
	assert.Equal(t, in, DecodeText([]byte(in)))
}

func TestDecodeTextInvalidBytesNeverFail(t *testing.T) {
	raw := []byte{'a', 'b', 0xff, 0xfe, 'c'}
	out := DecodeText(raw)

	assert.True(t, utf8.ValidString(out))
	assert.True(t, strings.HasPrefix(out, "ab"))
	assert.True(t, strings.HasSuffix(out, "c"))
	assert.Contains(t, out, "�")
}

func TestDecodeTextEmpty(t *testing.T) {
	assert.Equal(t, "", DecodeText(nil))
	assert.Equal(t, "", DecodeText([]byte{}))
}

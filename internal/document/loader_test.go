package document

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/akolanti/DocChat/internal/config"
	"github.com/akolanti/DocChat/internal/domain/commonModels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_PlainText(t *testing.T) {
	content := "The sky is blue.\r\n  trailing spaces  \n"
	doc, err := Load("notes.txt", strings.NewReader(content))

	require.NoError(t, err)
	assert.Equal(t, content, doc.Content)
	assert.Equal(t, "notes.txt", doc.Name)
	assert.Equal(t, len(content), doc.Size)
	assert.Equal(t, commonModels.TXT, doc.ContentType)
	assert.False(t, doc.LoadedAt.IsZero())
}

func TestLoad_UnicodeText(t *testing.T) {
	content := "Bầu trời màu xanh. 空は青い。"
	doc, err := Load("vi.txt", strings.NewReader(content))

	require.NoError(t, err)
	assert.Equal(t, content, doc.Content)
}

func TestLoad_InvalidUTF8(t *testing.T) {
	data := []byte("ok so far \xff\xfe more")
	doc, err := LoadBytes("latin1.txt", data)

	require.Error(t, err)
	assert.Empty(t, doc.Content)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.True(t, errors.Is(err, ErrInvalidEncoding))
	assert.Equal(t, "latin1.txt", loadErr.Name)
	assert.Contains(t, loadErr.Error(), "byte 10")
}

func TestLoad_Empty(t *testing.T) {
	_, err := Load("empty.txt", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestLoad_ReadFailure(t *testing.T) {
	_, err := Load("broken.txt", iotest.ErrReader(errors.New("connection reset")))

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.ErrorIs(t, err, ErrUnreadable)
	assert.Contains(t, loadErr.Error(), "connection reset")
}

func TestLoad_NilReader(t *testing.T) {
	_, err := Load("nothing.txt", nil)
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestLoad_MalformedPDF(t *testing.T) {
	_, err := LoadBytes("fake.pdf", []byte("this is not a pdf"))

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestGetDocType(t *testing.T) {
	tests := []struct {
		path     string
		expected commonModels.DocType
	}{
		{"test.pdf", commonModels.PDF},
		{"DOC.DOCX", commonModels.DOCX},
		{"doc.odt", commonModels.DOCX},
		{"notes.txt", commonModels.TXT},
		{"README", commonModels.TXT},
		{"data.csv", commonModels.TXT},
	}

	for _, tt := range tests {
		if got := getDocType(tt.path); got != tt.expected {
			t.Errorf("getDocType(%s) = %v; want %v", tt.path, got, tt.expected)
		}
	}
}

func TestPreview(t *testing.T) {
	short := "short text"
	assert.Equal(t, short, Preview(short))

	exact := strings.Repeat("a", config.DocumentPreviewLen)
	assert.Equal(t, exact, Preview(exact))

	long := strings.Repeat("é", config.DocumentPreviewLen+20)
	p := Preview(long)
	assert.True(t, strings.HasSuffix(p, "..."))
	assert.Equal(t, config.DocumentPreviewLen+3, len([]rune(p)))
}

package filetype

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := map[string]Category{
		"photo.JPG":         Image,
		"archive.tar.gz":    Archive,
		"noext":             Other,
		"song.flac":         Audio,
		"clip.3gp":          Video,
		"manual.pdf":        PDF,
		"notes.txt":         Document,
		"installer.apk":     Package,
		"script.sh":         Other,
		".hidden":           Other,
		"dir.d/file":        Other,
		"/sdcard/a.b/c.MOV": Video,
	}

	for name, want := range cases {
		assert.Equal(t, want, Classify(name), name)
	}
}

func TestMimeType(t *testing.T) {
	assert.Equal(t, "image/jpeg", MimeType("IMG_001.JPEG"))
	assert.Equal(t, "application/vnd.ms-excel", MimeType("budget.xlsx"))
	assert.Equal(t, "audio/mp3", MimeType("a.mp3"))
	assert.Equal(t, Wildcard, MimeType("video.mkv"))
	assert.Equal(t, Wildcard, MimeType("README"))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "archive", Archive.String())
	assert.Equal(t, "other", Category(99).String())
	assert.Equal(t, "[img]", Image.Icon())
}

func TestDetect(t *testing.T) {
	mtype, err := Detect(strings.NewReader("%PDF-1.4\n"))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mtype)

	mtype, err = Detect(strings.NewReader("hello world\n"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(mtype, "text/plain"), mtype)
}

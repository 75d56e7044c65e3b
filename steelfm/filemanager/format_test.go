package filemanager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	cases := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{-5, "0 B"},
		{1, "1.0 B"},
		{1023, "1023.0 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{1073741824, "1.0 GB"},
		{3 << 40, "3.0 TB"},
		{2048 << 40, "2048.0 TB"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, FormatSize(c.size), "size %d", c.size)
	}
}

func TestFormatDate(t *testing.T) {
	when := time.Date(2023, time.December, 9, 23, 30, 0, 0, time.Local)
	assert.Equal(t, "Dec 09, 2023", FormatDate(when))
}

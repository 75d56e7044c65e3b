package filemanager

import (
	"fmt"
	"time"
)

// DateLayout renders modification dates as "Jan 02, 2006".
const DateLayout = "Jan 02, 2006"

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders size in base-1024 units with one decimal place.
func FormatSize(size int64) string {
	if size <= 0 {
		return "0 B"
	}
	exp := 0
	div := int64(1)
	for exp < len(sizeUnits)-1 && size/div >= 1024 {
		div *= 1024
		exp++
	}
	return fmt.Sprintf("%.1f %s", float64(size)/float64(div), sizeUnits[exp])
}

// FormatDate renders t in local time using DateLayout.
func FormatDate(t time.Time) string {
	return t.Local().Format(DateLayout)
}

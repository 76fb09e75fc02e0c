package checkpointer

import (
	"fmt"
	"time"
)

// timeLayout orders checkpoint names chronologically when sorted
const timeLayout = "20060102T150405.000000000"

// FilenameEnumerator returns a function which returns numbered
// filenames: filename followed by start+1, start+2, ... on successive
// calls, then extension. The extension includes its leading dot.
func FilenameEnumerator(start int, filename, extension string) func() string {
	n := start
	return func() string {
		n++
		return fmt.Sprintf("%s%d%s", filename, n, extension)
	}
}

// FileTimer returns a function which returns filenames stamped with
// the UTC time of the call: filename, a hyphen, the time, then
// extension.
func FileTimer(filename, extension string) func() string {
	return func() string {
		stamp := time.Now().UTC().Format(timeLayout)
		return fmt.Sprintf("%s-%s%s", filename, stamp, extension)
	}
}

package hardrt

import (
	"bytes"
	"runtime"
	"strconv"
)

// goroutineID extracts the calling goroutine's numeric id by parsing the
// header line of runtime.Stack. It is used only to implement a nestable
// critical section (crit.go): re-entry is permitted for the goroutine that
// currently holds it, and Go provides no cheaper supported way to ask "am
// I the same goroutine as last time".
func goroutineID() int64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	buf = buf[:n]
	// Header line looks like: "goroutine 123 [running]:"
	const prefix = "goroutine "
	if i := bytes.Index(buf, []byte(prefix)); i >= 0 {
		buf = buf[i+len(prefix):]
		if j := bytes.IndexByte(buf, ' '); j >= 0 {
			id, err := strconv.ParseInt(string(buf[:j]), 10, 64)
			if err == nil {
				return id
			}
		}
	}
	return -1
}

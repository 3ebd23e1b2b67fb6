package format

import (
	"fmt"
)

// Binary unit sizes (IEC standard)
const (
	KiB int64 = 1024
	MiB int64 = 1024 * KiB
	GiB int64 = 1024 * MiB
)

// Bytes formats a byte count as a human-readable string using binary units.
// Uploaded images are capped well below a gibibyte, so GiB is the largest unit.
//
//	Bytes(1536) = "1.5 KiB"
func Bytes(n int64) string {
	if n < 0 {
		return "-" + Bytes(-n)
	}

	switch {
	case n >= GiB:
		return fmt.Sprintf("%.1f GiB", float64(n)/float64(GiB))
	case n >= MiB:
		return fmt.Sprintf("%.1f MiB", float64(n)/float64(MiB))
	case n >= KiB:
		return fmt.Sprintf("%.1f KiB", float64(n)/float64(KiB))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

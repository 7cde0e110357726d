// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"time"
)

// FormatDuration renders d as "mm:ss", or "hh:mm:ss" once it reaches an
// hour. Fractions of a second are dropped.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	total := int64(d / time.Second)
	h := total / 3600
	m := total % 3600 / 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}

	return fmt.Sprintf("%02d:%02d", m, s)
}

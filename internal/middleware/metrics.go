// AngelaMos | 2026
// metrics.go

package middleware

import (
	"strconv"
	"time"

	"github.com/carterperez-dev/recraft/internal/core"
)

func observeRequest(method, route string, status int, d time.Duration) {
	core.HTTPRequestsTotal.
		WithLabelValues(method, route, strconv.Itoa(status)).
		Inc()
	core.HTTPRequestDuration.
		WithLabelValues(method, route).
		Observe(d.Seconds())
}

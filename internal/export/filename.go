package export

import (
	"fmt"
	"strconv"
	"time"

	"plate-perf/internal/plate"
)

// Filename returns the artifact name for an export performed at the given
// time: plate_{width}x{height}_p{spacing}_d{min}-{max}_{unixSeconds}.svg.
func Filename(cfg plate.Config, now time.Time) string {
	return fmt.Sprintf("plate_%sx%s_p%s_d%s-%s_%d.svg",
		compact(cfg.WidthMM), compact(cfg.HeightMM),
		compact(cfg.SpacingMM),
		compact(cfg.MinHoleMM), compact(cfg.MaxHoleMM),
		now.Unix())
}

// compact formats a length without trailing zeros (10, 2.5, 0.75).
func compact(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

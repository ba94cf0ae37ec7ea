package metrics

// DefaultBuckets provides a common set of histogram buckets in seconds reused
// across the application for latency metrics. The tail is sized for SMTP
// sessions (dial plus several round-trips), which run far longer than local
// handler work.
var DefaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30} //nolint: gochecknoglobals

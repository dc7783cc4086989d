// Package metrics defines a typed, name-keyed facade over a metrics backend.
//
// A Registry hands out counters, gauges, histograms, summaries and error
// counters by name. Every name is normalized (see NormalizeName), prefixed
// with the registry's prefix and bound to exactly one Kind for the lifetime
// of the registry. The Prometheus implementation lives in
// pkg/metrics/driver/prometheus.
//
// # Basic Usage
//
//	reg := prometheus.New(prometheus.Options{Prefix: "MyApp"})
//
//	logins, err := reg.Gauge("Sessions.Active", "Active user sessions")
//	if err != nil {
//		log.Fatal(err)
//	}
//	logins.Inc()
//
//	// "sessions-active" normalizes to the same name and returns the same gauge
//	same := reg.MustGauge("sessions-active")
//	same.Dec()
//
// # Descriptions
//
// Help text is chosen in this order: an explicit description passed to the
// getter, an entry in the Descriptions table under the qualified name
// (for example "myapp_sessions_active"), and finally the qualified name
// itself.
//
// # Timing
//
// Histograms and summaries start a Timer with Time. The elapsed time in
// seconds is observed exactly once, when ObserveDuration is first called:
//
//	func handle() error {
//		defer reg.MustTimer("handle").Time().ObserveDuration()
//		...
//	}
//
// # Error Handling
//
// Requesting a name under a different kind returns a *MetricError wrapping
// ErrTypeConflict:
//
//	if _, err := reg.Gauge("requests"); metrics.IsTypeConflict(err) {
//		// "myapp_requests is already used for a different type of metric"
//	}
//
// Names the backend rejects wrap ErrInvalidName. Duplicate registrations
// caused by concurrent first use are absorbed and never reported.
//
// # Thread Safety
//
// All Registry methods and all returned handles are safe for concurrent
// use. Concurrent first use of one name registers a single backend
// collector and every caller receives it, whatever help text each caller
// resolved.
package metrics

package rules

func record(name, expr string) Rule {
	return Rule{Record: name, Expr: expr}
}

// RecordingRules returns the pre-computed rates the dashboard and alerts
// read.
func RecordingRules() PrometheusRule {
	return newResource("wreg-recording",
		record("wreg:http_requests:rate5m",
			`sum(rate(wreg_http_requests_total[5m]))`),
		record("wreg:http_errors:rate5m",
			`sum(rate(wreg_http_requests_total{status=~"5.."}[5m]))`),
		record("wreg:wialon_requests:rate5m",
			`sum by (svc, outcome) (rate(wreg_wialon_requests_total[5m]))`),
		record("wreg:registrations:increase1h",
			`sum by (result) (increase(wreg_registrations_total[1h]))`),
		record("wreg:availability_cache_hit_ratio:rate5m",
			`sum(rate(wreg_availability_cache_hits_total[5m])) / `+
				`(sum(rate(wreg_availability_cache_hits_total[5m])) + sum(rate(wreg_availability_cache_misses_total[5m])))`),
	)
}

package rules

func alert(name, expr, forDur, severity, summary, description string) Rule {
	return Rule{
		Alert: name,
		Expr:  expr,
		For:   forDur,
		Labels: map[string]string{
			"severity": severity,
		},
		Annotations: map[string]string{
			"summary":     summary,
			"description": description,
		},
	}
}

// AlertRules returns the operational alerts for wialon-registration.
func AlertRules() PrometheusRule {
	return newResource("wreg-alerts",
		alert("WregDown",
			`absent(up{job="wialon-registration"})`, "2m", "critical",
			"Wialon registration service is down",
			"The wialon-registration job has been absent for more than 2 minutes."),
		alert("WregReadinessDown",
			`wreg_readyz_up == 0`, "2m", "critical",
			"Wialon registration readiness check is failing",
			"The readiness probe has been reporting not-ready for more than 2 minutes."),
		alert("WregSessionLost",
			`wreg_session_ready == 0`, "5m", "critical",
			"Shared Wialon session is not logged in",
			"The service has held no Wialon session id for 5 minutes. Check the access token."),
		alert("WregHighErrorRate",
			`wreg:http_errors:rate5m / wreg:http_requests:rate5m > 0.05`, "5m", "warning",
			"High HTTP error rate on wialon-registration",
			"More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes."),
		alert("WregWialonErrors",
			`sum(wreg:wialon_requests:rate5m{outcome!="ok"}) > 0.1`, "10m", "warning",
			"Wialon API calls are failing",
			"Wialon calls have been failing at more than 0.1/s for 10 minutes."),
		alert("WregDailyLimitReached",
			`increase(wreg_wialon_daily_limit_hits_total[5m]) > 0`, "0m", "critical",
			"Wialon API daily limit has been reached",
			"The daily Wialon call budget is spent. Lookups fail until the window rolls over."),
		alert("WregNotificationFailures",
			`increase(wreg_notification_failures_total[5m]) > 0`, "1m", "warning",
			"Notification delivery failures detected",
			"One or more registration notifications (Discord webhooks) have failed to send."),
	)
}

// Package health provides liveness and readiness probes for the
// daemon.
//
// # Endpoints
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"postgres": db.Healthcheck(pool),
//		"redis":    redis.Healthcheck(client),
//	}, health.WithLogger(log)))
//
// Responses are plain text ("OK" / "Service Unavailable") unless the
// client asks for JSON via Accept: application/json or ?format=json:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "postgres": {"status": "healthy"},
//	    "redis":    {"status": "unhealthy", "error": "connection refused"}
//	  }
//	}
//
// # Startup Gate
//
// Run executes the same checks directly, so the daemon can refuse to
// serve before its stores are reachable:
//
//	if _, err := health.Run(ctx, checks, health.WithTimeout(10*time.Second)); err != nil {
//		return err
//	}
package health

/*
Package resilience provides a circuit breaker for outbound calls.

The manifest endpoint is called once per install request and never retried
internally. When it is down, the breaker fails new installs immediately
instead of letting every click wait for the full network timeout.

# Usage

	breaker := resilience.New("manifest", resilience.Settings{
		Timeout: 30 * time.Second,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
	})

	err := breaker.Do(func() error {
		return fetch(ctx)
	})

# States

	Closed --[trip]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                          |
	                                     [failure]
	                                          v
	                                        Open
*/
package resilience

package services

import "time"

// SetNow overrides the clock used to derive the default time window.
func SetNow(s *SpendingService, now func() time.Time) {
	s.now = now
}

package engine

import (
	reportv1 "github.com/kaushalkahapola/exchange-application/internal/domain/report/v1"
)

// Option configures a Session.
type Option func(*Session)

// WithPublisher streams every appended execution report to the given
// publisher in addition to the sink.
func WithPublisher(publisher reportv1.Publisher) Option {
	return func(s *Session) {
		s.publisher = publisher
	}
}

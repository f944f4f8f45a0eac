package queue

import (
	"time"

	"gin-jobqueue/internal/domain/job"
	"gin-jobqueue/internal/pkg/config"
)

type Options struct {
	// Applied when an enqueue request leaves MaxAttempts at zero.
	DefaultMaxAttempts int
	// Claim lease length; the job timeout plus a grace period.
	LeaseDuration time.Duration
	// Bound on the separate failure-bookkeeping transaction.
	BookkeepingTimeout time.Duration
	// Terminalise a job whose handler reports its target missing instead of retrying it.
	FailFastOnNotFound bool
}

func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		DefaultMaxAttempts: cfg.Queue.MaxAttempts,
		LeaseDuration:      cfg.LeaseDuration(),
		BookkeepingTimeout: cfg.Queue.BookkeepingTimeout,
		FailFastOnNotFound: cfg.Queue.FailFastNotFound,
	}
}

func (o Options) withDefaults() Options {
	if o.DefaultMaxAttempts <= 0 {
		o.DefaultMaxAttempts = job.DefaultMaxAttempts
	}
	if o.LeaseDuration <= 0 {
		o.LeaseDuration = time.Minute
	}
	if o.BookkeepingTimeout <= 0 {
		o.BookkeepingTimeout = 10 * time.Second
	}
	return o
}

type processOptions struct {
	leaseToken string
}

type ProcessOption func(*processOptions)

// WithLease processes a job previously returned by Claim. The job must still
// be processing under token.
func WithLease(token string) ProcessOption {
	return func(o *processOptions) {
		o.leaseToken = token
	}
}

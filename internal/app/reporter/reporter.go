//go:generate mockgen -source=reporter.go -destination=reporter_mock.go -package=reporter
package reporter

import (
	"time"

	"github.com/getsentry/sentry-go"

	"orslog/internal/config"
	"orslog/internal/config/logger"
)

const flushTimeout = 2 * time.Second

// Reporter forwards unexpected errors to an error tracking backend
type Reporter interface {
	Capture(err error, tags map[string]string)
	Breadcrumb(category, message string)
	Flush()
	Enabled() bool
}

type sentryReporter struct {
	hub *sentry.Hub
}

// New creates a sentry backed reporter, or a no-op one when no DSN is configured
func New(cfg *config.Config, log logger.Logger) Reporter {
	if cfg.Reporting.DSN == "" {
		return NoOp()
	}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         cfg.Reporting.DSN,
		Environment: cfg.Reporting.Environment,
		Release:     config.AppName + "@" + config.Version,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Error reporting disabled")
		return NoOp()
	}

	log.Debug().Msgf("Error reporting enabled for environment '%s'", cfg.Reporting.Environment)

	return &sentryReporter{
		hub: sentry.NewHub(client, sentry.NewScope()),
	}
}

// Capture sends err with the given tags
func (r *sentryReporter) Capture(err error, tags map[string]string) {
	if err == nil {
		return
	}

	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		r.hub.CaptureException(err)
	})
}

// Breadcrumb records a viewer action attached to later captures
func (r *sentryReporter) Breadcrumb(category, message string) {
	r.hub.AddBreadcrumb(&sentry.Breadcrumb{
		Category: category,
		Message:  message,
		Level:    sentry.LevelInfo,
	}, nil)
}

// Flush waits for queued events to be delivered
func (r *sentryReporter) Flush() {
	r.hub.Flush(flushTimeout)
}

// Enabled reports whether events are actually sent
func (r *sentryReporter) Enabled() bool {
	return true
}

// NoOp returns a reporter that discards everything
func NoOp() Reporter {
	return &noOpReporter{}
}

type noOpReporter struct{}

func (n *noOpReporter) Capture(err error, tags map[string]string) {}
func (n *noOpReporter) Breadcrumb(category, message string)       {}
func (n *noOpReporter) Flush()                                    {}
func (n *noOpReporter) Enabled() bool                             { return false }

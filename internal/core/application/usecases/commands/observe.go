package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/audit"
	"restaurant/internal/metrics"
	"restaurant/internal/pkg/errs"
)

func observeTransition(entry *audit.Entry) {
	metrics.StatusTransitionsTotal.WithLabelValues(string(entry.Subject()), entry.From(), entry.To()).Inc()
}

// observeRejection counts refusals of the transition table only; missing subjects and
// conflicts are not rejections.
func observeRejection(subject audit.Subject, err error) {
	var invalid *errs.InvalidTransitionError
	if errors.As(err, &invalid) {
		metrics.TransitionRejectionsTotal.WithLabelValues(string(subject)).Inc()
	}
}

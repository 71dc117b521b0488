package sampler

import "errors"

var (
	// ErrUnavailable wraps failures of system-wide sources (uptime, /proc/stat,
	// /proc/meminfo, process enumeration). Per-process failures never surface.
	ErrUnavailable = errors.New("sampler: source unavailable")

	// ErrUnknownColdStart is returned by ParseColdStart for unknown names.
	ErrUnknownColdStart = errors.New("sampler: unknown cold start policy")
)

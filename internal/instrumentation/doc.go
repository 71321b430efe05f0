// Package instrumentation provides OpenTelemetry metrics and tracing
// for roomaudit.
//
// roomaudit is a one-shot CLI, so telemetry is written to stdout at the
// end of a run rather than scraped or pushed: the provider wires the
// stdoutmetric and stdouttrace exporters when telemetry is enabled and
// no-ops otherwise. All Metrics recorders are safe to call on a nil or
// disabled instance, so call sites never need to guard.
package instrumentation

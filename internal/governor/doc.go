// Package governor gates outbound calls to the external text-generation
// endpoint. It provides three cooperating pieces: a per-key sliding-window
// rate limiter, a TTL cache keyed by the semantic inputs of a request, and
// a bounded jittered-backoff retry combinator. Callers check the limiter
// before dispatching, record only after a real dispatch succeeds, and cache
// every result (including fallbacks) so a consistently failing upstream is
// not hammered within the freshness window.
//
// All state is process-local and mutex-guarded. A monotonic clock source is
// injected so tests can simulate time advancement deterministically.
package governor

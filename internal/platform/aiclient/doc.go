// Package aiclient implements the generation.Generator interface against
// an OpenAI-style chat-completions HTTP endpoint. Every call is governed:
// gated by the per-caller sliding-window rate limiter, retried with
// jittered exponential backoff on transient failures, downgraded to
// hand-authored fallback content when the upstream payload is unusable,
// and cached under a deterministic key with a content-type-specific TTL.
package aiclient

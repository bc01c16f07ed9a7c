// Package llm wraps an OpenAI-compatible chat completion endpoint for
// study-set generation.
//
// The client issues JSON-only completion requests with bounded retries for
// transient transport failures, tolerates common formatting quirks in model
// output (code fences, prose-wrapped JSON, streaming-schema responses), and
// validates response shape once at this boundary before converting to the
// library's domain types. Prompts live in prompt.go so they can be tuned
// without touching call sites.
package llm

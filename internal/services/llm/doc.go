// Package llm implements the content generator on top of an OpenAI compatible
// chat completions API.
//
// Two requests are issued: FetchWordData asks for the pinyin, tone,
// translations and an example sentence for a headword, and GeneratePhrase asks
// for a short phrase built from a list of known words. Both request a JSON
// object response and decode it with DecodeObject, which tolerates code
// fences and stray prose around the payload.
//
// # Configuration
//
// Requires api_key and model; base_url defaults to the public OpenAI endpoint.
// A client without an API key fails every call with services.ErrAuthRequired
// without touching the network.
//
// # Failures
//
// Requests are never retried. HTTP 401/403 map to services.ErrAuthRequired,
// other transport and API errors map to services.ErrUnavailable, and content
// that cannot be decoded maps to services.ErrMalformedResponse.
package llm

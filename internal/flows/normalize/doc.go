// Package normalize extracts a single human-readable message from the JSON
// envelopes returned by remote flows.
//
// Flow responses differ between endpoints and versions. The extractor tries
// an ordered table of shape matchers, from the most specific (the nested
// chat envelope) to a generic grab-bag of top-level fields, and returns the
// first match.
//
// Strategies (in priority order):
//   - nested-output: outputs[0].outputs[*].results.message.text
//   - direct-output: outputs[0].results.message.text
//   - scan-outputs: outputs[*].message or outputs[*].text
//   - message: message, message.text or message.data.text
//   - result: result, result.text or result.message
//   - text: text
//   - content: content
//
// Extraction never panics. A field with an unexpected type means the
// strategy does not match.
package normalize

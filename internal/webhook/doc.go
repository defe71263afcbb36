// Package webhook implements the inbound HTTP surface: the monday
// webhook endpoint with HMAC-SHA256 verification, the health check and
// the landing page.
//
// # Request Flow
//
//  1. HTTP POST arrives at /webhook
//  2. Body size checked (reject with 413 if too large)
//  3. HMAC-SHA256 of the body compared against the authorization header
//     (reject with 401 on mismatch; skipped with a warning when no
//     secret is configured)
//  4. Registration challenges echoed back
//  5. Payload validated and the column-change event extracted
//     (reject with 400 on malformed payloads)
//  6. Event filtered: status-column changes are dropped so our own
//     writes can never loop back through the pipeline; only allowed
//     column types proceed
//  7. Event handed to the background processor and 200 returned
//     immediately; the status update happens after the response
//
// Processing failures after step 7 are logged, never surfaced: the
// sender has already been acknowledged.
package webhook

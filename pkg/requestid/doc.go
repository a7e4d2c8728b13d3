// Package requestid provides HTTP middleware and helpers for request
// correlation identifiers.
//
// Middleware reuses a valid client supplied "X-Request-ID" header or generates
// a new UUIDv4. The ID is stored in the request context, echoed in the
// response and set on the inbound request so that proxied requests carry it to
// the origin. Log records pick it up through LoggerExtractor:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
// Invalid IDs (empty, longer than 128 bytes, or containing anything other than
// letters, digits, '-' and '_') are silently replaced.
package requestid

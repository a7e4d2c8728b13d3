// Package cookiejar keeps origin cookies on behalf of clients that never
// store them.
//
// Each client identity (its IP address, see package clientip) owns a Jar: the
// ordered name/value pairs captured from the origin's Set-Cookie headers.
// Capture appends to the jar after every origin response, and Inject replays
// the jar as a single Cookie header on the identity's next outbound request.
//
//	store := cookiejar.NewMemoryStore(
//		cookiejar.WithCapacity(1000),
//		cookiejar.WithTTL(3*time.Minute),
//	)
//
//	// before sending to the origin
//	cookiejar.Inject(ctx, store, ip, outReq.Header)
//
//	// after the origin answered
//	cookiejar.Capture(ctx, store, ip, resp.Header)
//
// Jars are deliberately simple. Cookie attributes are dropped, and a second
// Set-Cookie for an existing name is appended rather than replacing the first.
// This only holds up because every jar is replayed to the same single origin.
//
// Stores expire a jar TTL after its last write, never on read, and evict the
// least recently written identity when full. MemoryStore keeps jars in
// process memory; package redis provides a shared implementation.
package cookiejar

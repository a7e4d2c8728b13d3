package cookiejar

import "errors"

// ErrStoreUnavailable wraps failures of the underlying jar store.
var ErrStoreUnavailable = errors.New("cookie store unavailable")

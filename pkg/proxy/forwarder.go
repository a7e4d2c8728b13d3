package proxy

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/dmitrymomot/cookieproxy/pkg/clientip"
	"github.com/dmitrymomot/cookieproxy/pkg/cookiejar"
	"github.com/dmitrymomot/cookieproxy/pkg/logger"
)

// IdentityFunc derives the cookie jar identity of an inbound request.
// Returning false disables cookie affinity for that request.
type IdentityFunc func(r *http.Request) (string, bool)

// Forwarder relays every request to a single origin and keeps a cookie jar
// per client identity on the client's behalf.
type Forwarder struct {
	origin    *url.URL
	store     cookiejar.Store
	log       *slog.Logger
	identity  IdentityFunc
	transport http.RoundTripper
	rp        *httputil.ReverseProxy
}

// Option configures a Forwarder.
type Option func(*Forwarder)

// WithLogger sets the logger used for transport and store failures.
func WithLogger(l *slog.Logger) Option {
	return func(f *Forwarder) {
		if l != nil {
			f.log = l
		}
	}
}

// WithTransport replaces the round tripper used to reach the origin.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Forwarder) {
		if rt != nil {
			f.transport = rt
		}
	}
}

// WithIdentityFunc replaces the default identity lookup.
func WithIdentityFunc(fn IdentityFunc) Option {
	return func(f *Forwarder) {
		if fn != nil {
			f.identity = fn
		}
	}
}

// New returns a Forwarder for origin backed by store.
func New(origin *url.URL, store cookiejar.Store, opts ...Option) (*Forwarder, error) {
	if err := validateOrigin(origin); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrNilStore
	}

	target := *origin
	f := &Forwarder{
		origin:    &target,
		store:     store,
		log:       slog.New(slog.DiscardHandler),
		identity:  ContextIdentity,
		transport: NewTransport(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.log = f.log.With(logger.Component("proxy"), logger.Origin(f.origin.String()))

	f.rp = &httputil.ReverseProxy{
		Rewrite:        f.rewrite,
		ModifyResponse: f.capture,
		ErrorHandler:   f.fail,
		Transport:      f.transport,
		ErrorLog:       slog.NewLogLogger(f.log.Handler(), slog.LevelWarn),
	}
	return f, nil
}

// NewTransport clones http.DefaultTransport with compression negotiation
// turned off, so origin bodies are relayed exactly as sent.
func NewTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.DisableCompression = true
	return t
}

// ContextIdentity reads the address stored by clientip middleware and falls
// back to resolving it with the default resolver.
func ContextIdentity(r *http.Request) (string, bool) {
	if ip, ok := clientip.GetIPFromContext(r.Context()); ok {
		return ip, true
	}
	ip := clientip.GetIP(r)
	return ip, ip != ""
}

// Origin returns a copy of the origin base URL.
func (f *Forwarder) Origin() *url.URL {
	u := *f.origin
	return &u
}

func (f *Forwarder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := f.identity(r)
	if !ok {
		id = ""
	}
	r = r.WithContext(withState(r.Context(), requestState{
		identity: id,
		started:  time.Now(),
		relay:    w.Header(),
	}))
	f.rp.ServeHTTP(w, r)
}

func (f *Forwarder) rewrite(pr *httputil.ProxyRequest) {
	// A response that arrives after the client went away is still captured.
	pr.Out = pr.Out.WithContext(context.WithoutCancel(pr.Out.Context()))
	pr.SetURL(f.origin)
	pr.SetXForwarded()

	ctx := pr.Out.Context()
	st := stateFromContext(ctx)
	h, err := cookiejar.Inject(ctx, f.store, st.identity, pr.Out.Header)
	if err != nil {
		f.log.WarnContext(ctx, "cookie injection skipped", logger.Error(err))
		return
	}
	pr.Out.Header = h
}

func (f *Forwarder) capture(resp *http.Response) error {
	if resp.Request == nil {
		return nil
	}
	ctx := resp.Request.Context()
	st := stateFromContext(ctx)

	if _, err := cookiejar.Capture(ctx, f.store, st.identity, resp.Header); err != nil {
		f.log.WarnContext(ctx, "cookie capture skipped", logger.Error(err))
	}

	// Headers set by middleware (CORS, request id) give way to the origin's,
	// otherwise the relay appends a second value for the same key.
	for key := range resp.Header {
		st.relay.Del(key)
	}

	f.log.DebugContext(ctx, "origin responded",
		logger.Method(resp.Request.Method),
		logger.Path(resp.Request.URL.Path),
		logger.Status(resp.StatusCode),
		logger.Cookies(len(resp.Header.Values("Set-Cookie"))),
		logger.Duration(time.Since(st.started)),
	)
	return nil
}

func (f *Forwarder) fail(w http.ResponseWriter, r *http.Request, err error) {
	f.log.ErrorContext(r.Context(), "origin request failed",
		logger.Method(r.Method),
		logger.Path(r.URL.Path),
		logger.Error(err),
	)
	w.WriteHeader(http.StatusBadGateway)
}

type requestState struct {
	identity string
	started  time.Time
	relay    http.Header // response headers already on the client writer
}

type stateContextKey struct{}

func withState(ctx context.Context, st requestState) context.Context {
	return context.WithValue(ctx, stateContextKey{}, st)
}

func stateFromContext(ctx context.Context) requestState {
	st, _ := ctx.Value(stateContextKey{}).(requestState)
	return st
}

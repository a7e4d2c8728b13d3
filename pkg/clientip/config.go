package clientip

// Config holds resolver settings loaded from the environment.
type Config struct {
	Headers       []string `env:"CLIENT_IP_HEADERS" envSeparator:"," envDefault:"X-Client-IP,X-Forwarded-For,CF-Connecting-IP,Fastly-Client-Ip,True-Client-Ip,X-Real-IP,X-Cluster-Client-IP,X-Forwarded,Forwarded-For,Forwarded"`
	UseRemoteAddr bool     `env:"CLIENT_IP_USE_REMOTE_ADDR" envDefault:"true"`
	// TrustHeaders set to false ignores Headers and resolves from RemoteAddr
	// alone. Use it when no trusted proxy sits in front of the service.
	TrustHeaders bool `env:"CLIENT_IP_TRUST_HEADERS" envDefault:"true"`
}

// NewFromConfig creates a Resolver from cfg followed by any extra options.
func NewFromConfig(cfg Config, opts ...Option) *Resolver {
	headers := cfg.Headers
	if !cfg.TrustHeaders {
		headers = nil
	}
	configOpts := make([]Option, 0, 2+len(opts))
	configOpts = append(configOpts,
		WithHeaders(headers...),
		WithRemoteAddr(cfg.UseRemoteAddr),
	)
	return New(append(configOpts, opts...)...)
}

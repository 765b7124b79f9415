package libssl

import (
	"sync"
)

// ContextOption configures a [Context].
type ContextOption func(*contextConfig)

type contextConfig struct {
	method             func() SSLMethod
	mode               uint32
	defaultVerifyPaths bool
}

// WithServerMethod creates the context with [TLSServerMethod] instead of [TLSClientMethod].
func WithServerMethod() ContextOption {
	return func(c *contextConfig) {
		c.method = TLSServerMethod
	}
}

// WithMode adds SSL_MODE_* bits to the context.
func WithMode(mode uint32) ContextOption {
	return func(c *contextConfig) {
		c.mode |= mode
	}
}

// WithDefaultVerifyPaths loads CA certificates from the default locations.
func WithDefaultVerifyPaths() ContextOption {
	return func(c *contextConfig) {
		c.defaultVerifyPaths = true
	}
}

// Context owns an SSL_CTX. It is freed by Close.
type Context struct {
	ctx       SSLCtx
	closeOnce sync.Once
}

// NewContext creates an SSL_CTX configured by opts.
func NewContext(opts ...ContextOption) (*Context, error) {
	cfg := &contextConfig{method: TLSClientMethod}
	for _, o := range opts {
		o(cfg)
	}
	method := cfg.method()
	if method == 0 {
		return nil, NewOpenSSLError("libssl: TLS method")
	}
	ctx := SSLCtxNew(method)
	if ctx == 0 {
		return nil, NewOpenSSLError("libssl: SSL_CTX_new")
	}
	c := &Context{ctx: ctx}
	if cfg.mode != 0 {
		if got := SSLCtxSetMode(ctx, cfg.mode); got&cfg.mode != cfg.mode {
			c.Close()
			return nil, fail("SSL_CTX_set_mode")
		}
	}
	if cfg.defaultVerifyPaths && SSLCtxSetDefaultVerifyPaths(ctx) != 1 {
		c.Close()
		return nil, NewOpenSSLError("libssl: SSL_CTX_set_default_verify_paths")
	}
	return c, nil
}

// Ctx returns the underlying SSL_CTX.
func (c *Context) Ctx() SSLCtx { return c.ctx }

// Close frees the SSL_CTX. Sessions created from it keep their own reference.
func (c *Context) Close() error {
	c.closeOnce.Do(func() {
		SSLCtxFree(c.ctx)
	})
	return nil
}

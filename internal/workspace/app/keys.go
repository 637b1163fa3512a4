package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hypolab/workspace/pkg/jwtx"
)

// loadKeys fills a KeySet from the configured JWKS source and builds the
// token verifier over it.
func loadKeys(ctx context.Context, cfg Config) (*jwtx.KeySet, jwtx.Verifier, error) {
	keys := jwtx.NewKeySet()

	if cfg.JWKSFile != "" {
		if err := keys.LoadFile(cfg.JWKSFile); err != nil {
			return nil, nil, err
		}
	} else {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := keys.Fetch(ctx, nil, cfg.JWKSURL); err != nil {
			return nil, nil, err
		}
	}

	if keys.Len() == 0 {
		return nil, nil, errors.New("jwks holds no usable keys")
	}

	verifier := jwtx.NewVerifier(keys, jwtx.VerifyOptions{
		Issuer:   cfg.TokenIssuer,
		Audience: cfg.TokenAudience,
		Leeway:   cfg.TokenLeeway,
	})
	return keys, verifier, nil
}

// KeyRefresher periodically re-fetches the identity provider's JWKS so key
// rotations are picked up without a restart. A failed fetch keeps the
// current keys.
type KeyRefresher struct {
	Keys     *jwtx.KeySet
	URL      string
	Client   *http.Client
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

func NewKeyRefresher(keys *jwtx.KeySet, url string, logger *slog.Logger, interval time.Duration) *KeyRefresher {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &KeyRefresher{
		Keys:     keys,
		URL:      url,
		Client:   &http.Client{Timeout: 10 * time.Second},
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start is non-blocking. Call Stop to end the loop.
func (r *KeyRefresher) Start() {
	go r.run()
	r.Logger.Info("jwks refresher started", slog.Duration("interval", r.Interval))
}

// Stop blocks until an in-flight fetch has finished.
func (r *KeyRefresher) Stop() {
	close(r.stopCh)
	<-r.doneCh
	r.Logger.Info("jwks refresher stopped")
}

func (r *KeyRefresher) run() {
	defer close(r.doneCh)

	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.refresh()
		case <-r.stopCh:
			return
		}
	}
}

func (r *KeyRefresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), r.Interval/2)
	defer cancel()

	if err := r.Keys.Fetch(ctx, r.Client, r.URL); err != nil {
		r.Logger.Warn("jwks refresh failed, keeping current keys", slog.Any("err", err))
		return
	}
	r.Logger.Debug("jwks refreshed", slog.Int("keys", r.Keys.Len()))
}

// FILE: loglens/src/internal/geo/ip2c.go
package geo

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"loglens/src/internal/core"
	"loglens/src/internal/version"

	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

const DefaultIP2CURL = "https://ip2c.org/"

// IP2CConfig configures the remote country lookup service.
type IP2CConfig struct {
	URL        string
	Timeout    time.Duration
	RatePerSec float64
	Burst      int
}

// IP2CProvider queries an ip2c style service, answering "status;cc;cc3;country".
type IP2CProvider struct {
	url     string
	timeout time.Duration
	client  *fasthttp.Client
	limiter *rate.Limiter
}

// NewIP2CProvider creates the provider. A non-positive rate disables limiting.
func NewIP2CProvider(cfg IP2CConfig) *IP2CProvider {
	if cfg.URL == "" {
		cfg.URL = DefaultIP2CURL
	}
	if !strings.HasSuffix(cfg.URL, "/") {
		cfg.URL += "/"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	p := &IP2CProvider{
		url:     cfg.URL,
		timeout: cfg.Timeout,
		client: &fasthttp.Client{
			MaxConnsPerHost:     4,
			MaxIdleConnDuration: 10 * time.Second,
			ReadTimeout:         cfg.Timeout,
			WriteTimeout:        cfg.Timeout,
		},
	}
	if cfg.RatePerSec > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		p.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), burst)
	}
	return p
}

func (p *IP2CProvider) Name() string { return "ip2c" }

// Lookup asks the service about ip. Only transport failures are errors; any
// answer the service gives, including unknown statuses, is parsed.
func (p *IP2CProvider) Lookup(ctx context.Context, ip net.IP) (core.GeoRecord, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return core.GeoRecord{}, fmt.Errorf("ip2c rate limit wait: %w", err)
		}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()

	req.SetRequestURI(p.url + ip.String())
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("User-Agent", fmt.Sprintf("LogLens/%s", version.Short()))

	err := p.client.DoTimeout(req, resp, p.timeout)

	// Capture body before releasing
	body := string(resp.Body())

	fasthttp.ReleaseRequest(req)
	fasthttp.ReleaseResponse(resp)

	if err != nil {
		return core.GeoRecord{}, fmt.Errorf("ip2c request for %s failed: %w", ip, err)
	}
	return parseIP2C(body), nil
}

func (p *IP2CProvider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

// parseIP2C reads "1;US;USA;United States". Status "1" is a hit carrying the
// country only; every other status yields an empty record.
func parseIP2C(body string) core.GeoRecord {
	parts := strings.Split(strings.TrimSpace(body), ";")
	if len(parts) < 2 || parts[0] != "1" {
		return core.GeoRecord{}
	}

	rec := core.GeoRecord{CountryCode: parts[1]}
	if len(parts) > 3 {
		rec.Country = parts[3]
	}
	return rec
}

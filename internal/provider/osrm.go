// internal/provider/osrm.go
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"route-optimizer/internal/common/config"
	stderrors "route-optimizer/internal/common/errors"
	commonhttp "route-optimizer/internal/common/http"
	"route-optimizer/internal/common/metrics"
)

// OSRMProvider implements DistanceProvider against an OSRM-compatible route
// API. Transient failures (network errors, 429, 5xx) are retried with
// exponential backoff while respecting context cancellation; everything that
// survives the retries is returned as a structured provider error.
type OSRMProvider struct {
	client     *commonhttp.Client
	name       string
	baseURL    string
	profile    string
	apiKey     string
	maxRetries int
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func NewOSRMProvider(cfg config.ProviderConfig) *OSRMProvider {
	return &OSRMProvider{
		client:     commonhttp.NewClient(config.GetDuration(cfg.Timeout)),
		name:       cfg.Name,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		profile:    cfg.Profile,
		apiKey:     cfg.APIKey,
		maxRetries: cfg.MaxRetries,
	}
}

func (p *OSRMProvider) Name() string { return p.name }

type osrmRouteResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
	} `json:"routes"`
}

func (p *OSRMProvider) CalculateDistanceAndTime(ctx context.Context, lat1, lon1, lat2, lon2 float64) (Result, error) {
	start := time.Now()
	res, err := p.calculate(ctx, lat1, lon1, lat2, lon2)
	metrics.ProviderDuration.WithLabelValues(p.name).Observe(time.Since(start).Seconds())

	status := "ok"
	if err != nil {
		switch stderrors.CodeOf(err) {
		case stderrors.ErrCodeProviderTimeout:
			status = "timeout"
		case stderrors.ErrCodeProviderRateLimited:
			status = "rate_limited"
		default:
			status = "error"
		}
	}
	metrics.ProviderRequests.WithLabelValues(p.name, status).Inc()

	return res, err
}

func (p *OSRMProvider) calculate(ctx context.Context, lat1, lon1, lat2, lon2 float64) (Result, error) {
	// OSRM expects lon,lat pairs.
	url := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?overview=false",
		p.baseURL, p.profile, lon1, lat1, lon2, lat2)

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if p.apiKey != "" {
			req.Header.Set("Authorization", p.apiKey)
		}
		return req, nil
	})
	if err != nil {
		return Result{}, p.classify(err)
	}
	defer resp.Body.Close()

	var out osrmRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, stderrors.NewProviderBadResponseError(p.name, fmt.Sprintf("decode body: %v", err))
	}

	if out.Code != "Ok" || len(out.Routes) == 0 {
		return Result{}, stderrors.NewProviderBadResponseError(p.name, fmt.Sprintf("code %q, %d routes", out.Code, len(out.Routes)))
	}

	route := out.Routes[0]
	return Result{
		DistanceKm:      route.Distance / 1000.0,
		DurationMinutes: route.Duration / 60.0,
		Provider:        p.name,
	}, nil
}

func (p *OSRMProvider) do(req *http.Request) (*http.Response, error) {
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429, 5xx) using
// exponential backoff while respecting context cancellation.
func (p *OSRMProvider) doWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	maxAttempts := p.maxRetries + 1
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, err
		}

		resp, err := p.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

// classify maps transport-level failures onto the provider error taxonomy.
func (p *OSRMProvider) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return stderrors.NewProviderTimeoutError(p.name)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return stderrors.NewProviderTimeoutError(p.name)
	}

	var he *httpStatusError
	if errors.As(err, &he) {
		if he.Code == 429 {
			return stderrors.NewProviderRateLimitedError(p.name, he.Code)
		}
		return stderrors.NewProviderUnavailableError(p.name, he)
	}

	return stderrors.NewProviderUnavailableError(p.name, err)
}

package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"fxrates-etl/internal/application"
	"fxrates-etl/internal/domain"
	"fxrates-etl/internal/infrastructure/logx"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// HTTPClient is the outbound capability the provider needs.
//
//go:generate mockgen -package=provider_test -destination=mock_http_client_test.go -source=exchangeratehost.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ExchangeRateHostProvider fetches live quotes from the exchangerate.host
// /live endpoint for a single source currency.
type ExchangeRateHostProvider struct {
	BaseURL string
	APIKey  string
	Source  string
	Client  HTTPClient
	Log     *zap.Logger
}

var _ application.RateFetcher = (*ExchangeRateHostProvider)(nil)

const (
	// MaxBodyBytes caps how much of a response is read; /live answers are a few KiB.
	MaxBodyBytes = 1 << 20
	snippetBytes = 512
)

type apiError struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

func (p *ExchangeRateHostProvider) Fetch(ctx context.Context) (domain.Snapshot, error) {
	if p.APIKey == "" {
		return domain.Snapshot{}, fmt.Errorf("%w: missing FX_API_KEY, check the .env file", application.ErrConfiguration)
	}
	if p.BaseURL == "" {
		return domain.Snapshot{}, fmt.Errorf("%w: missing API url", application.ErrConfiguration)
	}
	log := logx.FromContext(ctx, p.Log).With(zap.String("provider", "exchangeratehost"))

	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: invalid API url: %w", application.ErrConfiguration, err)
	}
	q := u.Query()
	q.Set("access_key", p.APIKey)
	q.Set("source", p.Source)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: create request: %w", application.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: do request: %w", application.ErrTransport, redactURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Snapshot{}, fmt.Errorf("%w: status %d", application.ErrTransport, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: read body: %w", application.ErrTransport, redactURL(err))
	}
	if len(body) > MaxBodyBytes {
		return domain.Snapshot{}, &application.SchemaError{
			Reason:  fmt.Sprintf("body larger than %d bytes", MaxBodyBytes),
			Payload: body[:snippetBytes],
		}
	}

	snap, err := parseLive(body)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if p.Source != "" && snap.Source != p.Source {
		log.Warn("provider.source_mismatch",
			zap.String("requested", p.Source),
			zap.String("source", snap.Source),
		)
	}
	log.Info("provider.fetch_success",
		zap.String("source", snap.Source),
		zap.Int("quotes", len(snap.Quotes)),
	)
	return snap, nil
}

// parseLive validates the /live response shape. Both "quotes" and "source"
// must be present; anything else is reported with the raw payload attached.
func parseLive(body []byte) (domain.Snapshot, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return domain.Snapshot{}, &application.SchemaError{Reason: "body is not a JSON object", Payload: body}
	}

	var missing []string
	for _, k := range []string{"quotes", "source"} {
		if raw, ok := fields[k]; !ok || string(raw) == "null" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		reason := "missing " + strings.Join(missing, ", ")
		if raw, ok := fields["error"]; ok {
			var apiErr apiError
			if json.Unmarshal(raw, &apiErr) == nil && (apiErr.Code != 0 || apiErr.Info != "") {
				reason += fmt.Sprintf(" (api error %d %s: %s)", apiErr.Code, apiErr.Type, apiErr.Info)
			}
		}
		return domain.Snapshot{}, &application.SchemaError{Reason: reason, Payload: body}
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(fields["source"], &snap.Source); err != nil || !domain.ValidCurrency(snap.Source) {
		return domain.Snapshot{}, &application.SchemaError{Reason: "source is not a 3-letter currency code", Payload: body}
	}
	if err := json.Unmarshal(fields["quotes"], &snap.Quotes); err != nil {
		return domain.Snapshot{}, &application.SchemaError{Reason: "quotes is not a mapping of pair codes to numbers", Payload: body}
	}
	if snap.Quotes == nil {
		snap.Quotes = map[string]float64{}
	}
	return snap, nil
}

// redactURL drops the query string, which carries the access key, from url errors.
func redactURL(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	if u, perr := url.Parse(ue.URL); perr == nil {
		u.RawQuery = ""
		ue.URL = u.String()
	}
	return err
}

// Copyright 2025
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package beta fetches beta coefficients from a market-data service. Each
// ticker is looked up independently; a failed lookup records a nil beta and
// never aborts the run.
package beta

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

var (
	ErrStatus  = errors.New("status code is invalid")
	ErrNoQuote = errors.New("no quote summary in response")
)

const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client queries the market-data service for per-ticker statistics
type Client struct {
	BaseURL string

	client  *resty.Client
	limiter *rate.Limiter
}

// NewClient creates a beta lookup client. requestsPerMinute bounds the
// request rate against the market-data service.
func NewClient(baseURL string, requestsPerMinute int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}

	return &Client{
		BaseURL: baseURL,
		client:  resty.New().SetHeader("User-Agent", "pvsector"),
		limiter: rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1),
	}
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail struct {
				Beta struct {
					Raw *float64 `json:"raw"`
				} `json:"beta"`
			} `json:"summaryDetail"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

// Fetch looks up the beta coefficient for a single ticker
func (betaClient *Client) Fetch(ctx context.Context, ticker string) (*float64, error) {
	if err := betaClient.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var summary quoteSummaryResponse

	url := fmt.Sprintf("%s/v10/finance/quoteSummary/%s", betaClient.BaseURL, ticker)
	resp, err := betaClient.client.R().
		SetContext(ctx).
		SetQueryParam("modules", "summaryDetail").
		SetResult(&summary).
		Get(url)

	if err != nil {
		return nil, err
	}

	if resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode())
	}

	if len(summary.QuoteSummary.Result) == 0 {
		return nil, ErrNoQuote
	}

	return summary.QuoteSummary.Result[0].SummaryDetail.Beta.Raw, nil
}

// FetchAll looks up betas for every ticker in the list. Failed lookups are
// logged and recorded as nil; the returned map always contains an entry for
// every requested ticker.
func (betaClient *Client) FetchAll(ctx context.Context, tickers []string) map[string]*float64 {
	startTime := time.Now()
	betas := make(map[string]*float64, len(tickers))

	for _, ticker := range tickers {
		betaValue, err := betaClient.Fetch(ctx, ticker)
		if err != nil {
			log.Warn().Err(err).Str("Ticker", ticker).Msg("could not fetch beta; recording null")
			betas[ticker] = nil
			continue
		}
		betas[ticker] = betaValue
	}

	log.Info().Int("NumTickers", len(tickers)).Dur("Elapsed", time.Since(startTime)).Msg("fetched betas from market-data service")

	return betas
}

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
package data

import (
	"fmt"
)

// Clean normalizes raw warehouse records into observations. Duplicate
// (ticker, date) rows are removed keeping the first occurrence, rows with a
// missing price or shares outstanding are dropped, and market cap is derived
// as price * shares outstanding * 1000 (shares outstanding is reported in
// thousands). Input order is preserved.
func Clean(raw []*RawObservation) []*Observation {
	seen := make(map[string]bool, len(raw))
	observations := make([]*Observation, 0, len(raw))

	for _, rec := range raw {
		key := fmt.Sprintf("%s|%s", rec.Ticker, rec.Date.Format("2006-01-02"))
		if seen[key] {
			continue
		}
		seen[key] = true

		if rec.StockPrice == nil || rec.SharesOutstanding == nil {
			continue
		}

		var volume float64
		if rec.Volume != nil {
			volume = *rec.Volume
		}

		observations = append(observations, &Observation{
			Permno:            rec.Permno,
			Ticker:            rec.Ticker,
			Date:              rec.Date,
			StockPrice:        *rec.StockPrice,
			SharesOutstanding: *rec.SharesOutstanding,
			Volume:            volume,
			MarketCap:         *rec.StockPrice * *rec.SharesOutstanding * 1000,
		})
	}

	return observations
}

// MergeBetas left-joins a ticker to beta lookup onto the observation table.
// Tickers absent from the map (or mapped to nil) keep a nil beta.
func MergeBetas(observations []*Observation, betas map[string]*float64) {
	for _, obs := range observations {
		if beta, ok := betas[obs.Ticker]; ok {
			obs.Beta = beta
		}
	}
}

// UniqueTickers returns the distinct tickers present in the observation
// table, in first-seen order.
func UniqueTickers(observations []*Observation) []string {
	seen := make(map[string]bool)
	tickers := make([]string, 0)
	for _, obs := range observations {
		if !seen[obs.Ticker] {
			seen[obs.Ticker] = true
			tickers = append(tickers, obs.Ticker)
		}
	}
	return tickers
}

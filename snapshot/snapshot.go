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

// Package snapshot holds the cleaned observation table for the life of the
// server. A snapshot is built once at startup and never mutated; dashboard
// handlers only run read-only aggregate queries against it.
package snapshot

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/penny-vault/pvsector/data"
)

type Snapshot struct {
	ID        uuid.UUID
	BuildTime time.Time

	observations []*data.Observation
	byTicker     map[string][]*data.Observation
}

// New builds a snapshot from a cleaned observation table. The slice is
// retained; callers must not modify it afterwards.
func New(observations []*data.Observation) *Snapshot {
	byTicker := make(map[string][]*data.Observation)
	for _, obs := range observations {
		byTicker[obs.Ticker] = append(byTicker[obs.Ticker], obs)
	}

	return &Snapshot{
		ID:           uuid.New(),
		BuildTime:    time.Now(),
		observations: observations,
		byTicker:     byTicker,
	}
}

// NumObservations returns the total row count of the table
func (snap *Snapshot) NumObservations() int {
	return len(snap.observations)
}

// Tickers returns the distinct tickers present in the table
func (snap *Snapshot) Tickers() []string {
	tickers := make([]string, 0, len(snap.byTicker))
	for ticker := range snap.byTicker {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)
	return tickers
}

// DateRange returns the earliest and latest observation dates in the table
func (snap *Snapshot) DateRange() (time.Time, time.Time) {
	var first, last time.Time
	for _, obs := range snap.observations {
		if first.IsZero() || obs.Date.Before(first) {
			first = obs.Date
		}
		if last.IsZero() || obs.Date.After(last) {
			last = obs.Date
		}
	}
	return first, last
}

// Averages are sector-wide means over every observation of the sector's
// members. Fields are nil when no observation contributes a value (beta in
// particular skips rows whose ticker has no beta).
type Averages struct {
	MarketCap  *float64
	StockPrice *float64
	Beta       *float64
}

// SectorAverages computes mean market cap, stock price, and beta across all
// observations belonging to the sector's member tickers.
func (snap *Snapshot) SectorAverages(sector *data.Sector) Averages {
	var (
		capSum, priceSum, betaSum float64
		numRows, numBetaRows      int
	)

	for _, ticker := range sector.Tickers {
		for _, obs := range snap.byTicker[ticker] {
			capSum += obs.MarketCap
			priceSum += obs.StockPrice
			numRows++

			if obs.Beta != nil {
				betaSum += *obs.Beta
				numBetaRows++
			}
		}
	}

	averages := Averages{}
	if numRows > 0 {
		avgCap := capSum / float64(numRows)
		avgPrice := priceSum / float64(numRows)
		averages.MarketCap = &avgCap
		averages.StockPrice = &avgPrice
	}
	if numBetaRows > 0 {
		avgBeta := betaSum / float64(numBetaRows)
		averages.Beta = &avgBeta
	}

	return averages
}

// SeriesPoint is one grouped (ticker, date) entry of the trend chart: the
// mean stock price and market cap across duplicate rows for that pair.
type SeriesPoint struct {
	Ticker     string
	Date       time.Time
	StockPrice float64
	MarketCap  float64
}

// Series groups the selected tickers' observations by (ticker, date) and
// returns mean price and market cap per group, sorted by ticker then date.
// Tickers outside the sector are ignored; the result is empty when no
// tickers are selected.
func (snap *Snapshot) Series(sector *data.Sector, tickers []string) []SeriesPoint {
	type group struct {
		priceSum, capSum float64
		n                int
	}

	groups := make(map[string]map[time.Time]*group)
	for _, ticker := range tickers {
		if !sector.Contains(ticker) {
			continue
		}
		for _, obs := range snap.byTicker[ticker] {
			byDate, ok := groups[ticker]
			if !ok {
				byDate = make(map[time.Time]*group)
				groups[ticker] = byDate
			}
			g, ok := byDate[obs.Date]
			if !ok {
				g = &group{}
				byDate[obs.Date] = g
			}
			g.priceSum += obs.StockPrice
			g.capSum += obs.MarketCap
			g.n++
		}
	}

	points := make([]SeriesPoint, 0)
	for ticker, byDate := range groups {
		for date, g := range byDate {
			points = append(points, SeriesPoint{
				Ticker:     ticker,
				Date:       date,
				StockPrice: g.priceSum / float64(g.n),
				MarketCap:  g.capSum / float64(g.n),
			})
		}
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].Ticker != points[j].Ticker {
			return points[i].Ticker < points[j].Ticker
		}
		return points[i].Date.Before(points[j].Date)
	})

	return points
}

// Bar is one entry of the market cap comparison chart
type Bar struct {
	Ticker    string
	MarketCap float64
}

// MarketCapBars returns the mean market cap per selected ticker, computed
// over the grouped (ticker, date) series so duplicate rows do not skew the
// comparison. Result is sorted by ticker.
func (snap *Snapshot) MarketCapBars(sector *data.Sector, tickers []string) []Bar {
	points := snap.Series(sector, tickers)

	capSums := make(map[string]float64)
	counts := make(map[string]int)
	for _, point := range points {
		capSums[point.Ticker] += point.MarketCap
		counts[point.Ticker]++
	}

	bars := make([]Bar, 0, len(capSums))
	for ticker, sum := range capSums {
		bars = append(bars, Bar{Ticker: ticker, MarketCap: sum / float64(counts[ticker])})
	}

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Ticker < bars[j].Ticker
	})

	return bars
}

// TickerBeta pairs a ticker with its beta coefficient; Beta is nil when the
// lookup for the ticker failed at enrichment time.
type TickerBeta struct {
	Ticker string
	Beta   *float64
}

// Betas returns the per-ticker beta values for the selected tickers, in
// selection order. Tickers with no observations are skipped.
func (snap *Snapshot) Betas(tickers []string) []TickerBeta {
	betas := make([]TickerBeta, 0, len(tickers))
	for _, ticker := range tickers {
		observations, ok := snap.byTicker[ticker]
		if !ok || len(observations) == 0 {
			continue
		}
		betas = append(betas, TickerBeta{Ticker: ticker, Beta: observations[0].Beta})
	}
	return betas
}

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
	"github.com/gosimple/slug"
)

// Sector is a fixed grouping of tickers by industry classification.
type Sector struct {
	Name    string
	Slug    string
	Tickers []string
}

// sectors is the static ticker universe tracked by pvsector. Memberships
// are non-overlapping; order is the display order of the sector dropdown.
var sectors = []*Sector{
	{Name: "Technology", Tickers: []string{"AAPL", "MSFT", "GOOG", "NVDA", "AMD", "ORCL", "CRM", "ADBE", "INTC", "HPQ"}},
	{Name: "Healthcare", Tickers: []string{"JNJ", "PFE", "MRK", "LLY", "ABT", "TMO", "BMY", "AMGN", "CVS", "GILD"}},
	{Name: "Energy", Tickers: []string{"XOM", "CVX", "BP", "TOT", "COP", "ENB", "EOG", "KMI", "SLB", "OXY"}},
	{Name: "Finance", Tickers: []string{"JPM", "BAC", "C", "WFC", "GS", "MS", "SCHW", "AXP", "USB", "TD"}},
	{Name: "Consumer Discretionary", Tickers: []string{"TSLA", "AMZN", "HD", "MCD", "NKE", "SBUX", "DIS", "BKNG", "LOW", "TGT"}},
	{Name: "Consumer Staples", Tickers: []string{"PG", "KO", "PEP", "WMT", "COST", "MDLZ", "CL", "KHC", "KR", "TAP"}},
	{Name: "Industrials", Tickers: []string{"MMM", "HON", "GE", "BA", "CAT", "RTX", "LMT", "DE", "UPS", "FDX"}},
	{Name: "Utilities", Tickers: []string{"NEE", "DUK", "SO", "AEP", "EXC", "SRE", "D", "PEG", "ED", "XEL"}},
	{Name: "Real Estate", Tickers: []string{"AMT", "PLD", "CCI", "EQIX", "SPG", "PSA", "O", "WELL", "VTR", "HST"}},
	{Name: "Materials", Tickers: []string{"LIN", "APD", "SHW", "ECL", "NUE", "DOW", "DD", "FCX", "ALB", "CE"}},
}

var sectorsBySlug map[string]*Sector

func init() {
	sectorsBySlug = make(map[string]*Sector, len(sectors))
	for _, sector := range sectors {
		sector.Slug = slug.Make(sector.Name)
		sectorsBySlug[sector.Slug] = sector
	}
}

// Sectors returns every configured sector in display order.
func Sectors() []*Sector {
	return sectors
}

// SectorFromSlug returns the sector identified by its URL slug, or nil when
// no such sector exists.
func SectorFromSlug(s string) *Sector {
	return sectorsBySlug[s]
}

// AllTickers returns the full ticker universe across every sector.
func AllTickers() []string {
	tickers := make([]string, 0, len(sectors)*10)
	for _, sector := range sectors {
		tickers = append(tickers, sector.Tickers...)
	}
	return tickers
}

// Contains reports whether ticker is a member of the sector.
func (sector *Sector) Contains(ticker string) bool {
	for _, t := range sector.Tickers {
		if t == ticker {
			return true
		}
	}
	return false
}

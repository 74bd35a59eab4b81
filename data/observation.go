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
	"time"
)

// RawObservation is a single daily price record as it arrives from the
// warehouse (or the local cache). Price and shares outstanding may be
// missing; such rows are removed by Clean.
type RawObservation struct {
	Permno            int       `db:"permno"`
	Ticker            string    `db:"ticker"`
	Date              time.Time `db:"date"`
	StockPrice        *float64  `db:"stock_price"`
	SharesOutstanding *float64  `db:"shrout"`
	Volume            *float64  `db:"volume"`
}

// Observation is a cleaned daily price record. MarketCap is derived from
// price and shares outstanding; Beta is a per-ticker scalar merged in from
// the market-data service and is nil for tickers whose lookup failed.
type Observation struct {
	Permno            int
	Ticker            string
	Date              time.Time
	StockPrice        float64
	SharesOutstanding float64
	Volume            float64
	MarketCap         float64
	Beta              *float64
}

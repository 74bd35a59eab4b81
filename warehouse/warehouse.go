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
package warehouse

import (
	"context"
	"errors"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/penny-vault/pvsector/data"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnmappedPermno = errors.New("no ticker mapping for permno")
)

// Warehouse is a read-only connection to a CRSP-style financial data
// warehouse. Query failures are fatal for the run; the warehouse has no
// retry or timeout policy.
type Warehouse struct {
	DBUrl string

	Pool *pgxpool.Pool
}

// Connect to the warehouse database
func (warehouse *Warehouse) Connect(ctx context.Context) error {
	if warehouse.Pool != nil {
		return nil
	}

	pool, err := pgxpool.New(ctx, warehouse.DBUrl)
	if err != nil {
		return err
	}
	warehouse.Pool = pool

	return nil
}

// Close the database pool
func (warehouse *Warehouse) Close() {
	warehouse.Pool.Close()
}

type dailyPrice struct {
	Permno            int       `db:"permno"`
	Date              time.Time `db:"date"`
	StockPrice        *float64  `db:"stock_price"`
	SharesOutstanding *float64  `db:"shrout"`
	Volume            *float64  `db:"volume"`
}

type tickerMapping struct {
	Permno int    `db:"permno"`
	Ticker string `db:"ticker"`
}

// DailyPrices fetches price, shares-outstanding, and volume history for
// every ticker in the universe since startDate. The permno column of the
// daily stock file is resolved to a ticker through the names table; rows
// whose permno has no mapping are discarded.
func (warehouse *Warehouse) DailyPrices(ctx context.Context, tickers []string, startDate time.Time) ([]*data.RawObservation, error) {
	var prices []*dailyPrice
	err := pgxscan.Select(ctx, warehouse.Pool, &prices,
		`SELECT permno, date, prc AS stock_price, shrout, vol AS volume
FROM crsp.dsf
WHERE permno IN (
	SELECT permno FROM crsp.msenames WHERE ticker = ANY($1)
)
AND date >= $2`, tickers, startDate)
	if err != nil {
		return nil, err
	}

	permnoToTicker, err := warehouse.TickerMap(ctx, tickers)
	if err != nil {
		return nil, err
	}

	observations := make([]*data.RawObservation, 0, len(prices))
	for _, price := range prices {
		ticker, ok := permnoToTicker[price.Permno]
		if !ok {
			log.Warn().Int("Permno", price.Permno).Err(ErrUnmappedPermno).Msg("discarding unmapped price record")
			continue
		}

		observations = append(observations, &data.RawObservation{
			Permno:            price.Permno,
			Ticker:            ticker,
			Date:              price.Date,
			StockPrice:        price.StockPrice,
			SharesOutstanding: price.SharesOutstanding,
			Volume:            price.Volume,
		})
	}

	log.Info().Int("NumRows", len(observations)).Int("NumTickers", len(tickers)).Msg("fetched daily prices from warehouse")

	return observations, nil
}

// TickerMap fetches the permno to ticker mapping for the requested tickers
func (warehouse *Warehouse) TickerMap(ctx context.Context, tickers []string) (map[int]string, error) {
	var mappings []*tickerMapping
	err := pgxscan.Select(ctx, warehouse.Pool, &mappings,
		`SELECT permno, ticker FROM crsp.msenames WHERE ticker = ANY($1)`, tickers)
	if err != nil {
		return nil, err
	}

	permnoToTicker := make(map[int]string, len(mappings))
	for _, mapping := range mappings {
		permnoToTicker[mapping.Permno] = mapping.Ticker
	}

	return permnoToTicker, nil
}

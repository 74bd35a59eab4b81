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
package data_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pvsector/data"
)

func floatPtr(v float64) *float64 {
	return &v
}

func rawObs(ticker string, date time.Time, price, shrout *float64) *data.RawObservation {
	return &data.RawObservation{
		Permno:            14593,
		Ticker:            ticker,
		Date:              date,
		StockPrice:        price,
		SharesOutstanding: shrout,
		Volume:            floatPtr(1000),
	}
}

var _ = Describe("Clean", func() {
	var day1, day2 time.Time

	BeforeEach(func() {
		day1 = time.Date(2015, 1, 2, 0, 0, 0, 0, time.UTC)
		day2 = time.Date(2015, 1, 5, 0, 0, 0, 0, time.UTC)
	})

	It("removes duplicate (ticker, date) rows keeping the first", func() {
		raw := []*data.RawObservation{
			rawObs("AAPL", day1, floatPtr(110), floatPtr(5000)),
			rawObs("AAPL", day1, floatPtr(999), floatPtr(5000)),
			rawObs("AAPL", day2, floatPtr(112), floatPtr(5000)),
		}

		observations := data.Clean(raw)
		Expect(observations).To(HaveLen(2))
		Expect(observations[0].StockPrice).To(Equal(110.0))
	})

	It("keeps rows for the same date on different tickers", func() {
		raw := []*data.RawObservation{
			rawObs("AAPL", day1, floatPtr(110), floatPtr(5000)),
			rawObs("MSFT", day1, floatPtr(46), floatPtr(8000)),
		}

		Expect(data.Clean(raw)).To(HaveLen(2))
	})

	It("drops rows with a missing price or shares outstanding", func() {
		raw := []*data.RawObservation{
			rawObs("AAPL", day1, nil, floatPtr(5000)),
			rawObs("AAPL", day2, floatPtr(112), nil),
			rawObs("MSFT", day1, floatPtr(46), floatPtr(8000)),
		}

		observations := data.Clean(raw)
		Expect(observations).To(HaveLen(1))
		Expect(observations[0].Ticker).To(Equal("MSFT"))
	})

	It("derives market cap as price * shares outstanding * 1000", func() {
		raw := []*data.RawObservation{
			rawObs("AAPL", day1, floatPtr(110), floatPtr(5000)),
		}

		observations := data.Clean(raw)
		Expect(observations).To(HaveLen(1))
		Expect(observations[0].MarketCap).To(Equal(110.0 * 5000 * 1000))
	})

	It("tolerates a missing volume", func() {
		raw := []*data.RawObservation{
			{Ticker: "AAPL", Date: day1, StockPrice: floatPtr(110), SharesOutstanding: floatPtr(5000)},
		}

		observations := data.Clean(raw)
		Expect(observations).To(HaveLen(1))
		Expect(observations[0].Volume).To(Equal(0.0))
	})
})

var _ = Describe("MergeBetas", func() {
	It("joins betas by ticker and keeps nil for failed lookups", func() {
		day := time.Date(2015, 1, 2, 0, 0, 0, 0, time.UTC)
		observations := data.Clean([]*data.RawObservation{
			rawObs("AAPL", day, floatPtr(110), floatPtr(5000)),
			rawObs("MSFT", day, floatPtr(46), floatPtr(8000)),
			rawObs("HPQ", day, floatPtr(38), floatPtr(1800)),
		})

		data.MergeBetas(observations, map[string]*float64{
			"AAPL": floatPtr(1.29),
			"MSFT": nil,
		})

		byTicker := make(map[string]*data.Observation)
		for _, obs := range observations {
			byTicker[obs.Ticker] = obs
		}

		Expect(byTicker["AAPL"].Beta).To(HaveValue(Equal(1.29)))
		Expect(byTicker["MSFT"].Beta).To(BeNil())
		// HPQ was never looked up and still appears in the table
		Expect(byTicker).To(HaveKey("HPQ"))
		Expect(byTicker["HPQ"].Beta).To(BeNil())
	})
})

var _ = Describe("UniqueTickers", func() {
	It("returns distinct tickers in first-seen order", func() {
		day1 := time.Date(2015, 1, 2, 0, 0, 0, 0, time.UTC)
		day2 := time.Date(2015, 1, 5, 0, 0, 0, 0, time.UTC)
		observations := data.Clean([]*data.RawObservation{
			rawObs("MSFT", day1, floatPtr(46), floatPtr(8000)),
			rawObs("AAPL", day1, floatPtr(110), floatPtr(5000)),
			rawObs("MSFT", day2, floatPtr(47), floatPtr(8000)),
		})

		Expect(data.UniqueTickers(observations)).To(Equal([]string{"MSFT", "AAPL"}))
	})
})

var _ = Describe("Sectors", func() {
	It("defines ten non-overlapping sectors", func() {
		sectors := data.Sectors()
		Expect(sectors).To(HaveLen(10))

		seen := make(map[string]string)
		for _, sector := range sectors {
			for _, ticker := range sector.Tickers {
				Expect(seen).ToNot(HaveKey(ticker), "ticker %s appears in both %s and %s", ticker, seen[ticker], sector.Name)
				seen[ticker] = sector.Name
			}
		}

		Expect(data.AllTickers()).To(HaveLen(len(seen)))
	})

	It("resolves sectors by slug", func() {
		Expect(data.SectorFromSlug("technology").Name).To(Equal("Technology"))
		Expect(data.SectorFromSlug("consumer-discretionary").Name).To(Equal("Consumer Discretionary"))
		Expect(data.SectorFromSlug("nope")).To(BeNil())
	})

	It("lists Technology first for the default dropdown selection", func() {
		Expect(data.Sectors()[0].Name).To(Equal("Technology"))
		Expect(data.Sectors()[0].Contains("AAPL")).To(BeTrue())
	})
})

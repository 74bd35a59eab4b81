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
package dashboard_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	json "github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pvsector/dashboard"
	"github.com/penny-vault/pvsector/data"
	"github.com/penny-vault/pvsector/snapshot"
)

type dashboardPayload struct {
	Sector   string `json:"sector"`
	Averages struct {
		MarketCap  *float64 `json:"market_cap"`
		StockPrice *float64 `json:"stock_price"`
		Beta       *float64 `json:"beta"`
	} `json:"averages"`
	Series []struct {
		Ticker string `json:"ticker"`
		Points []struct {
			Date       string  `json:"date"`
			StockPrice float64 `json:"stock_price"`
			MarketCap  float64 `json:"market_cap"`
		} `json:"points"`
	} `json:"series"`
	Bars []struct {
		Ticker    string  `json:"ticker"`
		MarketCap float64 `json:"market_cap"`
	} `json:"bars"`
	Betas []struct {
		Ticker string   `json:"ticker"`
		Beta   *float64 `json:"beta"`
	} `json:"betas"`
}

func floatPtr(v float64) *float64 {
	return &v
}

func getJSON(server *httptest.Server, path string, payload any) *http.Response {
	resp, err := http.Get(server.URL + path)
	Expect(err).ToNot(HaveOccurred())
	defer resp.Body.Close()
	if payload != nil {
		Expect(json.NewDecoder(resp.Body).Decode(payload)).To(Succeed())
	}
	return resp
}

var _ = Describe("Dashboard API", func() {
	var server *httptest.Server

	BeforeEach(func() {
		day1 := time.Date(2015, 1, 2, 0, 0, 0, 0, time.UTC)
		day2 := time.Date(2015, 1, 5, 0, 0, 0, 0, time.UTC)

		snap := snapshot.New([]*data.Observation{
			{Ticker: "AAPL", Date: day1, StockPrice: 100, SharesOutstanding: 5000, MarketCap: 100 * 5000 * 1000, Beta: floatPtr(1.29)},
			{Ticker: "AAPL", Date: day2, StockPrice: 110, SharesOutstanding: 5000, MarketCap: 110 * 5000 * 1000, Beta: floatPtr(1.29)},
			{Ticker: "MSFT", Date: day1, StockPrice: 50, SharesOutstanding: 8000, MarketCap: 50 * 8000 * 1000},
		})

		server = httptest.NewServer(dashboard.New(snap, ":0").Router())
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("GET /api/v1/sectors", func() {
		It("lists every sector with Technology first", func() {
			var sectors []struct {
				Name string `json:"name"`
				Slug string `json:"slug"`
			}
			resp := getJSON(server, "/api/v1/sectors", &sectors)

			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(sectors).To(HaveLen(10))
			Expect(sectors[0].Name).To(Equal("Technology"))
			Expect(sectors[0].Slug).To(Equal("technology"))
		})
	})

	Describe("GET /api/v1/sectors/{slug}/tickers", func() {
		It("returns the sector's members", func() {
			var payload struct {
				Sector  string   `json:"sector"`
				Tickers []string `json:"tickers"`
			}
			resp := getJSON(server, "/api/v1/sectors/technology/tickers", &payload)

			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(payload.Tickers).To(HaveLen(10))
			Expect(payload.Tickers).To(ContainElement("AAPL"))
		})

		It("404s for an unknown sector", func() {
			resp := getJSON(server, "/api/v1/sectors/crypto/tickers", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /api/v1/dashboard", func() {
		It("returns one series and one bar for a single selected ticker", func() {
			var payload dashboardPayload
			resp := getJSON(server, "/api/v1/dashboard?sector=technology&tickers=AAPL", &payload)

			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(payload.Series).To(HaveLen(1))
			Expect(payload.Series[0].Ticker).To(Equal("AAPL"))
			Expect(payload.Series[0].Points).To(HaveLen(2))
			Expect(payload.Series[0].Points[0].Date).To(Equal("2015-01-02"))

			Expect(payload.Bars).To(HaveLen(1))
			Expect(payload.Bars[0].Ticker).To(Equal("AAPL"))

			Expect(payload.Betas).To(HaveLen(1))
			Expect(payload.Betas[0].Beta).To(HaveValue(Equal(1.29)))
		})

		It("always includes sector averages, even with no tickers selected", func() {
			var payload dashboardPayload
			resp := getJSON(server, "/api/v1/dashboard?sector=technology", &payload)

			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(payload.Averages.StockPrice).ToNot(BeNil())
			Expect(payload.Averages.MarketCap).ToNot(BeNil())
			Expect(payload.Series).To(BeEmpty())
			Expect(payload.Bars).To(BeEmpty())
			Expect(payload.Betas).To(BeEmpty())
		})

		It("reports a null beta for a ticker whose lookup failed", func() {
			var payload dashboardPayload
			getJSON(server, "/api/v1/dashboard?sector=technology&tickers=AAPL,MSFT", &payload)

			Expect(payload.Betas).To(HaveLen(2))
			byTicker := make(map[string]*float64)
			for _, entry := range payload.Betas {
				byTicker[entry.Ticker] = entry.Beta
			}
			Expect(byTicker["MSFT"]).To(BeNil())
			Expect(byTicker["AAPL"]).To(HaveValue(Equal(1.29)))
		})

		It("404s for an unknown sector", func() {
			resp := getJSON(server, "/api/v1/dashboard?sector=crypto", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /", func() {
		It("serves the dashboard page", func() {
			resp, err := http.Get(server.URL + "/")
			Expect(err).ToNot(HaveOccurred())
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Type")).To(ContainSubstring("text/html"))
		})
	})
})

var _ = Describe("Handler purity", func() {
	It("returns identical payloads for repeated identical requests", func() {
		day := time.Date(2015, 1, 2, 0, 0, 0, 0, time.UTC)
		snap := snapshot.New([]*data.Observation{
			{Ticker: "AAPL", Date: day, StockPrice: 100, SharesOutstanding: 5000, MarketCap: 100 * 5000 * 1000},
		})
		server := httptest.NewServer(dashboard.New(snap, ":0").Router())
		defer server.Close()

		url := "/api/v1/dashboard?sector=technology&tickers=AAPL"
		var first, second dashboardPayload
		getJSON(server, url, &first)
		getJSON(server, url, &second)

		Expect(fmt.Sprintf("%+v", second)).To(Equal(fmt.Sprintf("%+v", first)))
	})
})

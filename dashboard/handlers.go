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
package dashboard

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/penny-vault/pvsector/data"
	"github.com/rs/zerolog/log"
)

type sectorResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type tickersResponse struct {
	Sector  string   `json:"sector"`
	Tickers []string `json:"tickers"`
}

type averagesResponse struct {
	MarketCap  *float64 `json:"market_cap"`
	StockPrice *float64 `json:"stock_price"`
	Beta       *float64 `json:"beta"`
}

type seriesPointResponse struct {
	Date       string  `json:"date"`
	StockPrice float64 `json:"stock_price"`
	MarketCap  float64 `json:"market_cap"`
}

type seriesResponse struct {
	Ticker string                `json:"ticker"`
	Points []seriesPointResponse `json:"points"`
}

type barResponse struct {
	Ticker    string  `json:"ticker"`
	MarketCap float64 `json:"market_cap"`
}

type betaResponse struct {
	Ticker string   `json:"ticker"`
	Beta   *float64 `json:"beta"`
}

type dashboardResponse struct {
	Sector   string           `json:"sector"`
	Averages averagesResponse `json:"averages"`
	Series   []seriesResponse `json:"series"`
	Bars     []barResponse    `json:"bars"`
	Betas    []betaResponse   `json:"betas"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("could not encode response")
	}
}

func (srv *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := srv.index.Execute(w, nil); err != nil {
		log.Error().Err(err).Msg("could not render dashboard page")
	}
}

func (srv *Server) handleSectors(w http.ResponseWriter, r *http.Request) {
	sectors := data.Sectors()
	resp := make([]sectorResponse, 0, len(sectors))
	for _, sector := range sectors {
		resp = append(resp, sectorResponse{Name: sector.Name, Slug: sector.Slug})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (srv *Server) handleSectorTickers(w http.ResponseWriter, r *http.Request) {
	sector := data.SectorFromSlug(chi.URLParam(r, "slug"))
	if sector == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown sector"})
		return
	}

	writeJSON(w, http.StatusOK, tickersResponse{Sector: sector.Slug, Tickers: sector.Tickers})
}

// handleDashboard recomputes the full dashboard state for a sector and an
// optional ticker selection. Sector averages are always present; with zero
// tickers selected the chart payloads are empty, not an error.
func (srv *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sector := data.SectorFromSlug(r.URL.Query().Get("sector"))
	if sector == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown sector"})
		return
	}

	var tickers []string
	if raw := r.URL.Query().Get("tickers"); raw != "" {
		for _, ticker := range strings.Split(raw, ",") {
			if ticker = strings.TrimSpace(ticker); ticker != "" {
				tickers = append(tickers, ticker)
			}
		}
	}

	averages := srv.snap.SectorAverages(sector)
	resp := dashboardResponse{
		Sector: sector.Slug,
		Averages: averagesResponse{
			MarketCap:  averages.MarketCap,
			StockPrice: averages.StockPrice,
			Beta:       averages.Beta,
		},
		Series: []seriesResponse{},
		Bars:   []barResponse{},
		Betas:  []betaResponse{},
	}

	if len(tickers) > 0 {
		points := srv.snap.Series(sector, tickers)

		var current *seriesResponse
		for _, point := range points {
			if current == nil || current.Ticker != point.Ticker {
				resp.Series = append(resp.Series, seriesResponse{Ticker: point.Ticker, Points: []seriesPointResponse{}})
				current = &resp.Series[len(resp.Series)-1]
			}
			current.Points = append(current.Points, seriesPointResponse{
				Date:       point.Date.Format("2006-01-02"),
				StockPrice: point.StockPrice,
				MarketCap:  point.MarketCap,
			})
		}

		for _, bar := range srv.snap.MarketCapBars(sector, tickers) {
			resp.Bars = append(resp.Bars, barResponse{Ticker: bar.Ticker, MarketCap: bar.MarketCap})
		}

		for _, tickerBeta := range srv.snap.Betas(tickers) {
			resp.Betas = append(resp.Betas, betaResponse{Ticker: tickerBeta.Ticker, Beta: tickerBeta.Beta})
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

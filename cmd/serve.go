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
package cmd

import (
	"context"
	"time"

	"github.com/penny-vault/pvsector/beta"
	"github.com/penny-vault/pvsector/cache"
	"github.com/penny-vault/pvsector/dashboard"
	"github.com/penny-vault/pvsector/data"
	"github.com/penny-vault/pvsector/snapshot"
	"github.com/penny-vault/pvsector/warehouse"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the observation table and serve the dashboard",
	Long: `The serve sub-command builds the observation table and starts the dashboard
web server. When the local cache file exists the table is loaded from it and
the warehouse is never contacted; otherwise the table is fetched from the
warehouse and the cache is written. Beta coefficients are fetched from the
market-data service on every launch. The initial load blocks startup.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		raw := loadOrFetch(ctx)
		observations := data.Clean(raw)

		betaClient := beta.NewClient(viper.GetString("marketdata.url"), viper.GetInt("marketdata.rateLimit"))
		betas := betaClient.FetchAll(ctx, data.UniqueTickers(observations))
		data.MergeBetas(observations, betas)

		snap := snapshot.New(observations)
		log.Info().
			Str("SnapshotID", snap.ID.String()).
			Int("NumObservations", snap.NumObservations()).
			Int("NumTickers", len(snap.Tickers())).
			Msg("observation table ready")

		server := dashboard.New(snap, viper.GetString("server.listen"))
		if err := server.ListenAndServe(); err != nil {
			log.Fatal().Err(err).Msg("dashboard server exited")
		}
	},
}

// loadOrFetch returns the raw observation table, preferring the local cache.
// Acquisition failures are fatal for the run.
func loadOrFetch(ctx context.Context) []*data.RawObservation {
	cacheFN := viper.GetString("cache.file")

	if cache.Exists(cacheFN) {
		log.Info().Str("CacheFile", cacheFN).Msg("found existing observation cache")
		raw, err := cache.Load(cacheFN)
		if err != nil {
			log.Fatal().Err(err).Str("CacheFile", cacheFN).Msg("could not load observation cache")
		}
		return raw
	}

	log.Info().Str("CacheFile", cacheFN).Msg("no cache found; fetching from warehouse")
	raw := fetchFromWarehouse(ctx)

	if err := cache.Save(cacheFN, raw); err != nil {
		log.Fatal().Err(err).Str("CacheFile", cacheFN).Msg("could not write observation cache")
	}

	return raw
}

// fetchFromWarehouse runs the warehouse queries for the full ticker universe
func fetchFromWarehouse(ctx context.Context) []*data.RawObservation {
	startDate, err := time.Parse("2006-01-02", viper.GetString("history.startDate"))
	if err != nil {
		log.Fatal().Err(err).Str("StartDate", viper.GetString("history.startDate")).Msg("could not parse history start date")
	}

	myWarehouse := &warehouse.Warehouse{DBUrl: viper.GetString("database.url")}
	if err := myWarehouse.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("could not connect to warehouse")
	}
	defer myWarehouse.Close()

	raw, err := myWarehouse.DailyPrices(ctx, data.AllTickers(), startDate)
	if err != nil {
		log.Fatal().Err(err).Msg("warehouse query failed")
	}

	return raw
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("listen", "", "address to serve the dashboard on")
	if err := viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for listen failed")
	}
}

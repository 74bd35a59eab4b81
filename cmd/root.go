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
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pvsector",
	Short: "pvsector serves a sector performance dashboard over historical stock data",
	Long: `pvsector is a small dashboard for exploring sector performance. It pulls
historical price and shares-outstanding data from a CRSP-style financial data
warehouse, caches it to a local CSV file, enriches each ticker with a beta
coefficient from a market-data service, and serves an interactive web page
with linked sector/ticker dropdowns, a price trend chart, and a market cap
comparison chart.

The ticker universe is a fixed set of ten sectors with roughly ten tickers
each. The observation table is loaded once at startup (from the cache when it
exists, otherwise from the warehouse) and is immutable for the life of the
server.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pvsector.toml)")
	rootCmd.PersistentFlags().String("dbUrl", "", "warehouse connection string")
	if err := viper.BindPFlag("database.url", rootCmd.PersistentFlags().Lookup("dbUrl")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for dbUrl failed")
	}
	rootCmd.PersistentFlags().String("cacheFile", "", "local observation cache file")
	if err := viper.BindPFlag("cache.file", rootCmd.PersistentFlags().Lookup("cacheFile")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for cacheFile failed")
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".pvsector" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("toml")
		viper.SetConfigName(".pvsector")
	}

	viper.SetDefault("cache.file", "sector_data.csv")
	viper.SetDefault("history.startDate", "2015-01-01")
	viper.SetDefault("marketdata.url", "")
	viper.SetDefault("marketdata.rateLimit", 60)
	viper.SetDefault("server.listen", ":8050")

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Info().Str("ConfigFN", viper.ConfigFileUsed()).Msg("Using config file")
	}
}

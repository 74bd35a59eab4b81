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
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/jackc/pgx/v5"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type configFile struct {
	Database struct {
		URL string `toml:"url"`
	} `toml:"database"`
	Cache struct {
		File string `toml:"file"`
	} `toml:"cache"`
	History struct {
		StartDate string `toml:"startDate"`
	} `toml:"history"`
	MarketData struct {
		URL       string `toml:"url"`
		RateLimit int    `toml:"rateLimit"`
	} `toml:"marketdata"`
	Server struct {
		Listen string `toml:"listen"`
	} `toml:"server"`
}

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Gather warehouse and market-data configuration",
	Run: func(cmd *cobra.Command, args []string) {
		config := configFile{}
		config.Cache.File = "sector_data.csv"
		config.History.StartDate = "2015-01-01"
		config.MarketData.RateLimit = 60
		config.Server.Listen = ":8050"

		form := huh.NewForm(
			// Get details about the warehouse database
			huh.NewGroup(
				huh.NewInput().
					Title("Provide the DSN for connecting to the data warehouse (postgres://[user[:password]@][netloc][:port][/dbname][?param1=value1&...])").
					Value(&config.Database.URL).
					Validate(func(dsn string) error {
						_, err := pgx.ParseConfig(dsn)
						return err
					}),
			),

			// Market-data service used for beta lookups
			huh.NewGroup(
				huh.NewInput().
					Title("Base URL of the market-data service (leave empty for the default):").
					Value(&config.MarketData.URL),
			),

			// Where the dashboard is served
			huh.NewGroup(
				huh.NewInput().
					Title("Address to serve the dashboard on:").
					Value(&config.Server.Listen),
			),
		)

		err := form.Run()
		if err != nil {
			log.Fatal().Err(err).Msg("error gathering configuration settings")
		}

		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal().Err(err).Msg("could not determine user home directory")
		}

		configFN := filepath.Join(home, ".pvsector.toml")
		log.Info().Str("ConfigFile", configFN).Msg("Saving configuration")
		configData, err := toml.Marshal(config)
		if err != nil {
			log.Fatal().Err(err).Msg("could not marshal configuration data")
		}

		err = os.WriteFile(configFN, configData, 0644)
		if err != nil {
			log.Fatal().Err(err).Str("FileName", configFN).Msg("could not save configuration to file")
		}

		log.Info().Msg("pvsector has been initialized")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

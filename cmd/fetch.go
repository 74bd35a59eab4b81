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

	"github.com/penny-vault/pvsector/cache"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch observations from the warehouse and rewrite the cache",
	Long: `The fetch sub-command contacts the warehouse unconditionally and rewrites
the local cache file. The cache has no freshness check; fetch (or deleting
the file) is the only way to refresh stale data.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		raw := fetchFromWarehouse(ctx)

		cacheFN := viper.GetString("cache.file")
		if err := cache.Save(cacheFN, raw); err != nil {
			log.Fatal().Err(err).Str("CacheFile", cacheFN).Msg("could not write observation cache")
		}

		log.Info().Str("CacheFile", cacheFN).Int("NumRows", len(raw)).Msg("observation cache rewritten")
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

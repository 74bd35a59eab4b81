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
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/penny-vault/pvsector/cache"
	"github.com/penny-vault/pvsector/data"
	"github.com/penny-vault/pvsector/snapshot"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var sectorsOnly bool

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display information about the cached observation table",
	Run: func(cmd *cobra.Command, args []string) {
		if sectorsOnly {
			fmt.Println(sectorTable())
			return
		}

		cacheFN := viper.GetString("cache.file")
		if !cache.Exists(cacheFN) {
			log.Fatal().Str("CacheFile", cacheFN).Msg("no observation cache found; run fetch or serve first")
		}

		cacheInfo, err := cache.Stat(cacheFN)
		if err != nil {
			log.Fatal().Err(err).Str("CacheFile", cacheFN).Msg("could not read observation cache")
		}

		raw, err := cache.Load(cacheFN)
		if err != nil {
			log.Fatal().Err(err).Str("CacheFile", cacheFN).Msg("could not load observation cache")
		}

		// betas are not cached; the summary reflects the table pre-enrichment
		snap := snapshot.New(data.Clean(raw))

		summary, err := snap.Summary(cacheInfo)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create dataset summary document")
		}

		r, _ := glamour.NewTermRenderer(
			// detect background color and pick either the default dark or light theme
			glamour.WithAutoStyle(),
			// wrap output at specific width (default is 80)
			glamour.WithWordWrap(80),
		)

		out, err := r.Render(summary)
		if err != nil {
			log.Fatal().Err(err).Msg("could not render summary document")
		}

		fmt.Print(out)
	},
}

// sectorTable renders the static sector configuration as a styled table
func sectorTable() string {
	nameStyle := lipgloss.NewStyle().Bold(true).Width(24)
	tickerStyle := lipgloss.NewStyle().Faint(true)

	builder := strings.Builder{}
	for _, sector := range data.Sectors() {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			nameStyle.Render(sector.Name),
			tickerStyle.Render(strings.Join(sector.Tickers, " ")))
		builder.WriteString(row)
		builder.WriteString("\n")
	}

	return builder.String()
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().BoolVar(&sectorsOnly, "sectors", false, "only print the sector configuration")
}

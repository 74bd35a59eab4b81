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
package snapshot

import (
	"fmt"
	"strings"

	"github.com/penny-vault/pvsector/cache"
	"github.com/penny-vault/pvsector/data"
	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary returns a description of the snapshot in markdown. cacheInfo may
// be nil when the table was loaded directly from the warehouse.
func (snap *Snapshot) Summary(cacheInfo *cache.Info) (string, error) {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	if _, err := builder.WriteString("# Sector Dashboard Dataset\n\n"); err != nil {
		return "", err
	}

	if _, err := builder.WriteString("## Details\n\n"); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(p.Sprintf("  * Observations: %d\n", snap.NumObservations())); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(p.Sprintf("  * Tickers: %d\n", len(snap.Tickers()))); err != nil {
		return "", err
	}

	first, last := snap.DateRange()
	if !first.IsZero() {
		if _, err := builder.WriteString(fmt.Sprintf("  * Date Range: %s - %s\n", first.Format("Jan 2006"), last.Format("Jan 2006"))); err != nil {
			return "", err
		}
	}

	if cacheInfo != nil {
		age := timeago.English.Format(cacheInfo.ModTime)
		if _, err := builder.WriteString(fmt.Sprintf("\nCache: %s, written %s (%s)\n", cacheInfo.FileName, age, cacheInfo.ModTime.Local().Format("01/02/2006"))); err != nil {
			return "", err
		}
	}

	if _, err := builder.WriteString("\n## Sectors\n\n"); err != nil {
		return "", err
	}

	for _, sector := range data.Sectors() {
		numRows := 0
		numTickers := 0
		for _, ticker := range sector.Tickers {
			if rows := snap.byTicker[ticker]; len(rows) > 0 {
				numRows += len(rows)
				numTickers++
			}
		}

		if _, err := builder.WriteString(p.Sprintf("  * %s: %d tickers, %d rows\n", sector.Name, numTickers, numRows)); err != nil {
			return "", err
		}
	}

	return builder.String(), nil
}

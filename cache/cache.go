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

// Package cache persists raw warehouse observations to a local CSV file.
// Existence of the file is the only control signal: when it is present the
// warehouse round trip is skipped entirely. There is no freshness check;
// the cache is stale until it is rewritten by fetch or deleted.
package cache

import (
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/penny-vault/pvsector/data"
)

type cacheRecord struct {
	Permno            int      `csv:"permno"`
	Ticker            string   `csv:"ticker"`
	Date              string   `csv:"date"`
	StockPrice        *float64 `csv:"stock_price"`
	SharesOutstanding *float64 `csv:"shrout"`
	Volume            *float64 `csv:"volume"`
}

// Exists reports whether the cache file is present
func Exists(fn string) bool {
	_, err := os.Stat(fn)
	return err == nil
}

// Save writes raw observations to the cache file, replacing any previous
// contents
func Save(fn string, observations []*data.RawObservation) error {
	records := make([]*cacheRecord, 0, len(observations))
	for _, obs := range observations {
		records = append(records, &cacheRecord{
			Permno:            obs.Permno,
			Ticker:            obs.Ticker,
			Date:              obs.Date.Format("2006-01-02"),
			StockPrice:        obs.StockPrice,
			SharesOutstanding: obs.SharesOutstanding,
			Volume:            obs.Volume,
		})
	}

	fh, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer fh.Close()

	return gocsv.MarshalFile(&records, fh)
}

// Load reads raw observations from the cache file
func Load(fn string) ([]*data.RawObservation, error) {
	fh, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	var records []*cacheRecord
	if err := gocsv.UnmarshalFile(fh, &records); err != nil {
		return nil, err
	}

	observations := make([]*data.RawObservation, 0, len(records))
	for _, rec := range records {
		date, err := time.Parse("2006-01-02", rec.Date)
		if err != nil {
			return nil, err
		}

		observations = append(observations, &data.RawObservation{
			Permno:            rec.Permno,
			Ticker:            rec.Ticker,
			Date:              date,
			StockPrice:        rec.StockPrice,
			SharesOutstanding: rec.SharesOutstanding,
			Volume:            rec.Volume,
		})
	}

	return observations, nil
}

// Info describes the cache file for the info command
type Info struct {
	FileName string
	ModTime  time.Time
	NumRows  int
}

// Stat returns metadata about the cache file contents
func Stat(fn string) (*Info, error) {
	fileInfo, err := os.Stat(fn)
	if err != nil {
		return nil, err
	}

	observations, err := Load(fn)
	if err != nil {
		return nil, err
	}

	return &Info{
		FileName: fn,
		ModTime:  fileInfo.ModTime(),
		NumRows:  len(observations),
	}, nil
}

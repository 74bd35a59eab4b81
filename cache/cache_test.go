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
package cache_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pvsector/cache"
	"github.com/penny-vault/pvsector/data"
)

func floatPtr(v float64) *float64 {
	return &v
}

var _ = Describe("Cache", func() {
	var (
		tmpDir       string
		cacheFN      string
		observations []*data.RawObservation
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "pvsector-cache")
		Expect(err).ToNot(HaveOccurred())
		cacheFN = filepath.Join(tmpDir, "sector_data.csv")

		observations = []*data.RawObservation{
			{
				Permno:            14593,
				Ticker:            "AAPL",
				Date:              time.Date(2015, 1, 2, 0, 0, 0, 0, time.UTC),
				StockPrice:        floatPtr(109.33),
				SharesOutstanding: floatPtr(5826161),
				Volume:            floatPtr(53204626),
			},
			{
				Permno:            10107,
				Ticker:            "MSFT",
				Date:              time.Date(2015, 1, 2, 0, 0, 0, 0, time.UTC),
				StockPrice:        nil,
				SharesOutstanding: floatPtr(8239723),
				Volume:            nil,
			},
		}
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("reports existence only after a save", func() {
		Expect(cache.Exists(cacheFN)).To(BeFalse())
		Expect(cache.Save(cacheFN, observations)).To(Succeed())
		Expect(cache.Exists(cacheFN)).To(BeTrue())
	})

	It("round trips observations including missing values", func() {
		Expect(cache.Save(cacheFN, observations)).To(Succeed())

		loaded, err := cache.Load(cacheFN)
		Expect(err).ToNot(HaveOccurred())
		Expect(loaded).To(HaveLen(2))

		Expect(loaded[0].Permno).To(Equal(14593))
		Expect(loaded[0].Ticker).To(Equal("AAPL"))
		Expect(loaded[0].Date).To(Equal(observations[0].Date))
		Expect(loaded[0].StockPrice).To(HaveValue(Equal(109.33)))

		Expect(loaded[1].StockPrice).To(BeNil())
		Expect(loaded[1].Volume).To(BeNil())
		Expect(loaded[1].SharesOutstanding).To(HaveValue(Equal(8239723.0)))
	})

	It("loads identical output across repeated reads", func() {
		Expect(cache.Save(cacheFN, observations)).To(Succeed())

		first, err := cache.Load(cacheFN)
		Expect(err).ToNot(HaveOccurred())
		second, err := cache.Load(cacheFN)
		Expect(err).ToNot(HaveOccurred())

		Expect(second).To(HaveLen(len(first)))
		for idx := range first {
			Expect(*second[idx]).To(Equal(*first[idx]))
		}
	})

	It("reports row counts through Stat", func() {
		Expect(cache.Save(cacheFN, observations)).To(Succeed())

		info, err := cache.Stat(cacheFN)
		Expect(err).ToNot(HaveOccurred())
		Expect(info.NumRows).To(Equal(2))
		Expect(info.FileName).To(Equal(cacheFN))
	})
})

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

// Package dashboard serves the sector performance dashboard: a single page
// with two linked dropdowns driving a price trend chart, a market cap
// comparison chart, and sector average / beta tables. Every handler is a
// pure recomputation from the immutable snapshot.
package dashboard

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/penny-vault/pvsector/snapshot"
	"github.com/rs/zerolog/log"
)

//go:embed templates/index.html
var templateFS embed.FS

type Server struct {
	ListenAddr string

	snap  *snapshot.Snapshot
	index *template.Template
}

// New creates a dashboard server over an immutable snapshot
func New(snap *snapshot.Snapshot, listenAddr string) *Server {
	index := template.Must(template.ParseFS(templateFS, "templates/index.html"))

	return &Server{
		ListenAddr: listenAddr,
		snap:       snap,
		index:      index,
	}
}

// Router builds the route table for the dashboard
func (srv *Server) Router() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/", srv.handleIndex)
	router.Get("/api/v1/sectors", srv.handleSectors)
	router.Get("/api/v1/sectors/{slug}/tickers", srv.handleSectorTickers)
	router.Get("/api/v1/dashboard", srv.handleDashboard)

	return router
}

// ListenAndServe blocks serving the dashboard until the process exits
func (srv *Server) ListenAndServe() error {
	log.Info().Str("ListenAddr", srv.ListenAddr).Str("SnapshotID", srv.snap.ID.String()).Msg("starting dashboard server")
	return http.ListenAndServe(srv.ListenAddr, srv.Router())
}

// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server exposes rodeo scheduling over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/rodeo/pkg/store"
	"laptudirm.com/x/rodeo/pkg/tournament"
	"laptudirm.com/x/rodeo/pkg/tournament/schedule"
)

// MaxBodyBytes bounds the size of request bodies.
const MaxBodyBytes = 1 << 20

type Server struct {
	Router *mux.Router
	Server *http.Server

	store *store.Store
}

// New returns a server listening on addr which keeps the rodeos it makes
// in the given store.
func New(addr string, rodeos *store.Store) *Server {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware)

	server := &Server{
		Router: router,
		Server: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: time.Minute,
			IdleTimeout:  2 * time.Minute,
		},
		store: rodeos,
	}

	router.HandleFunc("/feasibility", server.HandleFeasibility).Methods(http.MethodGet)
	router.HandleFunc("/rodeos", server.HandleList).Methods(http.MethodGet)
	router.HandleFunc("/rodeos", server.HandleCreate).Methods(http.MethodPost)
	router.HandleFunc("/rodeos/{id}", server.HandleGet).Methods(http.MethodGet)
	router.HandleFunc("/rodeos/{id}", server.HandleDelete).Methods(http.MethodDelete)

	return server
}

// Start serves requests until the context is cancelled, and then shuts the
// server down gracefully.
func (server *Server) Start(ctx context.Context) error {
	errs := make(chan error, 1)
	go func() {
		logrus.WithField("addr", server.Server.Addr).Info("Starting HTTP server")
		errs <- server.Server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("http server: %w", err)

	case <-ctx.Done():
		logrus.Info("Shutting down HTTP server")

		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return server.Server.Shutdown(shutdown)
	}
}

// HandleFeasibility reports how a tournament can be played.
// GET /feasibility?teams=N&rounds=R&courts=C
func (server *Server) HandleFeasibility(w http.ResponseWriter, r *http.Request) {
	var params [3]int
	for i, name := range [3]string{"teams", "rounds", "courts"} {
		value, err := strconv.Atoi(r.URL.Query().Get(name))
		if err != nil {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s parameter", name))
			return
		}

		params[i] = value
	}

	feasibility := tournament.ComputeFeasibility(params[0], params[1], params[2])
	_ = WriteJSON(w, http.StatusOK, FeasibilityResponse{
		Feasibility: feasibility,
		Feasible:    feasibility.Feasible(),
		Capacity:    feasibility.Capacity(),
	})
}

// HandleList lists the stored rodeos.
// GET /rodeos
func (server *Server) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := server.store.List()
	if err != nil {
		logrus.WithError(err).Error("Failed to list rodeos")
		WriteError(w, http.StatusInternalServerError, "failed to list rodeos")
		return
	}

	if entries == nil {
		entries = []store.Entry{}
	}

	_ = WriteJSON(w, http.StatusOK, entries)
}

// HandleCreate makes a rodeo from the configuration in the body and stores
// it. Without a list of teams, TeamCount placeholder teams are used.
// POST /rodeos
func (server *Server) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	var request CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}

		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if request.TeamCount > tournament.MaxTeams {
		WriteError(w, http.StatusBadRequest, tournament.ErrTooManyTeams.Error())
		return
	}

	config := request.Config
	if len(config.Teams) == 0 {
		config.Teams = tournament.PlaceholderTeams(request.TeamCount)
	}

	if request.TimeoutSeconds > 0 {
		config.Timeout = time.Duration(request.TimeoutSeconds * float64(time.Second))
	}

	config.Defaults()

	rodeo, err := config.MakeRodeo(r.Context())
	if err != nil {
		logrus.WithError(err).Debug("Failed to make rodeo")
		WriteError(w, statusOf(err), err.Error())
		return
	}

	id, err := server.store.Save(rodeo)
	if err != nil {
		logrus.WithError(err).Error("Failed to save rodeo")
		WriteError(w, http.StatusInternalServerError, "failed to save rodeo")
		return
	}

	w.Header().Set("Location", "/rodeos/"+id)
	_ = WriteJSON(w, http.StatusCreated, RodeoResponse{ID: id, Rodeo: rodeo})
}

// HandleGet returns a stored rodeo.
// GET /rodeos/{id}
func (server *Server) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	rodeo, err := server.store.Load(id)
	if err != nil {
		WriteError(w, statusOf(err), err.Error())
		return
	}

	_ = WriteJSON(w, http.StatusOK, RodeoResponse{ID: id, Rodeo: rodeo})
}

// HandleDelete removes a stored rodeo.
// DELETE /rodeos/{id}
func (server *Server) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := server.store.Delete(mux.Vars(r)["id"]); err != nil {
		WriteError(w, statusOf(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type FeasibilityResponse struct {
	tournament.Feasibility
	Feasible bool `json:"feasible"`
	Capacity int  `json:"capacity"`
}

type CreateRequest struct {
	tournament.Config
	TeamCount      int     `json:"teamCount"`
	TimeoutSeconds float64 `json:"timeoutSeconds"`
}

type RodeoResponse struct {
	ID    string            `json:"id"`
	Rodeo *tournament.Rodeo `json:"rodeo"`
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, store.ErrInvalidID),
		errors.Is(err, tournament.ErrTooFewTeams),
		errors.Is(err, tournament.ErrTooManyTeams),
		errors.Is(err, tournament.ErrBadParameters),
		errors.Is(err, schedule.ErrUnknownScheduler):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, tournament.ErrInfeasible),
		errors.Is(err, schedule.ErrUnsolvable),
		errors.Is(err, schedule.ErrStalled):
		return http.StatusUnprocessableEntity

	case errors.Is(err, schedule.ErrSearchLimit),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

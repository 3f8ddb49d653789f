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

// Package store keeps generated rodeos on disk, one YAML file per rodeo
// named after its identifier.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/rodeo/pkg/common"
	"laptudirm.com/x/rodeo/pkg/internal/util"
	"laptudirm.com/x/rodeo/pkg/tournament"
)

const extension = ".yaml"

var (
	ErrNotFound  = errors.New("store: rodeo not found")
	ErrInvalidID = errors.New("store: invalid rodeo id")
)

type Store struct {
	dir string
}

// Entry summarises a stored rodeo.
type Entry struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Date   time.Time `json:"date"`
	Teams  int       `json:"teams"`
	Rounds int       `json:"rounds"`
}

// New returns a store which keeps its files in dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := common.TryMkdir(dir); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	return &Store{dir: dir}, nil
}

// Default returns the store in the user's rodeo directory.
func Default() (*Store, error) {
	return New(common.SchedulesDirectory)
}

func (store *Store) Dir() string {
	return store.dir
}

// Save writes the rodeo to a new file and returns its identifier.
func (store *Store) Save(rodeo *tournament.Rodeo) (string, error) {
	buffer, err := yaml.Marshal(rodeo)
	if err != nil {
		return "", fmt.Errorf("store: %w", err)
	}

	id := uuid.NewString()
	if err := os.WriteFile(store.path(id), buffer, common.FilePermissions); err != nil {
		return "", fmt.Errorf("store: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"id":   id,
		"name": rodeo.Name,
	}).Debug("Saved rodeo")

	return id, nil
}

// Load reads the rodeo with the given identifier.
func (store *Store) Load(id string) (*tournament.Rodeo, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", id, ErrInvalidID)
	}

	// uuid.Parse accepts a few encodings, files use the canonical one
	id = parsed.String()

	buffer, err := os.ReadFile(store.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	var rodeo tournament.Rodeo
	if err := yaml.Unmarshal(buffer, &rodeo); err != nil {
		return nil, fmt.Errorf("store: rodeo %s: %w", id, err)
	}

	return &rodeo, nil
}

// List returns the stored rodeos ordered by date, and then by name. Files
// which are not rodeos are skipped.
func (store *Store) List() ([]Entry, error) {
	files, err := os.ReadDir(store.dir)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	var entries []Entry
	for _, file := range files {
		name := file.Name()
		if file.IsDir() || !strings.HasSuffix(name, extension) {
			continue
		}

		id := strings.TrimSuffix(name, extension)
		rodeo, err := store.Load(id)
		if err != nil {
			logrus.WithError(err).WithField("file", name).Debug("Skipping file")
			continue
		}

		entries = append(entries, Entry{
			ID:     id,
			Name:   rodeo.Name,
			Date:   rodeo.Date,
			Teams:  len(rodeo.Teams),
			Rounds: len(rodeo.Rounds),
		})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}

		if c := util.AlphanumCompare(a.Name, b.Name); c != 0 {
			return c
		}

		return strings.Compare(a.ID, b.ID)
	})

	return entries, nil
}

// Delete removes the rodeo with the given identifier.
func (store *Store) Delete(id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%q: %w", id, ErrInvalidID)
	}

	err = os.Remove(store.path(parsed.String()))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", parsed, ErrNotFound)
	}

	return err
}

func (store *Store) path(id string) string {
	return filepath.Join(store.dir, id+extension)
}

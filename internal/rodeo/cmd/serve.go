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

package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/rodeo/internal/rodeo/server"
	"laptudirm.com/x/rodeo/pkg/store"
)

func Serve() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rodeo API over HTTP",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`serve starts an HTTP server which makes and stores rodeos.

			Routes:
			  GET    /feasibility?teams=N&rounds=R&courts=C
			  GET    /rodeos
			  POST   /rodeos
			  GET    /rodeos/{id}
			  DELETE /rodeos/{id}

			Rodeos are kept in the same directory as the ones saved with
			"rodeo make --save".`),

		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")

			rodeos, err := store.Default()
			if err != nil {
				return err
			}

			return server.New(addr, rodeos).Start(cmd.Context())
		},
	}

	cmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")

	return cmd
}

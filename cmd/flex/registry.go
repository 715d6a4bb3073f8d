/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"dirpx.dev/flex"
	"dirpx.dev/flex/apis"
	uref "dirpx.dev/flex/utils/reflect"
)

var flagJSON bool

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "List registered capability descriptors",
	Args:  cobra.NoArgs,
	RunE:  runRegistry,
}

func init() {
	registryCmd.Flags().BoolVar(&flagJSON, "json", false, "output as JSON")
}

// descriptor is the printable form of an apis.Entry.
type descriptor struct {
	Type       string `json:"type"`
	Capability string `json:"capability"`
}

func runRegistry(cmd *cobra.Command, args []string) error {
	rows := describe(flex.Registry().Entries())
	out := cmd.OutOrStdout()

	if flagJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	for _, r := range rows {
		fmt.Fprintf(out, "%-40s %s\n", r.Type, r.Capability)
	}
	fmt.Fprintf(out, "%d descriptors\n", len(rows))
	return nil
}

// describe names entries and sorts them by type, then capability.
func describe(entries []apis.Entry) []descriptor {
	rows := make([]descriptor, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, descriptor{Type: uref.Name(e.Type), Capability: uref.Name(e.Capability)})
	}
	slices.SortFunc(rows, func(a, b descriptor) int {
		return cmp.Or(cmp.Compare(a.Type, b.Type), cmp.Compare(a.Capability, b.Capability))
	})
	return rows
}

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
	"fmt"

	"github.com/spf13/cobra"

	"dirpx.dev/flex"
	"dirpx.dev/flex/storage"
)

var flagItems []int

var journeyCmd = &cobra.Command{
	Use:   "journey",
	Short: "Walk one shared storage through several capability views",
	Long: `Journey wraps the given items in a VecStorage[int, int] and casts the
same shared cell to ItemSlice, KeyItem, back to VecStorage, and finally to
KeyItem[int, float64], which must be rejected.

Example:
  flex journey --items 1,2,3`,
	Args: cobra.NoArgs,
	RunE: runJourney,
}

func init() {
	journeyCmd.Flags().IntSliceVar(&flagItems, "items", []int{1, 2, 3}, "items to store")
}

func runJourney(cmd *cobra.Command, args []string) error {
	rep, err := storage.RunJourney(flex.Env(), flagItems)
	if err != nil {
		return fmt.Errorf("journey: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "cell      %s\n", rep.CellID)
	fmt.Fprintf(out, "slice     %v\n", rep.Slice)
	for _, l := range rep.Lookups {
		if l.Found {
			fmt.Fprintf(out, "get(%d)    %d\n", l.Key, l.Item)
		} else {
			fmt.Fprintf(out, "get(%d)    <missing>\n", l.Key)
		}
	}
	fmt.Fprintf(out, "sum       %d\n", rep.Sum)
	fmt.Fprintf(out, "rejected  %v\n", rep.Mismatch)
	return nil
}

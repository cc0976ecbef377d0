// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	"github.com/go-arcade/beacon/internal/engine/service/autofill"
	"github.com/spf13/cobra"
)

type autofillFlags struct {
	mode    string
	confirm bool
	targets []string
}

func (f *autofillFlags) options(cmd *cobra.Command) (autofill.Options, error) {
	mode, err := autofill.ParseMode(f.mode)
	if err != nil {
		return autofill.Options{}, err
	}
	targets, err := autofill.ParseTargets(f.targets)
	if err != nil {
		return autofill.Options{}, err
	}
	opts := autofill.Options{Mode: mode, Targets: targets}
	if cmd.Flags().Changed("confirm") {
		opts.Confirm = &f.confirm
	}
	return opts, nil
}

func (f *autofillFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.mode, "mode", "m", string(autofill.ModeFillOnlyMissing), "FILL_ONLY_MISSING or OVERWRITE")
	cmd.Flags().StringSliceVarP(&f.targets, "targets", "t", nil, "comma separated targets: global,identity,faq,answers,pages,products (default all)")
}

func autofillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autofill",
		Short: "Propose or apply default metadata",
	}
	cmd.AddCommand(autofillPreviewCmd(), autofillApplyCmd())
	return cmd
}

func autofillPreviewCmd() *cobra.Command {
	var flags autofillFlags
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the proposed changes without writing",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			services, cleanup, err := initServices(configFile)
			if err != nil {
				return err
			}
			defer cleanup()

			preview, err := services.Autofill.Preview(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printDiff(cmd, preview.Diff)
		},
	}
	flags.bind(cmd)
	return cmd
}

func autofillApplyCmd() *cobra.Command {
	var flags autofillFlags
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Write the proposed changes in one transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			services, cleanup, err := initServices(configFile)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := services.Autofill.Apply(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if err := printDiff(cmd, result.Diff); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "applied: %t (%s)\n", result.Applied, result.State)
			return err
		},
	}
	flags.bind(cmd)
	cmd.Flags().BoolVar(&flags.confirm, "confirm", false, "required with --mode OVERWRITE")
	return cmd
}

func printDiff(cmd *cobra.Command, diff []autofill.DiffEntry) error {
	out := cmd.OutOrStdout()
	if len(diff) == 0 {
		_, err := fmt.Fprintln(out, "no changes")
		return err
	}
	for _, d := range diff {
		if _, err := fmt.Fprintf(out, "%-18s %-20s %v -> %v\n", d.Target, d.Field, d.Before, d.After); err != nil {
			return err
		}
	}
	return nil
}

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
	"io"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/beacon/internal/engine/service/diagnostics"
	"github.com/spf13/cobra"
)

func diagnosticsCmd() *cobra.Command {
	var (
		asJSON      bool
		failOnError bool
	)
	cmd := &cobra.Command{
		Use:   "diagnostics",
		Short: "Audit the metadata corpus and print every check",
		RunE: func(cmd *cobra.Command, args []string) error {
			services, cleanup, err := initServices(configFile)
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := services.Diagnostics.Run(cmd.Context(), true)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				if err := printJSON(out, report); err != nil {
					return err
				}
			} else {
				printReport(out, report)
			}
			if failOnError && report.Summary.Errors > 0 {
				return fmt.Errorf("diagnostics found %d error(s)", report.Summary.Errors)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "exit non-zero when any check reports an error")
	return cmd
}

func printReport(w io.Writer, report *diagnostics.Report) {
	for _, c := range report.Checks {
		_, _ = fmt.Fprintf(w, "[%-7s] %-26s %s\n", c.Level, c.ID, c.Message)
		if c.Action != "" && c.Level != diagnostics.LevelOk {
			_, _ = fmt.Fprintf(w, "          %-26s -> %s\n", "", c.Action)
		}
	}
	_, _ = fmt.Fprintf(w, "\n%d error(s), %d warning(s), %d ok\n",
		report.Summary.Errors, report.Summary.Warnings, report.Summary.Ok)
}

func printJSON(w io.Writer, v any) error {
	b, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

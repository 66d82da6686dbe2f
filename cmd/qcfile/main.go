/*
 * main.go, part of qcio.
 *
 * Copyright 2024 The qcio developers.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//qcfile inspects and converts serialized calculation files: structures,
//input specs and result envelopes, in JSON, YAML, TOML or XYZ, with
//optional gzip or zstd compression.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logger *zap.SugaredLogger

func main() {
	var verbose bool
	root := &cobra.Command{
		Use:   "qcfile",
		Short: "Inspect and convert quantum chemistry data files",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			if verbose {
				cfg = zap.NewDevelopmentConfig()
			}
			l, err := cfg.Build()
			if err != nil {
				return err
			}
			logger = l.Sugar()
			return nil
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose, human-readable logging")
	root.AddCommand(convertCmd(), inspectCmd(), extractCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

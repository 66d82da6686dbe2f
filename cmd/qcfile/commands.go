/*
 * commands.go, part of qcio.
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

package main

import (
	"fmt"
	"io"
	"math"

	"github.com/qcgo/qcio"
	"github.com/spf13/cobra"
)

func logWarnings(warnings []qcio.CompatWarning) {
	for _, w := range warnings {
		logger.Warnw("legacy key remapped", "old", w.Old, "new", w.New, "at", w.Path)
	}
}

func convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a file between JSON, YAML, TOML and XYZ",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, warnings, err := qcio.Open(args[0])
			if err != nil {
				return err
			}
			logWarnings(warnings)
			switch v := obj.(type) {
			case *qcio.Results:
				err = v.Save(args[1])
			case *qcio.Structure:
				err = v.Save(args[1])
			case *qcio.FileSpec:
				err = v.Save(args[1])
			case *qcio.CalcSpec:
				err = v.Save(args[1])
			case *qcio.CompositeCalcSpec:
				err = v.Save(args[1])
			default:
				err = fmt.Errorf("cannot save a %T", obj)
			}
			if err != nil {
				return err
			}
			logger.Infow("converted", "from", args[0], "to", args[1])
			return nil
		},
	}
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print a summary of a serialized model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, warnings, err := qcio.Open(args[0])
			if err != nil {
				return err
			}
			logWarnings(warnings)
			out := cmd.OutOrStdout()
			switch v := obj.(type) {
			case *qcio.Structure:
				printStructure(out, v)
			case *qcio.Results:
				fmt.Fprintln(out, v)
				fmt.Fprintf(out, "program: %s %s\n", v.Provenance.Program, v.Provenance.ProgramVersion)
				if e, ok := v.FinalEnergy(); ok && !math.IsNaN(e) {
					fmt.Fprintf(out, "final energy: %.10f Hartree\n", e)
				}
				if s := specStructureOf(v.InputData); s != nil {
					printStructure(out, s)
				}
			case *qcio.CalcSpec:
				fmt.Fprintf(out, "calc spec: %s %s/%s\n", v.CalcType, v.Model.Method, v.Model.Basis)
				printStructure(out, v.Structure)
			case *qcio.CompositeCalcSpec:
				fmt.Fprintf(out, "composite calc spec: %s via %s\n", v.CalcType, v.Subprogram)
				printStructure(out, v.Structure)
			case *qcio.FileSpec:
				fmt.Fprintf(out, "file spec: %d files, args %v\n", len(v.Files.Files), v.CmdlineArgs)
			}
			return nil
		},
	}
}

func printStructure(out io.Writer, s *qcio.Structure) {
	fmt.Fprintf(out, "structure: %s, %d atoms, charge %d, multiplicity %d\n",
		s.Formula(), s.NAtoms(), s.Charge, s.Multiplicity)
	if s.Identifiers != nil && s.Identifiers.Name != "" {
		fmt.Fprintf(out, "name: %s\n", s.Identifiers.Name)
	}
}

func specStructureOf(s qcio.Spec) *qcio.Structure {
	switch v := s.(type) {
	case *qcio.CalcSpec:
		return v.Structure
	case *qcio.CompositeCalcSpec:
		return v.Structure
	}
	return nil
}

func extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <results-file> <dir>",
		Short: "Write the files a calculation produced into a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, warnings, err := qcio.OpenResults(args[0])
			if err != nil {
				return err
			}
			logWarnings(warnings)
			var files *qcio.Files
			switch v := r.Data.(type) {
			case *qcio.Files:
				files = v
			case *qcio.SinglePointData:
				files = &v.Files
			case *qcio.OptimizationData:
				files = &v.Files
			case *qcio.ConformerSearchData:
				files = &v.Files
			}
			if files == nil || len(files.Files) == 0 {
				return fmt.Errorf("%s carries no files", args[0])
			}
			if err := files.SaveFiles(args[1]); err != nil {
				return err
			}
			logger.Infow("extracted", "files", len(files.Files), "dir", args[1])
			return nil
		},
	}
}

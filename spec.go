/*
 * spec.go, part of qcio.
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

//Input models. A Spec declares a requested calculation; qcio never runs
//one. Callers hand a Spec to an external execution engine and get back a
//Results. A Spec must not be edited after submission: derive a copy
//instead, since the Results keeps a reference to the Spec it came from.

package qcio

import "fmt"

//CalcType is the kind of calculation a spec requests.
type CalcType string

const (
	Energy          CalcType = "energy"
	Gradient        CalcType = "gradient"
	Hessian         CalcType = "hessian"
	Optimization    CalcType = "optimization"
	TransitionState CalcType = "transition_state"
	ConformerSearch CalcType = "conformer_search"
)

//Valid reports whether the calculation type is one of the known kinds.
func (c CalcType) Valid() bool {
	switch c {
	case Energy, Gradient, Hessian, Optimization, TransitionState, ConformerSearch:
		return true
	}
	return false
}

//Model describes the level of theory: a method (or force field) plus,
//usually, a basis set, named by the convention of the program called.
type Model struct {
	Method string         `json:"method"`
	Basis  string         `json:"basis,omitempty"`
	Extras map[string]any `json:"extras,omitempty"`
}

//Validate checks that the model names a method.
func (m *Model) Validate() error {
	if m.Method == "" {
		return vErr("model.method", "a method is required")
	}
	return nil
}

//Spec is the sealed union of input models: FileSpec, CalcSpec and
//CompositeCalcSpec.
type Spec interface {
	specType() string
	Validate() error
}

//FileSpec is the input for a calculation defined entirely by its files
//and command line: qcio knows nothing about its meaning.
type FileSpec struct {
	Files
	CmdlineArgs []string `json:"cmdline_args,omitempty"`
}

func (f *FileSpec) specType() string { return "file" }

//Validate fulfills Spec; a file spec has no invariants.
func (f *FileSpec) Validate() error { return nil }

//Copy returns a deep copy of the spec.
func (f *FileSpec) Copy() *FileSpec {
	n := &FileSpec{Files: *f.Files.Copy()}
	n.CmdlineArgs = append([]string(nil), f.CmdlineArgs...)
	return n
}

//NewFileSpecFromDirectory collects every file in dir, plus the command
//line arguments the program should run with, into a single FileSpec.
func NewFileSpecFromDirectory(dir string, cmdlineArgs ...string) (*FileSpec, error) {
	f := &FileSpec{CmdlineArgs: cmdlineArgs}
	if err := f.AddFiles(dir, false); err != nil {
		return nil, err
	}
	return f, nil
}

//CoreSpec carries model, keywords and files without a calctype or a
//structure. It describes the inner program of a CompositeCalcSpec.
type CoreSpec struct {
	Files
	Model    Model          `json:"model"`
	Keywords map[string]any `json:"keywords,omitempty"`
}

//Validate checks the inner model.
func (c *CoreSpec) Validate() error {
	return errDecorate(c.Model.Validate(), "CoreSpec")
}

//CalcSpec describes a requested calculation: the structure, the kind of
//calculation, the model chemistry, program keywords and input files.
type CalcSpec struct {
	Files
	Structure *Structure     `json:"structure"`
	CalcType  CalcType       `json:"calctype"`
	Model     Model          `json:"model"`
	Keywords  map[string]any `json:"keywords,omitempty"`
}

func (c *CalcSpec) specType() string { return "calc" }

//Validate checks the spec's invariants, including the ones of the
//embedded structure.
func (c *CalcSpec) Validate() error {
	if c.Structure == nil {
		return vErr("structure", "a structure is required")
	}
	if err := c.Structure.Validate(); err != nil {
		if v, ok := err.(*VError); ok {
			return v.at("structure")
		}
		return err
	}
	if !c.CalcType.Valid() {
		return vErr("calctype", fmt.Sprintf("unknown calculation type %q", string(c.CalcType)))
	}
	if err := c.Model.Validate(); err != nil {
		return err
	}
	return nil
}

//Copy returns a deep copy of the spec. The structure is copied too, so
//the result can be edited and resubmitted freely.
func (c *CalcSpec) Copy() *CalcSpec {
	n := &CalcSpec{
		Files:     *c.Files.Copy(),
		Structure: c.Structure.Copy(),
		CalcType:  c.CalcType,
		Model:     c.Model,
	}
	n.Model.Extras = copyExtras(c.Model.Extras)
	n.Keywords = copyExtras(c.Keywords)
	return n
}

//CompositeCalcSpec is a CalcSpec for multi-step calculations where an
//outer program drives an inner one (e.g. an optimizer driving gradient
//calculations). The inner program and its arguments are carried in
//SubprogramSpec.
type CompositeCalcSpec struct {
	CalcSpec
	Subprogram     string   `json:"subprogram"`
	SubprogramSpec CoreSpec `json:"subprogram_spec"`
}

func (c *CompositeCalcSpec) specType() string { return "composite_calc" }

//Validate checks the outer spec and the inner program spec.
func (c *CompositeCalcSpec) Validate() error {
	if err := c.CalcSpec.Validate(); err != nil {
		return err
	}
	if c.Subprogram == "" {
		return vErr("subprogram", "a subprogram name is required")
	}
	if err := c.SubprogramSpec.Validate(); err != nil {
		if v, ok := err.(*VError); ok {
			return v.at("subprogram_spec")
		}
		return err
	}
	return nil
}

//Copy returns a deep copy of the spec.
func (c *CompositeCalcSpec) Copy() *CompositeCalcSpec {
	n := &CompositeCalcSpec{
		CalcSpec:   *c.CalcSpec.Copy(),
		Subprogram: c.Subprogram,
	}
	n.SubprogramSpec.Files = *c.SubprogramSpec.Files.Copy()
	n.SubprogramSpec.Model = c.SubprogramSpec.Model
	n.SubprogramSpec.Model.Extras = copyExtras(c.SubprogramSpec.Model.Extras)
	n.SubprogramSpec.Keywords = copyExtras(c.SubprogramSpec.Keywords)
	return n
}

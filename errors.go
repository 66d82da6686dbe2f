/*
 * errors.go, part of qcio.
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

package qcio

import "fmt"

// Error is the interface for errors that all parts of this library implement.
// The Decorate method allows to add and retrieve info from the error, without
// changing its type or wrapping it around something else. The decorate slice
// should contain a list of functions in the calling stack, plus, for each
// function, any relevant information, or nothing.
type Error interface {
	Error() string
	Decorate(string) []string
}

//Common messages for validation errors.
const (
	ErrGeometryLength   = "geometry length must be 3 times the number of symbols"
	ErrUnknownElement   = "unknown element symbol"
	ErrMultiplicity     = "multiplicity must be a positive integer"
	ErrNoResults        = "at least one of energy, gradient or hessian must be present"
	ErrNotSquare        = "matrix must be square"
	ErrBadShape         = "array length does not fit the required shape"
	ErrNoProgram        = "provenance must name the program"
	ErrNoTraceback      = "a traceback must be provided for failed calculations"
	ErrFailedStructured = "a failed calculation cannot carry structured data"
	ErrFilesOnSuccess   = "structured data must be provided for successful calculations"
	ErrEmptyTrajectory  = "a successful optimization must have a non-empty trajectory"
	ErrEmptyConformers  = "a successful conformer search must return conformers"
	ErrMissingPrimary   = "missing the primary result for the calculation type"
	ErrEnergiesLength   = "the number of energies must match the number of structures"
)

//VError is a schema-validation error. It names the field that failed and
//the constraint it violated. It fulfills qcio.Error.
type VError struct {
	Field      string //dotted path to the offending field, e.g. "data.gradient"
	Constraint string
	deco       []string
}

func (err *VError) Error() string {
	return fmt.Sprintf("qcio validation: field %s: %s", err.Field, err.Constraint)
}

//Decorate adds new information to the error and returns the decoration slice.
func (err *VError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//at returns a copy of the error with prefix prepended to the field path.
//Used when a nested model reports an error and the caller knows where the
//nested model lives in the tree.
func (err *VError) at(prefix string) *VError {
	f := err.Field
	if f == "" {
		f = prefix
	} else {
		f = prefix + "." + f
	}
	return &VError{Field: f, Constraint: err.Constraint, deco: err.deco}
}

//PError is a format error: malformed JSON, YAML, TOML or XYZ text.
//It fulfills qcio.Error.
type PError struct {
	Format  string //"json", "yaml", "toml" or "xyz"
	Message string
	deco    []string
}

func (err *PError) Error() string {
	return fmt.Sprintf("qcio: ill formatted %s: %s", err.Format, err.Message)
}

//Decorate adds new information to the error and returns the decoration slice.
func (err *PError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//errDecorate asserts that the error is an Error (i.e. a qcio error) and
//decorates it with the caller name. Errors from outside the library pass
//through unchanged.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}

//vErr is shorthand for building a *VError.
func vErr(field, constraint string) *VError {
	return &VError{Field: field, Constraint: constraint}
}

//CompatWarning records that a compatibility shim fired while opening a
//persisted object: a legacy key was remapped to its current name. It is a
//signal, not an error; loads never abort because of one.
type CompatWarning struct {
	Path string //tree path of the node where the legacy key was found
	Old  string
	New  string
}

func (w CompatWarning) String() string {
	return fmt.Sprintf("qcio compat: %q is deprecated, renamed to %q (at %s)", w.Old, w.New, w.Path)
}

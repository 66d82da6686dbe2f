/*
 * data.go, part of qcio.
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

//Data is the payload a calculation produces. It is a tagged union: the
//file bag (Files) is the base case for any calculation, successful or
//failed; SinglePointData, OptimizationData and ConformerSearchData carry
//parsed numbers on top of it. Which variant a persisted file holds is
//decided by the calculation type and the success flag, see serialize.go.

package qcio

import (
	"encoding/json"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

//Data is the sealed union of calculation payloads: *Files,
//*SinglePointData, *OptimizationData and *ConformerSearchData.
type Data interface {
	dataType() string
	Validate() error
}

//Float returns a pointer to v, for filling optional numeric fields.
func Float(v float64) *float64 {
	return &v
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

//Wavefunction holds SCF orbital data from a single point calculation.
type Wavefunction struct {
	SCFEigenvaluesA []float64 `json:"scf_eigenvalues_a,omitempty"`
	SCFEigenvaluesB []float64 `json:"scf_eigenvalues_b,omitempty"`
	SCFOccupationsA []float64 `json:"scf_occupations_a,omitempty"`
	SCFOccupationsB []float64 `json:"scf_occupations_b,omitempty"`
}

//CalcInfo carries general counters about a calculation as computed by
//the program. Zero means not reported.
type CalcInfo struct {
	NAtoms int `json:"calcinfo_natoms,omitempty"`
	NAlpha int `json:"calcinfo_nalpha,omitempty"`
	NBeta  int `json:"calcinfo_nbeta,omitempty"`
	NBasis int `json:"calcinfo_nbasis,omitempty"`
	NMO    int `json:"calcinfo_nmo,omitempty"`
}

//SinglePointData is the parsed numeric data from a single point
//calculation: energy in Hartree, gradient in Hartree/Bohr shaped [n, 3],
//hessian in Hartree/Bohr^2 shaped [3n, 3n]. At least one of the three
//must be present.
type SinglePointData struct {
	Files
	CalcInfo
	Energy                 *float64      `json:"energy,omitempty"`
	Gradient               *Matrix       `json:"gradient,omitempty"`
	Hessian                *Matrix       `json:"hessian,omitempty"`
	NuclearRepulsionEnergy *float64      `json:"nuclear_repulsion_energy,omitempty"`
	Wavefunction           *Wavefunction `json:"wavefunction,omitempty"`
	FreqsWavenumber        []float64     `json:"freqs_wavenumber,omitempty"`
	NormalModesCartesian   []Coords      `json:"normal_modes_cartesian,omitempty"`
	GibbsFreeEnergy        *float64      `json:"gibbs_free_energy,omitempty"`
	SCFDipoleMoment        []float64     `json:"scf_dipole_moment,omitempty"`
}

func (d *SinglePointData) dataType() string { return "single_point" }

//NewSinglePointData coerces the array shapes of d (gradient to [n, 3],
//hessian to square), validates the invariants and returns an independent
//value.
func NewSinglePointData(d SinglePointData) (*SinglePointData, error) {
	n := d.Copy()
	if err := n.normalize(); err != nil {
		return nil, errDecorate(err, "NewSinglePointData")
	}
	if err := n.Validate(); err != nil {
		return nil, errDecorate(err, "NewSinglePointData")
	}
	return n, nil
}

//Copy returns a deep copy of the data.
func (d *SinglePointData) Copy() *SinglePointData {
	n := *d
	n.Files = *d.Files.Copy()
	n.Energy = copyFloat(d.Energy)
	n.Gradient = d.Gradient.Copy()
	n.Hessian = d.Hessian.Copy()
	n.NuclearRepulsionEnergy = copyFloat(d.NuclearRepulsionEnergy)
	n.GibbsFreeEnergy = copyFloat(d.GibbsFreeEnergy)
	if d.Wavefunction != nil {
		w := Wavefunction{
			SCFEigenvaluesA: append([]float64(nil), d.Wavefunction.SCFEigenvaluesA...),
			SCFEigenvaluesB: append([]float64(nil), d.Wavefunction.SCFEigenvaluesB...),
			SCFOccupationsA: append([]float64(nil), d.Wavefunction.SCFOccupationsA...),
			SCFOccupationsB: append([]float64(nil), d.Wavefunction.SCFOccupationsB...),
		}
		n.Wavefunction = &w
	}
	n.FreqsWavenumber = append([]float64(nil), d.FreqsWavenumber...)
	n.SCFDipoleMoment = append([]float64(nil), d.SCFDipoleMoment...)
	if d.NormalModesCartesian != nil {
		n.NormalModesCartesian = make([]Coords, len(d.NormalModesCartesian))
		for i, mode := range d.NormalModesCartesian {
			n.NormalModesCartesian[i] = mode.Copy()
		}
	}
	return &n
}

//normalize coerces array shapes in place.
func (d *SinglePointData) normalize() error {
	if d.Gradient != nil {
		if err := d.Gradient.reshapeCols(3); err != nil {
			if v, ok := err.(*VError); ok {
				return v.at("gradient")
			}
			return err
		}
	}
	if d.Hessian != nil {
		if err := d.Hessian.reshapeSquare(); err != nil {
			if v, ok := err.(*VError); ok {
				return v.at("hessian")
			}
			return err
		}
	}
	return nil
}

//Validate checks the single point invariants.
func (d *SinglePointData) Validate() error {
	if d.Energy == nil && d.Gradient == nil && d.Hessian == nil {
		return vErr("data", ErrNoResults)
	}
	if d.Gradient != nil {
		if _, c := d.Gradient.Dims(); c != 3 {
			return vErr("data.gradient", ErrBadShape)
		}
	}
	if d.Hessian != nil {
		if r, c := d.Hessian.Dims(); r != c || r == 0 {
			return vErr("data.hessian", ErrNotSquare)
		}
	}
	if d.SCFDipoleMoment != nil && len(d.SCFDipoleMoment) != 3 {
		return vErr("data.scf_dipole_moment", "a dipole moment has 3 components")
	}
	return nil
}

//UnmarshalJSON decodes the data and coerces the array shapes.
func (d *SinglePointData) UnmarshalJSON(data []byte) error {
	type alias SinglePointData
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*d = SinglePointData(a)
	return d.normalize()
}

//primaryPresent reports whether the field that is the primary result for
//the given calculation type holds a value.
func (d *SinglePointData) primaryPresent(c CalcType) bool {
	switch c {
	case Energy:
		return d.Energy != nil
	case Gradient:
		return d.Gradient != nil
	case Hessian:
		return d.Hessian != nil
	}
	return true
}

//OptimizationData is the data from a geometry optimization or transition
//state search: the ordered Results of every step. Each step wraps a
//SinglePointData, or a plain Files bag if the step failed.
type OptimizationData struct {
	Files
	CalcInfo
	Trajectory []*Results `json:"trajectory,omitempty"`
}

func (o *OptimizationData) dataType() string { return "optimization" }

//NewOptimizationData validates every step of d and returns an
//independent value.
func NewOptimizationData(d OptimizationData) (*OptimizationData, error) {
	n := d.Copy()
	if err := n.Validate(); err != nil {
		return nil, errDecorate(err, "NewOptimizationData")
	}
	return n, nil
}

//Copy returns a deep copy of the data, trajectory steps included.
func (o *OptimizationData) Copy() *OptimizationData {
	n := *o
	n.Files = *o.Files.Copy()
	if o.Trajectory != nil {
		n.Trajectory = make([]*Results, len(o.Trajectory))
		for i, step := range o.Trajectory {
			if step != nil {
				n.Trajectory[i] = step.Copy()
			}
		}
	}
	return &n
}

//Validate checks each step of the trajectory.
func (o *OptimizationData) Validate() error {
	for i, step := range o.Trajectory {
		if step == nil {
			return vErr(fmt.Sprintf("data.trajectory[%d]", i), "nil step")
		}
		if err := step.Validate(); err != nil {
			if v, ok := err.(*VError); ok {
				return v.at(fmt.Sprintf("data.trajectory[%d]", i))
			}
			return err
		}
	}
	return nil
}

//Energies returns the energy of every step, in order. Failed steps, and
//steps without an energy, contribute NaN, not zero. The returned slice
//always has one entry per trajectory step.
func (o *OptimizationData) Energies() []float64 {
	energies := make([]float64, len(o.Trajectory))
	for i, step := range o.Trajectory {
		energies[i] = math.NaN()
		if !step.Success {
			continue
		}
		if spd, ok := step.Data.(*SinglePointData); ok && spd.Energy != nil {
			energies[i] = *spd.Energy
		}
	}
	return energies
}

//FinalEnergy returns the energy of the last step, or NaN if the
//trajectory is empty or its last step failed.
func (o *OptimizationData) FinalEnergy() float64 {
	e := o.Energies()
	if len(e) == 0 {
		return math.NaN()
	}
	return e[len(e)-1]
}

//Structures returns the input structure of every step, in order.
func (o *OptimizationData) Structures() []*Structure {
	structures := make([]*Structure, len(o.Trajectory))
	for i, step := range o.Trajectory {
		structures[i] = specStructure(step.InputData)
	}
	return structures
}

//FinalStructure returns the structure of the last step, or nil for an
//empty trajectory.
func (o *OptimizationData) FinalStructure() *Structure {
	s := o.Structures()
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}

//ToXYZ returns the trajectory as a multi-structure XYZ string.
func (o *OptimizationData) ToXYZ() string {
	return ToXYZMulti(o.Structures(), 0)
}

//specStructure extracts the structure a spec refers to, or nil for
//structureless specs.
func specStructure(s Spec) *Structure {
	switch v := s.(type) {
	case *CalcSpec:
		return v.Structure
	case *CompositeCalcSpec:
		return v.Structure
	}
	return nil
}

//ConformerSearchData is the data from a conformer search: the conformers
//found and their energies in Hartree, plus rotamers when the program
//distinguishes them. Conformers and rotamers are kept sorted ascending
//by energy.
type ConformerSearchData struct {
	Files
	Conformers        []*Structure `json:"conformers,omitempty"`
	ConformerEnergies []float64    `json:"conformer_energies,omitempty"`
	Rotamers          []*Structure `json:"rotamers,omitempty"`
	RotamerEnergies   []float64    `json:"rotamer_energies,omitempty"`
}

func (c *ConformerSearchData) dataType() string { return "conformer_search" }

//NewConformerSearchData validates the lengths, sorts conformers and
//rotamers by energy and returns an independent value.
func NewConformerSearchData(d ConformerSearchData) (*ConformerSearchData, error) {
	n := d.Copy()
	if err := n.Validate(); err != nil {
		return nil, errDecorate(err, "NewConformerSearchData")
	}
	n.sort()
	return n, nil
}

//Copy returns a deep copy of the data, structures included.
func (c *ConformerSearchData) Copy() *ConformerSearchData {
	n := *c
	n.Files = *c.Files.Copy()
	n.Conformers = copyStructures(c.Conformers)
	n.ConformerEnergies = append([]float64(nil), c.ConformerEnergies...)
	n.Rotamers = copyStructures(c.Rotamers)
	n.RotamerEnergies = append([]float64(nil), c.RotamerEnergies...)
	return &n
}

func copyStructures(structures []*Structure) []*Structure {
	if structures == nil {
		return nil
	}
	out := make([]*Structure, len(structures))
	for i, s := range structures {
		out[i] = s.Copy()
	}
	return out
}

//Validate checks that energies, when present, match their structures.
func (c *ConformerSearchData) Validate() error {
	if len(c.ConformerEnergies) > 0 && len(c.ConformerEnergies) != len(c.Conformers) {
		return vErr("data.conformer_energies", ErrEnergiesLength)
	}
	if len(c.RotamerEnergies) > 0 && len(c.RotamerEnergies) != len(c.Rotamers) {
		return vErr("data.rotamer_energies", ErrEnergiesLength)
	}
	return nil
}

//sort orders conformers and rotamers ascending by energy, in place.
func (c *ConformerSearchData) sort() {
	sortByEnergy(c.Conformers, c.ConformerEnergies)
	sortByEnergy(c.Rotamers, c.RotamerEnergies)
}

//UnmarshalJSON decodes the data and restores the energy ordering.
func (c *ConformerSearchData) UnmarshalJSON(data []byte) error {
	type alias ConformerSearchData
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = ConformerSearchData(a)
	if c.Validate() == nil {
		c.sort()
	}
	return nil
}

//ConformerEnergiesRelative returns each conformer's energy above the
//lowest one.
func (c *ConformerSearchData) ConformerEnergiesRelative() []float64 {
	return relativeEnergies(c.ConformerEnergies)
}

//RotamerEnergiesRelative returns each rotamer's energy above the lowest
//one.
func (c *ConformerSearchData) RotamerEnergiesRelative() []float64 {
	return relativeEnergies(c.RotamerEnergies)
}

func relativeEnergies(energies []float64) []float64 {
	if len(energies) == 0 {
		return nil
	}
	rel := append([]float64(nil), energies...)
	floats.AddConst(-floats.Min(rel), rel)
	return rel
}

//sortByEnergy reorders structures and energies together, ascending by
//energy. Without energies the input order stands.
func sortByEnergy(structures []*Structure, energies []float64) {
	if len(energies) == 0 || len(energies) != len(structures) {
		return
	}
	sorted := append([]float64(nil), energies...)
	inds := make([]int, len(sorted))
	floats.Argsort(sorted, inds)
	orig := append([]*Structure(nil), structures...)
	for i, p := range inds {
		energies[i] = sorted[i]
		structures[i] = orig[p]
	}
}

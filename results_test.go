/*
 * results_test.go, part of qcio.
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

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailedResultsCarryFilesOnly(t *testing.T) {
	spec := &CalcSpec{Structure: water(t), CalcType: Energy, Model: Model{Method: "hf", Basis: "sto-3g"}}

	//structured data on a failure is rejected
	_, err := NewResults(Results{
		InputData:  spec,
		Success:    false,
		Traceback:  "boom",
		Data:       &SinglePointData{Energy: Float(-1)},
		Provenance: Provenance{Program: "psi4"},
	})
	require.Error(t, err)
	var v *VError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, ErrFailedStructured, v.Constraint)

	//a failure without a traceback is rejected
	_, err = NewResults(Results{
		InputData:  spec,
		Success:    false,
		Data:       &Files{},
		Provenance: Provenance{Program: "psi4"},
	})
	require.Error(t, err)
	require.ErrorAs(t, err, &v)
	assert.Equal(t, ErrNoTraceback, v.Constraint)

	//file bag plus traceback is the valid failure shape
	r, err := NewResults(Results{
		InputData:  spec,
		Success:    false,
		Traceback:  "boom",
		Data:       &Files{Files: map[string]FileData{"stderr.log": TextFile("boom")}},
		Provenance: Provenance{Program: "psi4"},
	})
	require.NoError(t, err)
	assert.IsType(t, &Files{}, r.Data)
}

func TestSuccessNeedsStructuredData(t *testing.T) {
	spec := &CalcSpec{Structure: water(t), CalcType: Energy, Model: Model{Method: "hf"}}
	_, err := NewResults(Results{
		InputData:  spec,
		Success:    true,
		Data:       &Files{},
		Provenance: Provenance{Program: "psi4"},
	})
	require.Error(t, err)
	var v *VError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, ErrFilesOnSuccess, v.Constraint)

	//a file spec has no structured payload to demand
	fspec := &FileSpec{}
	_, err = NewResults(Results{
		InputData:  fspec,
		Success:    true,
		Data:       &Files{},
		Provenance: Provenance{Program: "psi4"},
	})
	assert.NoError(t, err)
}

func TestMissingPrimaryResult(t *testing.T) {
	spec := &CalcSpec{Structure: water(t), CalcType: Gradient, Model: Model{Method: "hf"}}
	_, err := NewResults(Results{
		InputData:  spec,
		Success:    true,
		Data:       &SinglePointData{Energy: Float(-76.0)}, //energy alone, no gradient
		Provenance: Provenance{Program: "psi4"},
	})
	require.Error(t, err)
	var v *VError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, ErrMissingPrimary, v.Constraint)
}

func TestProvenanceRequiresProgram(t *testing.T) {
	spec := &CalcSpec{Structure: water(t), CalcType: Energy, Model: Model{Method: "hf"}}
	_, err := NewResults(Results{
		InputData: spec,
		Success:   true,
		Data:      &SinglePointData{Energy: Float(-76.0)},
	})
	require.Error(t, err)
	var v *VError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "provenance.program", v.Field)
}

func TestResultsJSONDispatch(t *testing.T) {
	r := energyStep(t, water(t), -76.38)
	r.Logs = "converged"
	raw, err := json.Marshal(r)
	require.NoError(t, err)

	var back Results
	require.NoError(t, json.Unmarshal(raw, &back))
	spec, ok := back.InputData.(*CalcSpec)
	require.True(t, ok, "calctype key picks CalcSpec")
	assert.Equal(t, Energy, spec.CalcType)
	data, ok := back.Data.(*SinglePointData)
	require.True(t, ok, "energy calctype plus success picks SinglePointData")
	assert.Equal(t, -76.38, *data.Energy)
	assert.Equal(t, "converged", back.Logs)

	//the same payload on a failed envelope comes back as a file bag
	fail := &Results{
		InputData:  r.InputData,
		Success:    false,
		Traceback:  "boom",
		Data:       &Files{Files: map[string]FileData{"out": TextFile("x")}},
		Provenance: Provenance{Program: "terachem"},
	}
	raw, err = json.Marshal(fail)
	require.NoError(t, err)
	var failBack Results
	require.NoError(t, json.Unmarshal(raw, &failBack))
	files, ok := failBack.Data.(*Files)
	require.True(t, ok)
	assert.Equal(t, "x", files.Files["out"].Text())
}

func TestCompositeSpecDispatch(t *testing.T) {
	spec := &CompositeCalcSpec{
		CalcSpec:   CalcSpec{Structure: water(t), CalcType: Optimization, Model: Model{Method: "b3lyp", Basis: "def2-svp"}},
		Subprogram: "terachem",
		SubprogramSpec: CoreSpec{
			Model: Model{Method: "b3lyp", Basis: "def2-svp"},
		},
	}
	r := &Results{
		InputData: spec,
		Success:   true,
		Data: &OptimizationData{Trajectory: []*Results{
			energyStep(t, water(t), -76.0),
		}},
		Provenance: Provenance{Program: "geometric"},
	}
	raw, err := json.Marshal(r)
	require.NoError(t, err)

	var back Results
	require.NoError(t, json.Unmarshal(raw, &back))
	cspec, ok := back.InputData.(*CompositeCalcSpec)
	require.True(t, ok, "subprogram key picks CompositeCalcSpec")
	assert.Equal(t, "terachem", cspec.Subprogram)
	opt, ok := back.Data.(*OptimizationData)
	require.True(t, ok)
	require.Len(t, opt.Trajectory, 1)
	step := opt.Trajectory[0].Data.(*SinglePointData)
	assert.Equal(t, -76.0, *step.Energy)
}

func TestResultsCopyIsDeep(t *testing.T) {
	r := energyStep(t, water(t), -76.0)
	spd := r.Data.(*SinglePointData)
	spd.Wavefunction = &Wavefunction{SCFEigenvaluesA: []float64{-20.5, -1.3}}
	spd.FreqsWavenumber = []float64{1600, 3650, 3750}
	spd.SCFDipoleMoment = []float64{0, 0, 0.73}
	spd.NormalModesCartesian = []Coords{make(Coords, 9)}

	c := r.Copy()
	cd := c.Data.(*SinglePointData)
	c.InputData.(*CalcSpec).Structure.Geometry[0] = 42
	*cd.Energy = 0
	cd.Wavefunction.SCFEigenvaluesA[0] = 99
	cd.FreqsWavenumber[0] = 99
	cd.SCFDipoleMoment[2] = 99
	cd.NormalModesCartesian[0][0] = 99

	assert.Equal(t, 0.0, r.InputData.(*CalcSpec).Structure.Geometry[0])
	assert.Equal(t, -76.0, *spd.Energy)
	assert.Equal(t, -20.5, spd.Wavefunction.SCFEigenvaluesA[0])
	assert.Equal(t, 1600.0, spd.FreqsWavenumber[0])
	assert.Equal(t, 0.73, spd.SCFDipoleMoment[2])
	assert.Equal(t, 0.0, spd.NormalModesCartesian[0][0])
}

func TestConformerSearchCopyIsDeep(t *testing.T) {
	d, err := NewConformerSearchData(ConformerSearchData{
		Conformers:        []*Structure{water(t)},
		ConformerEnergies: []float64{-76.0},
	})
	require.NoError(t, err)
	c := d.Copy()
	c.Conformers[0].Geometry[0] = 42
	c.ConformerEnergies[0] = 0
	assert.Equal(t, 0.0, d.Conformers[0].Geometry[0])
	assert.Equal(t, -76.0, d.ConformerEnergies[0])
}

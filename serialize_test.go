/*
 * serialize_test.go, part of qcio.
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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOf(t *testing.T) {
	cases := []struct {
		path, format, compression string
	}{
		{"a/b/results.json", FormatJSON, ""},
		{"spec.yaml", FormatYAML, ""},
		{"spec.yml", FormatYAML, ""},
		{"struct.toml", FormatTOML, ""},
		{"traj.xyz", FormatXYZ, ""},
		{"results.json.gz", FormatJSON, "gz"},
		{"results.yaml.zst", FormatYAML, "zst"},
	}
	for _, c := range cases {
		format, compression, err := FormatOf(c.path)
		require.NoError(t, err, c.path)
		assert.Equal(t, c.format, format, c.path)
		assert.Equal(t, c.compression, compression, c.path)
	}
	_, _, err := FormatOf("noextension")
	assert.Error(t, err)
	_, _, err = FormatOf("data.csv")
	assert.Error(t, err)
}

func TestStructureTreeRoundTrips(t *testing.T) {
	s := water(t)
	s.Charge = 1
	s.Multiplicity = 2
	s.Identifiers = &Identifiers{Name: "water cation"}
	dir := t.TempDir()

	for _, ext := range []string{".json", ".yaml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "water"+ext)
			require.NoError(t, s.Save(path))
			back, warnings, err := OpenStructure(path)
			require.NoError(t, err)
			assert.Empty(t, warnings)
			assert.Equal(t, s.Symbols, back.Symbols)
			assert.Equal(t, s.Geometry, back.Geometry)
			assert.Equal(t, s.Charge, back.Charge)
			assert.Equal(t, s.Multiplicity, back.Multiplicity)
			assert.Equal(t, "water cation", back.Identifiers.Name)
		})
	}
}

func TestStructureXYZSaveAndOpen(t *testing.T) {
	s := water(t)
	path := filepath.Join(t.TempDir(), "water.xyz")
	require.NoError(t, s.Save(path))
	back, _, err := OpenStructure(path)
	require.NoError(t, err)
	assert.Equal(t, s.Symbols, back.Symbols)
	for i := range s.Geometry {
		assert.InDelta(t, s.Geometry[i], back.Geometry[i], 1e-10)
	}
}

func TestWaterFixture(t *testing.T) {
	s, warnings, err := OpenStructure(filepath.Join("test", "water.xyz"))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"O", "H", "H"}, s.Symbols)
	assert.Equal(t, 1, s.Multiplicity)
	require.NotNil(t, s.Identifiers)
	assert.Equal(t, "water", s.Identifiers.Name)
	//the unrecognized comment token survives in extras
	assert.Equal(t, []string{"from=fixture"}, s.Extras[xyzCommentKey])
}

func TestResultsRoundTripWithBinaryFile(t *testing.T) {
	blob := []byte{0x00, 0x01, 0xfe, 0xff, 0x10}
	r := energyStep(t, water(t), -76.38)
	r.Data = &SinglePointData{
		Files:  Files{Files: map[string]FileData{"wfn.bin": BinaryFile(blob), "out.log": TextFile("done\n")}},
		Energy: Float(-76.38),
	}
	dir := t.TempDir()

	for _, ext := range []string{".json", ".yaml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "results"+ext)
			require.NoError(t, r.Save(path))
			back, warnings, err := OpenResults(path)
			require.NoError(t, err)
			assert.Empty(t, warnings)
			data, ok := back.Data.(*SinglePointData)
			require.True(t, ok)
			assert.Equal(t, -76.38, *data.Energy)
			wfn := data.Files.Files["wfn.bin"]
			assert.True(t, wfn.IsBinary())
			assert.Equal(t, blob, wfn.Bytes(), "binary content is byte-identical after the round trip")
			assert.Equal(t, "done\n", data.Files.Files["out.log"].Text())
		})
	}
}

func TestCompressedRoundTrip(t *testing.T) {
	s := water(t)
	dir := t.TempDir()
	for _, ext := range []string{".json.gz", ".yaml.zst"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "water"+ext)
			require.NoError(t, s.Save(path))
			back, _, err := OpenStructure(path)
			require.NoError(t, err)
			assert.Equal(t, s.Geometry, back.Geometry)
		})
	}
}

func TestOpenDispatch(t *testing.T) {
	dir := t.TempDir()

	s := water(t)
	spath := filepath.Join(dir, "s.json")
	require.NoError(t, s.Save(spath))
	obj, _, err := Open(spath)
	require.NoError(t, err)
	assert.IsType(t, &Structure{}, obj)

	spec := &CalcSpec{Structure: s, CalcType: Hessian, Model: Model{Method: "hf", Basis: "sto-3g"}}
	cpath := filepath.Join(dir, "c.yaml")
	require.NoError(t, spec.Save(cpath))
	obj, _, err = Open(cpath)
	require.NoError(t, err)
	assert.IsType(t, &CalcSpec{}, obj)

	r := energyStep(t, s, -76.0)
	rpath := filepath.Join(dir, "r.toml")
	require.NoError(t, r.Save(rpath))
	obj, _, err = Open(rpath)
	require.NoError(t, err)
	assert.IsType(t, &Results{}, obj)

	fspec := &FileSpec{CmdlineArgs: []string{"-i", "input.dat"}}
	fpath := filepath.Join(dir, "f.json")
	require.NoError(t, fspec.Save(fpath))
	obj, _, err = Open(fpath)
	require.NoError(t, err)
	assert.IsType(t, &FileSpec{}, obj)
}

func TestOpenSpecDispatch(t *testing.T) {
	dir := t.TempDir()
	spec := &CompositeCalcSpec{
		CalcSpec:       CalcSpec{Structure: water(t), CalcType: Optimization, Model: Model{Method: "b3lyp"}},
		Subprogram:     "psi4",
		SubprogramSpec: CoreSpec{Model: Model{Method: "b3lyp"}},
	}
	path := filepath.Join(dir, "opt.json")
	require.NoError(t, spec.Save(path))
	back, _, err := OpenSpec(path)
	require.NoError(t, err)
	composite, ok := back.(*CompositeCalcSpec)
	require.True(t, ok)
	assert.Equal(t, "psi4", composite.Subprogram)
}

func TestOpenResultsDir(t *testing.T) {
	dir := t.TempDir()
	a := energyStep(t, water(t), -76.0)
	b := energyStep(t, water(t), -76.2)
	require.NoError(t, a.Save(filepath.Join(dir, "01_energy.json")))
	require.NoError(t, b.Save(filepath.Join(dir, "02_energy.yaml")))
	//trajectory XYZ output and unrelated files are skipped
	require.NoError(t, water(t).Save(filepath.Join(dir, "water.xyz")))

	all, warnings, err := OpenResultsDir(dir)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, all, 2)
	e0, _ := all[0].FinalEnergy()
	e1, _ := all[1].FinalEnergy()
	assert.Equal(t, -76.0, e0)
	assert.Equal(t, -76.2, e1)
}

func TestResultsTrajectoryXYZSave(t *testing.T) {
	s := water(t)
	r := &Results{
		InputData: &CalcSpec{Structure: s, CalcType: Optimization, Model: Model{Method: "b3lyp"}},
		Success:   true,
		Data: &OptimizationData{Trajectory: []*Results{
			energyStep(t, s, -76.0),
			energyStep(t, s, -76.1),
		}},
		Provenance: Provenance{Program: "geometric"},
	}
	path := filepath.Join(t.TempDir(), "traj.xyz")
	require.NoError(t, r.Save(path))
	structures, _, err := OpenStructures(path)
	require.NoError(t, err)
	assert.Len(t, structures, 2)
}

/*
 * serialize.go, part of qcio.
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

//Disk round trips. The format follows the file extension: .json, .yaml
//(or .yml), .toml and, for structures and trajectories, .xyz. A
//trailing .gz or .zst adds transparent compression. The JSON field
//layout is the canonical one; YAML and TOML are produced from the same
//logical tree, so the three formats carry identical content and any of
//them reopens into the same value.
//
//Opening goes through a generic tree first so the legacy-key shims in
//compat.go can run before struct binding, whatever the format.

package qcio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	kgzip "github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//Serialization formats, as returned by FormatOf.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatXYZ  = "xyz"
)

//FormatOf infers the serialization format and the compression ("gz",
//"zst" or "") from a file name.
func FormatOf(path string) (format, compression string, err error) {
	name := filepath.Base(path)
	switch {
	case strings.HasSuffix(name, ".gz"):
		compression = "gz"
		name = strings.TrimSuffix(name, ".gz")
	case strings.HasSuffix(name, ".zst"):
		compression = "zst"
		name = strings.TrimSuffix(name, ".zst")
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		format = FormatJSON
	case ".yaml", ".yml":
		format = FormatYAML
	case ".toml":
		format = FormatTOML
	case ".xyz":
		format = FormatXYZ
	default:
		return "", "", &PError{Format: "file", Message: fmt.Sprintf("cannot infer a format from %q", path)}
	}
	return format, compression, nil
}

//toTree converts a model value to its generic tree via the canonical
//JSON field layout.
func toTree(obj any) (any, error) {
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

//Marshal serializes a model value to the given format. XYZ is not a
//tree format and is handled by the Save methods instead.
func Marshal(obj any, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(obj, "", "  ")
	case FormatYAML:
		tree, err := toTree(obj)
		if err != nil {
			return nil, err
		}
		return yaml.Marshal(tree)
	case FormatTOML:
		tree, err := toTree(obj)
		if err != nil {
			return nil, err
		}
		return toml.Marshal(tree)
	}
	return nil, &PError{Format: format, Message: "unsupported serialization format"}
}

//decodeTree parses serialized text into a generic tree.
func decodeTree(data []byte, format string) (any, error) {
	var tree any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, &PError{Format: FormatJSON, Message: err.Error()}
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, &PError{Format: FormatYAML, Message: err.Error()}
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, &PError{Format: FormatTOML, Message: err.Error()}
		}
	default:
		return nil, &PError{Format: format, Message: "unsupported serialization format"}
	}
	return tree, nil
}

//readFileData reads a file, transparently decompressing .gz and .zst.
func readFileData(path, compression string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch compression {
	case "gz":
		r, err := kgzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, &PError{Format: "gzip", Message: err.Error()}
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, &PError{Format: "gzip", Message: err.Error()}
		}
		return out, nil
	case "zst":
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		out, err := dec.DecodeAll(raw, nil)
		if err != nil {
			return nil, &PError{Format: "zstd", Message: err.Error()}
		}
		return out, nil
	}
	return raw, nil
}

//writeFileData writes data to path, creating parent directories, and
//compressing per the compression tag.
func writeFileData(path string, data []byte, compression string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	switch compression {
	case "gz":
		var buf bytes.Buffer
		w := kgzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}
		data = buf.Bytes()
	case "zst":
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return err
		}
		data = enc.EncodeAll(data, nil)
		enc.Close()
	}
	return os.WriteFile(path, data, 0644)
}

//saveTree writes a model value to path in the format its extension
//names.
func saveTree(obj any, path string) error {
	format, compression, err := FormatOf(path)
	if err != nil {
		return err
	}
	if format == FormatXYZ {
		return &PError{Format: FormatXYZ, Message: "this model has no XYZ representation"}
	}
	data, err := Marshal(obj, format)
	if err != nil {
		return err
	}
	return writeFileData(path, data, compression)
}

//openTree reads path into a generic tree, runs the compatibility shims
//and reports which legacy keys fired.
func openTree(path string) (any, []CompatWarning, error) {
	format, compression, err := FormatOf(path)
	if err != nil {
		return nil, nil, err
	}
	if format == FormatXYZ {
		return nil, nil, &PError{Format: FormatXYZ, Message: "not a tree format"}
	}
	data, err := readFileData(path, compression)
	if err != nil {
		return nil, nil, err
	}
	tree, err := decodeTree(data, format)
	if err != nil {
		return nil, nil, err
	}
	var warnings []CompatWarning
	if err := compatTree(tree, "", &warnings); err != nil {
		return nil, nil, err
	}
	return tree, warnings, nil
}

//bindTree funnels a compat-clean tree into a concrete model through the
//canonical JSON layout, so custom UnmarshalJSON logic runs for every
//input format.
func bindTree(tree any, target any) error {
	raw, err := json.Marshal(tree)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}

//Save writes the structure to path. An .xyz extension produces XYZ
//text; .json, .yaml and .toml produce the tree formats.
func (s *Structure) Save(path string) error {
	format, compression, err := FormatOf(path)
	if err != nil {
		return err
	}
	if format == FormatXYZ {
		return writeFileData(path, []byte(s.ToXYZ(0)), compression)
	}
	return saveTree(s, path)
}

//Save writes the spec to path.
func (f *FileSpec) Save(path string) error { return saveTree(f, path) }

//Save writes the spec to path.
func (c *CalcSpec) Save(path string) error { return saveTree(c, path) }

//Save writes the spec to path.
func (c *CompositeCalcSpec) Save(path string) error { return saveTree(c, path) }

//Save writes the results to path. For optimization data an .xyz
//extension writes the trajectory as multi-structure XYZ; for conformer
//search data it writes the conformers.
func (r *Results) Save(path string) error {
	format, compression, err := FormatOf(path)
	if err != nil {
		return err
	}
	if format == FormatXYZ {
		switch data := r.Data.(type) {
		case *OptimizationData:
			return writeFileData(path, []byte(data.ToXYZ()), compression)
		case *ConformerSearchData:
			return writeFileData(path, []byte(ToXYZMulti(data.Conformers, 0)), compression)
		}
		return &PError{Format: FormatXYZ, Message: "only trajectories and conformers can be written as XYZ"}
	}
	return saveTree(r, path)
}

//OpenStructure reads a structure from path. XYZ, JSON, YAML and TOML
//are accepted; the warnings report any legacy keys that were remapped.
func OpenStructure(path string) (*Structure, []CompatWarning, error) {
	format, compression, err := FormatOf(path)
	if err != nil {
		return nil, nil, err
	}
	if format == FormatXYZ {
		data, err := readFileData(path, compression)
		if err != nil {
			return nil, nil, err
		}
		s, err := FromXYZ(string(data))
		return s, nil, err
	}
	tree, warnings, err := openTree(path)
	if err != nil {
		return nil, nil, err
	}
	s := &Structure{}
	if err := bindTree(tree, s); err != nil {
		return nil, nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, nil, errDecorate(err, "OpenStructure")
	}
	return s, warnings, nil
}

//OpenStructures reads a list of structures: a multi-structure XYZ file,
//or a tree file holding an array of structures.
func OpenStructures(path string) ([]*Structure, []CompatWarning, error) {
	format, compression, err := FormatOf(path)
	if err != nil {
		return nil, nil, err
	}
	if format == FormatXYZ {
		data, err := readFileData(path, compression)
		if err != nil {
			return nil, nil, err
		}
		structures, err := FromXYZMulti(string(data))
		return structures, nil, err
	}
	tree, warnings, err := openTree(path)
	if err != nil {
		return nil, nil, err
	}
	var structures []*Structure
	if err := bindTree(tree, &structures); err != nil {
		return nil, nil, err
	}
	for i, s := range structures {
		if err := s.Validate(); err != nil {
			if v, ok := err.(*VError); ok {
				return nil, nil, v.at(fmt.Sprintf("[%d]", i))
			}
			return nil, nil, err
		}
	}
	return structures, warnings, nil
}

//OpenSpec reads an input spec from path, picking the concrete type from
//the keys present in the file.
func OpenSpec(path string) (Spec, []CompatWarning, error) {
	tree, warnings, err := openTree(path)
	if err != nil {
		return nil, nil, err
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, nil, err
	}
	spec, err := unmarshalSpec(raw)
	if err != nil {
		return nil, nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, nil, errDecorate(err, "OpenSpec")
	}
	return spec, warnings, nil
}

//OpenResults reads a results envelope from path. The concrete Spec and
//Data types are picked by the calculation type and the success flag,
//and the envelope is validated before being returned.
func OpenResults(path string) (*Results, []CompatWarning, error) {
	tree, warnings, err := openTree(path)
	if err != nil {
		return nil, nil, err
	}
	r := &Results{}
	if err := bindTree(tree, r); err != nil {
		return nil, nil, err
	}
	return r, warnings, nil
}

//Open reads whichever model a file holds, picking the type from the
//keys present: a success flag plus input_data is a Results envelope, a
//calctype a calculation spec, symbols a structure, anything else a file
//spec. XYZ files open as a Structure.
func Open(path string) (any, []CompatWarning, error) {
	format, _, err := FormatOf(path)
	if err != nil {
		return nil, nil, err
	}
	if format == FormatXYZ {
		return OpenStructure(path)
	}
	tree, warnings, err := openTree(path)
	if err != nil {
		return nil, nil, err
	}
	node, ok := tree.(map[string]any)
	if !ok {
		return nil, nil, &PError{Format: format, Message: "expected a single object"}
	}
	_, hasSuccess := node["success"]
	_, hasInput := node["input_data"]
	_, hasCalctype := node["calctype"]
	_, hasSymbols := node["symbols"]
	switch {
	case hasSuccess && hasInput:
		r := &Results{}
		if err := bindTree(tree, r); err != nil {
			return nil, nil, err
		}
		return r, warnings, nil
	case hasSymbols && !hasCalctype:
		s := &Structure{}
		if err := bindTree(tree, s); err != nil {
			return nil, nil, err
		}
		if err := s.Validate(); err != nil {
			return nil, nil, errDecorate(err, "Open")
		}
		return s, warnings, nil
	default:
		raw, err := json.Marshal(tree)
		if err != nil {
			return nil, nil, err
		}
		spec, err := unmarshalSpec(raw)
		if err != nil {
			return nil, nil, err
		}
		if err := spec.Validate(); err != nil {
			return nil, nil, errDecorate(err, "Open")
		}
		return spec, warnings, nil
	}
}

//OpenResultsDir reads every results file in dir (non-recursively, by
//recognized extension), sorted by file name. Files that do not look
//like serialized trees are skipped.
func OpenResultsDir(dir string) ([]*Results, []CompatWarning, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		format, _, err := FormatOf(e.Name())
		if err != nil || format == FormatXYZ {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	var all []*Results
	var warnings []CompatWarning
	for _, name := range names {
		r, w, err := OpenResults(filepath.Join(dir, name))
		if err != nil {
			return nil, nil, errDecorate(err, "OpenResultsDir "+name)
		}
		all = append(all, r)
		warnings = append(warnings, w...)
	}
	return all, warnings, nil
}

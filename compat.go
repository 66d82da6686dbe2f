/*
 * compat.go, part of qcio.
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

//Compatibility shims for files written by older versions of the format.
//The shims operate on the decoded generic tree, before any struct
//binding, so they apply uniformly to JSON, YAML and TOML input. Each
//remap emits a CompatWarning; none of them is an error.
//
//Renames handled here: stdout->logs and results->data on result
//envelopes, molecule->structure on calculation specs, ids->identifiers
//on structures, subprogram_args->subprogram_spec on composite specs,
//and a top-level files map on old result envelopes, which moves into
//the data payload.
//
//The same pass keeps files from newer producers loadable: keys the
//current schema does not know move into the node's extras bag rather
//than being dropped.

package qcio

import "fmt"

//compatTree walks the tree rooted at node and rewrites legacy keys in
//place, appending one CompatWarning per rewrite. It also rejects an
//explicit non-positive multiplicity, which the struct layer cannot see
//because it treats zero as absent.
func compatTree(node any, path string, warnings *[]CompatWarning) error {
	switch v := node.(type) {
	case map[string]any:
		if err := compatMap(v, path, warnings); err != nil {
			return err
		}
		for key, child := range v {
			if err := compatTree(child, childPath(path, key), warnings); err != nil {
				return err
			}
		}
	case []any:
		for i, child := range v {
			if err := compatTree(child, fmt.Sprintf("%s[%d]", path, i), warnings); err != nil {
				return err
			}
		}
	}
	return nil
}

//compatMap applies the shims that concern one object node. The gates
//look at sibling keys so a rename only fires on the kind of node it was
//meant for: a "results" key inside keywords or extras is left alone.
func compatMap(node map[string]any, path string, warnings *[]CompatWarning) error {
	_, isEnvelope := node["success"]
	_, hasInput := node["input_data"]
	isEnvelope = isEnvelope && hasInput
	_, isCalc := node["calctype"]
	_, isStructure := node["symbols"]
	_, isComposite := node["subprogram"]

	if isEnvelope {
		rename(node, "stdout", "logs", path, warnings)
		rename(node, "results", "data", path, warnings)
		if prov, ok := node["provenance"].(map[string]any); ok {
			rename(prov, "version", "program_version", childPath(path, "provenance"), warnings)
			stashUnknown(prov, provenanceKeys)
		}
		//very old envelopes carried the file bag beside the results
		//instead of inside them
		if files, ok := node["files"]; ok {
			data, ok := node["data"].(map[string]any)
			if !ok {
				data = map[string]any{}
				node["data"] = data
			}
			if _, taken := data["files"]; !taken {
				data["files"] = files
			}
			delete(node, "files")
			*warnings = append(*warnings, CompatWarning{Path: path, Old: "files", New: "data.files"})
		}
		if data, ok := node["data"].(map[string]any); ok {
			stashUnknown(data, dataKeysFor(node))
		}
		if input, ok := node["input_data"].(map[string]any); ok {
			if _, structured := input["calctype"]; !structured {
				stashUnknown(input, fileSpecKeys)
			}
		}
	}
	if isCalc {
		rename(node, "molecule", "structure", path, warnings)
		if model, ok := node["model"].(map[string]any); ok {
			stashUnknown(model, modelKeys)
		}
	}
	if isComposite {
		rename(node, "subprogram_args", "subprogram_spec", path, warnings)
		if sub, ok := node["subprogram_spec"].(map[string]any); ok {
			stashUnknown(sub, coreSpecKeys)
			if model, ok := sub["model"].(map[string]any); ok {
				stashUnknown(model, modelKeys)
			}
		}
	}
	if isStructure {
		rename(node, "ids", "identifiers", path, warnings)
		if raw, ok := node["multiplicity"]; ok {
			m, ok := asFloat(raw)
			if !ok || m < 1 {
				return vErr(childPath(path, "multiplicity"), ErrMultiplicity)
			}
		}
	}
	//fields written by a newer producer are kept, in extras, instead of
	//being dropped on the floor
	switch {
	case isEnvelope:
		stashUnknown(node, envelopeKeys)
	case isCalc:
		stashUnknown(node, specKeys)
	case isStructure:
		stashUnknown(node, structureKeys)
	}
	return nil
}

var envelopeKeys = keySet("input_data", "success", "data", "logs", "traceback", "provenance", "extras")

var specKeys = keySet("structure", "calctype", "model", "keywords", "files", "cmdline_args",
	"subprogram", "subprogram_spec", "extras")

var structureKeys = keySet("symbols", "geometry", "charge", "multiplicity", "connectivity",
	"identifiers", "extras")

var provenanceKeys = keySet("program", "program_version", "scratch_dir", "wall_time",
	"hostname", "hostcpus", "hostmem", "extras")

var fileSpecKeys = keySet("files", "cmdline_args", "extras")

var modelKeys = keySet("method", "basis", "extras")

var coreSpecKeys = keySet("files", "model", "keywords", "extras")

var filesDataKeys = keySet("files", "extras")

var calcInfoKeys = []string{"calcinfo_natoms", "calcinfo_nalpha", "calcinfo_nbeta",
	"calcinfo_nbasis", "calcinfo_nmo"}

var singlePointKeys = keySet(append([]string{"files", "extras", "energy", "gradient", "hessian",
	"nuclear_repulsion_energy", "wavefunction", "freqs_wavenumber", "normal_modes_cartesian",
	"gibbs_free_energy", "scf_dipole_moment"}, calcInfoKeys...)...)

var optimizationKeys = keySet(append([]string{"files", "extras", "trajectory"}, calcInfoKeys...)...)

var conformerKeys = keySet("files", "extras", "conformers", "conformer_energies",
	"rotamers", "rotamer_energies")

//dataKeysFor picks the schema of an envelope's data node the same way
//deserialization picks its concrete type: the success flag together
//with the calculation type in input_data.
func dataKeysFor(envelope map[string]any) map[string]bool {
	success, _ := envelope["success"].(bool)
	if !success {
		return filesDataKeys
	}
	input, _ := envelope["input_data"].(map[string]any)
	calctype, _ := input["calctype"].(string)
	switch CalcType(calctype) {
	case Energy, Gradient, Hessian:
		return singlePointKeys
	case Optimization, TransitionState:
		return optimizationKeys
	case ConformerSearch:
		return conformerKeys
	}
	return filesDataKeys
}

func keySet(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

//stashUnknown moves keys outside the node's schema into its extras bag.
func stashUnknown(node map[string]any, known map[string]bool) {
	var extras map[string]any
	for k, v := range node {
		if known[k] {
			continue
		}
		if extras == nil {
			if e, ok := node["extras"].(map[string]any); ok {
				extras = e
			} else {
				extras = map[string]any{}
			}
		}
		if _, taken := extras[k]; !taken {
			extras[k] = v
		}
		delete(node, k)
	}
	if extras != nil {
		node["extras"] = extras
	}
}

//rename moves the value under old to new, unless new is already taken.
func rename(node map[string]any, old, new, path string, warnings *[]CompatWarning) {
	v, ok := node[old]
	if !ok {
		return
	}
	if _, taken := node[new]; !taken {
		node[new] = v
	}
	delete(node, old)
	*warnings = append(*warnings, CompatWarning{Path: path, Old: old, New: new})
}

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

//asFloat converts the numeric types the three decoders produce.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

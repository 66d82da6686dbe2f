/*
 * results.go, part of qcio.
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
	"fmt"
)

//Provenance describes how a Results was produced.
type Provenance struct {
	Program        string         `json:"program"`
	ProgramVersion string         `json:"program_version,omitempty"`
	ScratchDir     string         `json:"scratch_dir,omitempty"`
	WallTime       float64        `json:"wall_time,omitempty"`
	Hostname       string         `json:"hostname,omitempty"`
	HostCPUs       int            `json:"hostcpus,omitempty"`
	HostMem        int            `json:"hostmem,omitempty"`
	Extras         map[string]any `json:"extras,omitempty"`
}

//Validate checks that the provenance names the program.
func (p *Provenance) Validate() error {
	if p.Program == "" {
		return vErr("provenance.program", ErrNoProgram)
	}
	return nil
}

//Results is the envelope around everything a calculation produced: the
//spec it was produced from (kept verbatim; do not edit it afterwards),
//whether it succeeded, the Data payload, the program logs and the
//provenance.
//
//A failed calculation carries a plain Files bag as data, never populated
//numeric data; inside an optimization trajectory the failed final step
//is what makes derived energies NaN rather than zero.
type Results struct {
	InputData  Spec           `json:"input_data"`
	Success    bool           `json:"success"`
	Data       Data           `json:"data"`
	Logs       string         `json:"logs,omitempty"`
	Traceback  string         `json:"traceback,omitempty"`
	Provenance Provenance     `json:"provenance"`
	Extras     map[string]any `json:"extras,omitempty"`
}

//NewResults validates r and returns an independent copy.
func NewResults(r Results) (*Results, error) {
	n := r.Copy()
	if err := n.Validate(); err != nil {
		return nil, errDecorate(err, "NewResults")
	}
	return n, nil
}

//Validate checks the envelope's invariants and those of its spec and
//data.
func (r *Results) Validate() error {
	if r.InputData == nil {
		return vErr("input_data", "an input spec is required")
	}
	if err := r.InputData.Validate(); err != nil {
		if v, ok := err.(*VError); ok {
			return v.at("input_data")
		}
		return err
	}
	if err := r.Provenance.Validate(); err != nil {
		return err
	}
	if r.Data == nil {
		return vErr("data", "a data payload is required")
	}
	if !r.Success {
		if r.Traceback == "" {
			return vErr("traceback", ErrNoTraceback)
		}
		if _, ok := r.Data.(*Files); !ok {
			return vErr("data", ErrFailedStructured)
		}
		return nil
	}
	//Success: structured specs demand structured data with the primary
	//result present.
	switch spec := r.InputData.(type) {
	case *FileSpec:
		//any data goes
	default:
		calctype := specCalcType(spec)
		switch data := r.Data.(type) {
		case *Files:
			return vErr("data", ErrFilesOnSuccess)
		case *SinglePointData:
			if !data.primaryPresent(calctype) {
				return vErr("data."+string(calctype), ErrMissingPrimary)
			}
		case *OptimizationData:
			if len(data.Trajectory) == 0 {
				return vErr("data.trajectory", ErrEmptyTrajectory)
			}
		case *ConformerSearchData:
			if len(data.Conformers) == 0 {
				return vErr("data.conformers", ErrEmptyConformers)
			}
		}
	}
	return errDecorate(r.Data.Validate(), "Results.Validate")
}

//specCalcType returns the calculation type a spec requests, or "" for
//file specs.
func specCalcType(s Spec) CalcType {
	switch v := s.(type) {
	case *CalcSpec:
		return v.CalcType
	case *CompositeCalcSpec:
		return v.CalcType
	}
	return ""
}

//Copy returns a deep copy of the envelope. Spec and Data are copied too.
func (r *Results) Copy() *Results {
	n := &Results{
		Success:    r.Success,
		Logs:       r.Logs,
		Traceback:  r.Traceback,
		Provenance: r.Provenance,
	}
	n.Provenance.Extras = copyExtras(r.Provenance.Extras)
	n.Extras = copyExtras(r.Extras)
	switch v := r.InputData.(type) {
	case *FileSpec:
		n.InputData = v.Copy()
	case *CalcSpec:
		n.InputData = v.Copy()
	case *CompositeCalcSpec:
		n.InputData = v.Copy()
	}
	switch v := r.Data.(type) {
	case *Files:
		n.Data = v.Copy()
	case *SinglePointData:
		n.Data = v.Copy()
	case *OptimizationData:
		n.Data = v.Copy()
	case *ConformerSearchData:
		n.Data = v.Copy()
	}
	return n
}

//FinalEnergy is a shortcut for the final energy of an optimization
//payload, or the plain energy of a single point payload. It returns
//false when the payload has no energy notion.
func (r *Results) FinalEnergy() (float64, bool) {
	switch data := r.Data.(type) {
	case *SinglePointData:
		if data.Energy != nil {
			return *data.Energy, true
		}
	case *OptimizationData:
		return data.FinalEnergy(), true
	}
	return 0, false
}

//UnmarshalJSON reconstructs the envelope from its serialized form,
//dispatching on the discriminator (the calculation type in input_data,
//together with the success flag) to pick the concrete Spec and Data
//types, then validating the result. This is what keeps every persisted
//(Spec, Data) pairing loadable without the caller knowing which variant
//a file contains.
func (r *Results) UnmarshalJSON(data []byte) error {
	var shadow struct {
		InputData  json.RawMessage `json:"input_data"`
		Success    bool            `json:"success"`
		Data       json.RawMessage `json:"data"`
		Logs       string          `json:"logs"`
		Traceback  string          `json:"traceback"`
		Provenance Provenance      `json:"provenance"`
		Extras     map[string]any  `json:"extras"`
	}
	if err := json.Unmarshal(data, &shadow); err != nil {
		return err
	}
	r.Success = shadow.Success
	r.Logs = shadow.Logs
	r.Traceback = shadow.Traceback
	r.Provenance = shadow.Provenance
	r.Extras = shadow.Extras
	if len(shadow.InputData) == 0 {
		return vErr("input_data", "an input spec is required")
	}
	spec, err := unmarshalSpec(shadow.InputData)
	if err != nil {
		return err
	}
	r.InputData = spec
	if len(shadow.Data) == 0 {
		return vErr("data", "a data payload is required")
	}
	payload, err := unmarshalData(shadow.Data, spec, shadow.Success)
	if err != nil {
		return err
	}
	r.Data = payload
	return r.Validate()
}

//unmarshalSpec picks the concrete Spec type by the keys present:
//a calctype makes it a CalcSpec, a subprogram on top of that a
//CompositeCalcSpec, neither a FileSpec.
func unmarshalSpec(raw json.RawMessage) (Spec, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, &PError{Format: "json", Message: "input_data must be an object"}
	}
	_, hasCalctype := keys["calctype"]
	_, hasSubprogram := keys["subprogram"]
	switch {
	case hasCalctype && hasSubprogram:
		spec := &CompositeCalcSpec{}
		if err := json.Unmarshal(raw, spec); err != nil {
			return nil, err
		}
		return spec, nil
	case hasCalctype:
		spec := &CalcSpec{}
		if err := json.Unmarshal(raw, spec); err != nil {
			return nil, err
		}
		return spec, nil
	default:
		spec := &FileSpec{}
		if err := json.Unmarshal(raw, spec); err != nil {
			return nil, err
		}
		return spec, nil
	}
}

//unmarshalData picks the concrete Data type: failed calculations and
//file specs carry a Files bag; otherwise the calculation type decides.
func unmarshalData(raw json.RawMessage, spec Spec, success bool) (Data, error) {
	if !success {
		files := &Files{}
		if err := json.Unmarshal(raw, files); err != nil {
			return nil, err
		}
		return files, nil
	}
	switch specCalcType(spec) {
	case Energy, Gradient, Hessian:
		d := &SinglePointData{}
		if err := json.Unmarshal(raw, d); err != nil {
			return nil, err
		}
		return d, nil
	case Optimization, TransitionState:
		d := &OptimizationData{}
		if err := json.Unmarshal(raw, d); err != nil {
			return nil, err
		}
		return d, nil
	case ConformerSearch:
		d := &ConformerSearchData{}
		if err := json.Unmarshal(raw, d); err != nil {
			return nil, err
		}
		return d, nil
	default:
		files := &Files{}
		if err := json.Unmarshal(raw, files); err != nil {
			return nil, err
		}
		return files, nil
	}
}

//String gives a one-line summary, useful in logs.
func (r *Results) String() string {
	return fmt.Sprintf("Results{success: %t, program: %s, calctype: %s}", r.Success, r.Provenance.Program, specCalcType(r.InputData))
}

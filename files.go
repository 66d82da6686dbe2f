/*
 * files.go, part of qcio.
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
	"encoding/base64"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

//base64Prefix marks binary file content on the wire. Text content is
//stored as-is.
const base64Prefix = "base64:"

//FileData holds the content of one attached file, either text or raw
//binary. Binary content is base64-encoded during serialization and
//decoded on load, so a round trip is byte-identical.
type FileData struct {
	text   string
	binary []byte //nil when the content is text
}

//TextFile wraps a text content in a FileData.
func TextFile(s string) FileData {
	return FileData{text: s}
}

//BinaryFile wraps raw binary content in a FileData.
func BinaryFile(b []byte) FileData {
	d := make([]byte, len(b))
	copy(d, b)
	return FileData{binary: d}
}

//IsBinary reports whether the content is binary.
func (d FileData) IsBinary() bool {
	return d.binary != nil
}

//Text returns the content as a string. For binary content this is the
//raw bytes reinterpreted, which is rarely what you want.
func (d FileData) Text() string {
	if d.binary != nil {
		return string(d.binary)
	}
	return d.text
}

//Bytes returns the content as bytes.
func (d FileData) Bytes() []byte {
	if d.binary != nil {
		return d.binary
	}
	return []byte(d.text)
}

//MarshalJSON writes text content as a plain string and binary content as
//a base64 string with a "base64:" prefix.
func (d FileData) MarshalJSON() ([]byte, error) {
	if d.binary != nil {
		return json.Marshal(base64Prefix + base64.StdEncoding.EncodeToString(d.binary))
	}
	return json.Marshal(d.text)
}

//UnmarshalJSON reads a string, decoding the "base64:" prefix back into
//binary content.
func (d *FileData) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return &PError{Format: "json", Message: "file content must be a string"}
	}
	if strings.HasPrefix(s, base64Prefix) {
		raw, err := base64.StdEncoding.DecodeString(s[len(base64Prefix):])
		if err != nil {
			return &PError{Format: "json", Message: "invalid base64 file content"}
		}
		*d = FileData{binary: raw}
		return nil
	}
	*d = FileData{text: s}
	return nil
}

//Files is a bag of named file contents. It is the base case for any
//calculation data, successful or failed, and is embedded by every other
//Data variant and by the file-carrying specs.
type Files struct {
	Files  map[string]FileData `json:"files,omitempty"`
	Extras map[string]any      `json:"extras,omitempty"`
}

func (f *Files) dataType() string { return "files" }

//Validate fulfills the model contract; a bare file bag has no invariants.
func (f *Files) Validate() error { return nil }

//Copy returns a deep copy of the bag.
func (f *Files) Copy() *Files {
	n := &Files{}
	if f.Files != nil {
		n.Files = make(map[string]FileData, len(f.Files))
		for k, v := range f.Files {
			if v.IsBinary() {
				n.Files[k] = BinaryFile(v.Bytes())
			} else {
				n.Files[k] = v
			}
		}
	}
	n.Extras = copyExtras(f.Extras)
	return n
}

//AddFile reads the file at path into the bag. Content that is not valid
//UTF-8 is kept as binary. When relativeTo is non-empty the key is the
//path relative to it, otherwise the base name.
func (f *Files) AddFile(path string, relativeTo string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	name := filepath.Base(path)
	if relativeTo != "" {
		if rel, err := filepath.Rel(relativeTo, path); err == nil {
			name = rel
		}
	}
	if f.Files == nil {
		f.Files = make(map[string]FileData)
	}
	if utf8.Valid(raw) {
		f.Files[name] = TextFile(string(raw))
	} else {
		f.Files[name] = BinaryFile(raw)
	}
	return nil
}

//AddFiles reads every regular file in dir into the bag, optionally
//recursing into subdirectories. Names in exclude are skipped.
func (f *Files) AddFiles(dir string, recursive bool, exclude ...string) error {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[e] = true
	}
	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if e.IsDir() || skip[e.Name()] {
				continue
			}
			if err := f.AddFile(filepath.Join(dir, e.Name()), dir); err != nil {
				return err
			}
		}
		return nil
	}
	return filepath.WalkDir(dir, func(path string, e fs.DirEntry, err error) error {
		if err != nil || e.IsDir() || skip[e.Name()] {
			return err
		}
		return f.AddFile(path, dir)
	})
}

//SaveFiles writes every file in the bag below dir, creating parent
//directories as needed for keys that are relative paths.
func (f *Files) SaveFiles(dir string) error {
	for name, data := range f.Files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, data.Bytes(), 0644); err != nil {
			return err
		}
	}
	return nil
}

//copyExtras deep-copies the first map level; nested values are shared.
func copyExtras(e map[string]any) map[string]any {
	if e == nil {
		return nil
	}
	n := make(map[string]any, len(e))
	for k, v := range e {
		n[k] = v
	}
	return n
}

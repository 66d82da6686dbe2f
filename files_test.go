/*
 * files_test.go, part of qcio.
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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileDataWire(t *testing.T) {
	text := TextFile("energy = -76.4\n")
	raw, err := json.Marshal(text)
	require.NoError(t, err)
	assert.Equal(t, `"energy = -76.4\n"`, string(raw))

	blob := BinaryFile([]byte{0xde, 0xad, 0xbe, 0xef})
	raw, err = json.Marshal(blob)
	require.NoError(t, err)
	assert.Equal(t, `"base64:3q2+7w=="`, string(raw))

	var back FileData
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.IsBinary())
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, back.Bytes())

	require.NoError(t, json.Unmarshal([]byte(`"plain text"`), &back))
	assert.False(t, back.IsBinary())
	assert.Equal(t, "plain text", back.Text())
}

func TestFilesDiskRoundTrip(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "input.dat"), []byte("molecule {}\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "wfn.bin"), []byte{0x00, 0xff, 0x80}, 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(src, "scratch"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "scratch", "guess.dat"), []byte("deep"), 0644))

	var flat Files
	require.NoError(t, flat.AddFiles(src, false))
	assert.Len(t, flat.Files, 2, "non-recursive collection skips subdirectories")
	assert.False(t, flat.Files["input.dat"].IsBinary())
	assert.True(t, flat.Files["wfn.bin"].IsBinary(), "non-UTF-8 content is kept as binary")

	var deep Files
	require.NoError(t, deep.AddFiles(src, true))
	require.Len(t, deep.Files, 3)
	assert.Equal(t, "deep", deep.Files[filepath.Join("scratch", "guess.dat")].Text())

	dst := t.TempDir()
	require.NoError(t, deep.SaveFiles(dst))
	got, err := os.ReadFile(filepath.Join(dst, "scratch", "guess.dat"))
	require.NoError(t, err)
	assert.Equal(t, "deep", string(got))
	bin, err := os.ReadFile(filepath.Join(dst, "wfn.bin"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff, 0x80}, bin)
}

func TestFileSpecFromDirectory(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "tc.in"), []byte("run energy\n"), 0644))

	spec, err := NewFileSpecFromDirectory(src, "tc.in")
	require.NoError(t, err)
	assert.Equal(t, []string{"tc.in"}, spec.CmdlineArgs)
	assert.Equal(t, "run energy\n", spec.Files.Files["tc.in"].Text())
	require.NoError(t, spec.Validate())
}

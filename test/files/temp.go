// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package files

import (
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"os"
	"testing"
)

// NewTempConfigFile writes a json config file for a single test and returns its path
func NewTempConfigFile(t testing.TB, content string) string {
	file, err := ioutil.TempFile("", "extendable-timeout-*.json")
	require.NoError(t, err, "failed creating config file")
	_, err = file.Write([]byte(content))
	require.NoError(t, err, "failed writing to config file")
	require.NoError(t, file.Close())
	return file.Name()
}

// NewTempDir returns a fresh directory and a func removing it
func NewTempDir(t testing.TB) (string, func()) {
	dir, err := ioutil.TempDir("", "extendable-timeout")
	require.NoError(t, err, "failed creating temp dir")
	return dir, func() { RemoveSilently(dir) }
}

func RemoveSilently(path string) {
	_ = os.RemoveAll(path)
}

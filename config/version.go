// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import "fmt"

// set at build time with -ldflags "-X"
var SemanticVersion string
var CommitVersion string

const devVersion = "dev"

type Version struct {
	Semantic string
	Commit   string
}

func GetVersion() Version {
	return Version{
		Semantic: SemanticVersion,
		Commit:   CommitVersion,
	}
}

// String renders "extendable-timeout v1.2.0 (abc123)", an unstamped build reports itself as dev
func (v Version) String() string {
	semantic := v.Semantic
	if semantic == "" {
		semantic = devVersion
	}
	if v.Commit == "" {
		return fmt.Sprintf("extendable-timeout %s", semantic)
	}
	return fmt.Sprintf("extendable-timeout %s (%s)", semantic, v.Commit)
}

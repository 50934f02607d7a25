// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package bootstrap

import (
	"context"
	"github.com/orbs-network/go-mock"
)

type extensionRequesterMock struct {
	mock.Mock
}

func (r *extensionRequesterMock) RequestExtension(ctx context.Context, amount uint64) error {
	ret := r.Called(ctx, amount)
	return ret.Error(0)
}

func (r *extensionRequesterMock) Close() {
	r.Called()
}

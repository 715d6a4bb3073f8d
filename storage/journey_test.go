/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/flex/handle"
	"dirpx.dev/flex/storage"
)

func TestRunJourney(t *testing.T) {
	rep, err := storage.RunJourney(newEnv(t), []int{1, 2, 3})
	require.NoError(t, err)

	assert.NotEmpty(t, rep.CellID)
	assert.Equal(t, []int{1, 2, 3}, rep.Slice)
	assert.Equal(t, []storage.Lookup{
		{Key: 0, Item: 1, Found: true},
		{Key: 1, Item: 2, Found: true},
	}, rep.Lookups)
	assert.Equal(t, 6, rep.Sum)
	assert.ErrorIs(t, rep.Mismatch, handle.ErrUnsupportedCapability)
}

func TestRunJourney_ShortInput(t *testing.T) {
	rep, err := storage.RunJourney(newEnv(t), []int{5})
	require.NoError(t, err)
	assert.Equal(t, []storage.Lookup{
		{Key: 0, Item: 5, Found: true},
		{Key: 1, Item: 0, Found: false},
	}, rep.Lookups)
	assert.Equal(t, 5, rep.Sum)
}

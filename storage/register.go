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

package storage

import (
	"errors"

	"dirpx.dev/flex/apis"
	"dirpx.dev/flex/registry"
)

// Register files every registered storage of this package, instantiated
// at K and I, with reg. ValStorage describes itself and is only declared.
//
// Register reports duplicate registrations according to reg's policy, so
// calling it twice for the same K and I fails under DuplicateReject.
func Register[K Key, I any](reg apis.Registry) error {
	return errors.Join(
		registerVec[K, I](reg),
		registerHashMap[K, I](reg),
		registerSparse[K, I](reg),
		registerView[K, I](reg),
		registry.DeclareType[ValStorage[K, I]](reg),
	)
}

func registerVec[K Key, I any](reg apis.Registry) error {
	return errors.Join(
		registry.Implement[VecStorage[K, I], Storage](reg),
		registry.Implement[VecStorage[K, I], Clearable](reg),
		registry.Implement[VecStorage[K, I], KeyStorage[K]](reg),
		registry.Implement[VecStorage[K, I], KeyItem[K, I]](reg),
		registry.Implement[VecStorage[K, I], MutKeyItem[K, I]](reg),
		registry.Implement[VecStorage[K, I], Typed](reg),
		registry.Implement[VecStorage[K, I], ItemSlice[I]](reg),
		registry.Implement[VecStorage[K, I], MutItemSlice[I]](reg),
		registry.Implement[VecStorage[K, I], ByteSlice](reg),
	)
}

func registerHashMap[K Key, I any](reg apis.Registry) error {
	return errors.Join(
		registry.Implement[HashMapStorage[K, I], Storage](reg),
		registry.Implement[HashMapStorage[K, I], Clearable](reg),
		registry.Implement[HashMapStorage[K, I], KeyStorage[K]](reg),
		registry.Implement[HashMapStorage[K, I], KeyItem[K, I]](reg),
		registry.Implement[HashMapStorage[K, I], MutKeyItem[K, I]](reg),
		registry.Implement[HashMapStorage[K, I], Typed](reg),
	)
}

func registerSparse[K Key, I any](reg apis.Registry) error {
	return errors.Join(
		registry.Implement[SparseStorage[K, I], Storage](reg),
		registry.Implement[SparseStorage[K, I], Clearable](reg),
		registry.Implement[SparseStorage[K, I], KeyStorage[K]](reg),
		registry.Implement[SparseStorage[K, I], KeyItem[K, I]](reg),
		registry.Implement[SparseStorage[K, I], MutKeyItem[K, I]](reg),
		registry.Implement[SparseStorage[K, I], Typed](reg),
		registry.Implement[SparseStorage[K, I], ItemSlice[I]](reg),
		registry.Implement[SparseStorage[K, I], MutItemSlice[I]](reg),
		registry.Implement[SparseStorage[K, I], ByteSlice](reg),
	)
}

func registerView[K Key, I any](reg apis.Registry) error {
	return errors.Join(
		registry.Implement[ViewStorage[K, I], Storage](reg),
		registry.Implement[ViewStorage[K, I], Clearable](reg),
		registry.Implement[ViewStorage[K, I], KeyStorage[K]](reg),
		registry.Implement[ViewStorage[K, I], KeyItem[K, I]](reg),
		registry.Implement[ViewStorage[K, I], MutKeyItem[K, I]](reg),
		registry.Implement[ViewStorage[K, I], Typed](reg),
	)
}

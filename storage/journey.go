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
	"fmt"
	"slices"

	"dirpx.dev/flex/handle"
)

// Lookup is one keyed read made during a journey.
type Lookup struct {
	Key   int
	Item  int
	Found bool
}

// JourneyReport records what RunJourney observed at each step.
type JourneyReport struct {
	CellID   string
	Slice    []int
	Lookups  []Lookup
	Sum      int
	Mismatch error
}

// RunJourney wraps items in a VecStorage[int, int] and walks one shared
// cell through several views: the root any view, ItemSlice, KeyItem, back
// to the concrete type, and finally a KeyItem with the wrong item type,
// which must be rejected. VecStorage[int, int] must be registered with
// env's resolver (see Register).
func RunJourney(env handle.Env, items []int) (JourneyReport, error) {
	var rep JourneyReport

	h, err := handle.Wrap(NewVec[int, int](items...), env)
	if err != nil {
		return rep, err
	}
	root := handle.Erase(h)
	h.Release()
	defer root.Release()
	rep.CellID = root.EntityID()

	seq, err := handle.CastToCapability[ItemSlice[int]](root)
	if err != nil {
		return rep, err
	}
	defer seq.Release()
	if err := seq.View(func(s ItemSlice[int]) error {
		rep.Slice = slices.Clone(s.Slice())
		return nil
	}); err != nil {
		return rep, err
	}

	ki, err := handle.CastToCapability[KeyItem[int, int]](seq)
	if err != nil {
		return rep, err
	}
	defer ki.Release()
	if err := ki.View(func(s KeyItem[int, int]) error {
		for k := range 2 {
			item, ok := s.Get(k)
			rep.Lookups = append(rep.Lookups, Lookup{Key: k, Item: item, Found: ok})
		}
		return nil
	}); err != nil {
		return rep, err
	}

	vec, err := handle.CastToConcrete[VecStorage[int, int]](ki)
	if err != nil {
		return rep, err
	}
	defer vec.Release()
	if err := vec.View(func(v *VecStorage[int, int]) error {
		for _, item := range v.data {
			rep.Sum += item
		}
		return nil
	}); err != nil {
		return rep, err
	}

	wrong, err := handle.CastToCapability[KeyItem[int, float64]](ki)
	if err == nil {
		wrong.Release()
		return rep, fmt.Errorf("flex(storage): %s unexpectedly supports KeyItem[int, float64]", vec.EntityName())
	}
	if !errors.Is(err, handle.ErrUnsupportedCapability) {
		return rep, err
	}
	rep.Mismatch = err
	return rep, nil
}

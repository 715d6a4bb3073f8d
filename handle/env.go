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

package handle

import (
	"dirpx.dev/flex/apis"
)

// Env supplies the resolver, configuration and logger that casts consult.
// Implementations must be safe for concurrent use; each call should return
// the current value so that handles observe reconfiguration.
type Env interface {
	Resolver() apis.Resolver
	Config() apis.Config
	Logger() apis.Logger
}

// Static returns an Env with fixed components. A nil log discards diagnostics.
func Static(res apis.Resolver, cfg apis.Config, log apis.Logger) Env {
	return staticEnv{res: res, cfg: cfg, log: apis.OrNop(log)}
}

type staticEnv struct {
	res apis.Resolver
	cfg apis.Config
	log apis.Logger
}

func (e staticEnv) Resolver() apis.Resolver { return e.res }
func (e staticEnv) Config() apis.Config     { return e.cfg }
func (e staticEnv) Logger() apis.Logger     { return e.log }

// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package v1

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zintix-labs/duckdice-bot/catalog"
	"github.com/zintix-labs/duckdice-bot/errs"
	"github.com/zintix-labs/duckdice-bot/server/httperr"
	"github.com/zintix-labs/duckdice-bot/strategy"
)

// StrategiesHandler mirrors the CLI's `strategies`/`show` commands over
// HTTP, both reading the same compile-time catalog.Registry.
type StrategiesHandler struct {
	reg *strategy.Registry
}

func NewStrategiesHandler() (*StrategiesHandler, error) {
	reg, err := catalog.All()
	if err != nil {
		return nil, err
	}
	return &StrategiesHandler{reg: reg}, nil
}

func (h *StrategiesHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := catalog.Names()
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	metas := make([]strategy.Metadata, 0, len(names))
	for _, name := range names {
		strat, err := h.reg.Build(name)
		if err != nil {
			continue
		}
		metas = append(metas, strat.Metadata())
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(metas)
}

func (h *StrategiesHandler) Show(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	strat, err := h.reg.Build(name)
	if err != nil {
		httperr.Errs(w, errs.NewWarn("unknown strategy: "+name))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(strat.Metadata())
}

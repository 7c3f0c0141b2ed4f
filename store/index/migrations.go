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

package index

import (
	"context"
	"database/sql"
	"embed"
	"sort"
	"strings"

	"github.com/zintix-labs/duckdice-bot/errs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// applyMigrations runs every embedded *.sql file in lexical order against
// db. IF NOT EXISTS guards make each file idempotent, so there is no separate
// "schema_migrations" bookkeeping table to maintain. golang-migrate/migrate
// was considered (and still lives in this repo's go.mod history) but its
// sqlite3 dialect driver expects the mattn/go-sqlite3 cgo binding,
// registered under the driver name "sqlite3" — incompatible with this
// repo's pure-Go modernc.org/sqlite driver, which registers as "sqlite".
// Running both would mean shipping two conflicting SQLite drivers for one
// embedded database, so the hand-rolled runner below is used instead.
func applyMigrations(ctx context.Context, db *sql.DB) error {
	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return errs.StoreError("index: list migrations: " + err.Error())
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		raw, err := migrationFiles.ReadFile("migrations/" + name)
		if err != nil {
			return errs.StoreError("index: read migration " + name + ": " + err.Error())
		}
		if _, err := db.ExecContext(ctx, string(raw)); err != nil {
			return errs.StoreError("index: apply migration " + name + ": " + err.Error())
		}
	}
	return nil
}

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

// Package journal implements the per-session append-only JSONL log:
// one line per engine.Record, fsynced only when the record is
// session_stopped. It is the source of truth if the process dies
// mid-session.
package journal

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/zintix-labs/duckdice-bot/engine"
	"github.com/zintix-labs/duckdice-bot/errs"
)

// Writer is an engine.Journaler backed by a single JSONL file, one
// session per file, opened in append-only mode.
type Writer struct {
	f *os.File
	w *bufio.Writer
}

// Open creates (or appends to, if resuming is ever attempted) the journal
// file for sessionID under dir (conventionally <cwd>/bet_history/auto).
func Open(dir, sessionID string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.StoreError("journal: mkdir " + dir + ": " + err.Error())
	}
	path := filepath.Join(dir, sessionID+".jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errs.StoreError("journal: open " + path + ": " + err.Error())
	}
	return &Writer{f: f, w: bufio.NewWriter(f)}, nil
}

// Path returns the file path of the journal, e.g. for attaching it to a
// session summary or to the store/index repair pass.
func (w *Writer) Path() string { return w.f.Name() }

// Append writes one JSON line. Not itself durable until Sync is called;
// the engine only requires durability after session_stopped.
func (w *Writer) Append(rec engine.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return errs.StoreError("journal: encode record: " + err.Error())
	}
	if _, err := w.w.Write(raw); err != nil {
		return errs.StoreError("journal: write: " + err.Error())
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return errs.StoreError("journal: write newline: " + err.Error())
	}
	return nil
}

// Sync flushes the buffer and fsyncs the underlying file.
func (w *Writer) Sync() error {
	if err := w.w.Flush(); err != nil {
		return errs.StoreError("journal: flush: " + err.Error())
	}
	if err := w.f.Sync(); err != nil {
		return errs.StoreError("journal: fsync: " + err.Error())
	}
	return nil
}

// Close flushes and closes the file. Callers should Sync before Close if
// they need the fsync guarantee; Close alone only flushes Go's buffer.
func (w *Writer) Close() error {
	_ = w.w.Flush()
	return w.f.Close()
}

// RawRecord mirrors engine.Record but keeps Payload as json.RawMessage,
// since a reader doesn't know which payload type a line holds until it has
// looked at Type — used by the repair pass and by tests asserting journal
// durability.
type RawRecord struct {
	Type        engine.RecordType `json:"type"`
	MonotonicTs int64             `json:"monotonic_ts"`
	Payload     json.RawMessage   `json:"payload"`
}

// ReadAll reads every line of the journal at path, in order.
func ReadAll(path string) ([]RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.StoreError("journal: open for read " + path + ": " + err.Error())
	}
	defer f.Close()

	var out []RawRecord
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec RawRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, errs.StoreError("journal: decode line: " + err.Error())
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, errs.StoreError("journal: scan: " + err.Error())
	}
	return out, nil
}

// DecodeBetExecuted unmarshals a RawRecord of type bet_executed into its
// typed payload.
func DecodeBetExecuted(rec RawRecord) (engine.BetExecutedPayload, error) {
	var p engine.BetExecutedPayload
	if err := json.Unmarshal(rec.Payload, &p); err != nil {
		return p, errs.StoreError("journal: decode bet_executed: " + err.Error())
	}
	return p, nil
}

// DecodeSessionStopped unmarshals a RawRecord of type session_stopped.
func DecodeSessionStopped(rec RawRecord) (engine.SessionStoppedPayload, error) {
	var p engine.SessionStoppedPayload
	if err := json.Unmarshal(rec.Payload, &p); err != nil {
		return p, errs.StoreError("journal: decode session_stopped: " + err.Error())
	}
	return p, nil
}

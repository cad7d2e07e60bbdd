// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package projection - best-effort mirror of validated asset state
//
// consensus correctness never depends on a sink: every call is
// fire-and-forget and a failing sink only loses mirror updates
package projection

import (
	"github.com/bitmark-inc/assetd/assetrecord"
	"github.com/bitmark-inc/logger"
)

// Sink - consumer of validated records and history entries
type Sink interface {
	RecordChanged(fields assetrecord.Fields)
	HistoryAppended(fields assetrecord.Fields)
}

// Noop - sink that drops everything, for tests and minimal nodes
type Noop struct{}

// RecordChanged - ignored
func (Noop) RecordChanged(assetrecord.Fields) {}

// HistoryAppended - ignored
func (Noop) HistoryAppended(assetrecord.Fields) {}

// Log - sink that writes a diagnostic line per notification
type Log struct {
	L *logger.L
}

// NewLog - a diagnostics-only sink
func NewLog() *Log {
	return &Log{L: logger.New("projection")}
}

// RecordChanged - log the record projection
func (s *Log) RecordChanged(fields assetrecord.Fields) {
	s.L.Infof("record: asset=%s height=%d identity=%s expired=%t",
		fields.Id, fields.Height, fields.Identity, fields.Expired)
}

// HistoryAppended - log the history projection
func (s *Log) HistoryAppended(fields assetrecord.Fields) {
	s.L.Infof("history: tx=%s asset=%s op=%s", fields.TxId, fields.Id, fields.Operation)
}

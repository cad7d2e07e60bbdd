// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/assetd/chain"
	"github.com/bitmark-inc/assetd/store"
)

// cleaner - periodic scan erasing expired assets
type cleaner struct {
	store   *store.Handle
	clock   chain.Context
	minutes int
	log     *logger.L
}

// Run - the cleanup loop
func (c *cleaner) Run(args interface{}, shutdown <-chan struct{}) {
	c.log.Info("starting…")
	interval := time.Duration(c.minutes) * time.Minute

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(interval):
		}

		cleaned, err := c.store.Cleanup(c.clock, shutdown)
		if nil != err {
			c.log.Errorf("cleanup error: %s", err)
			continue loop
		}
		if cleaned > 0 {
			c.log.Infof("cleanup: %d assets erased", cleaned)
		}
	}
	c.log.Info("shutting down…")
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run and cleanly stop a set of goroutines
package background

// Process - interface for a single background goroutine
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// single process control
type processControl struct {
	shutdown chan struct{}
	finished chan struct{}
}

// T - handle for the started set
type T struct {
	s []processControl
}

// Start - start up a set of background processes
//
// all are passed the same arguments value
func Start(processes Processes, args interface{}) *T {
	register := &T{
		s: make([]processControl, len(processes)),
	}

	for i, p := range processes {
		control := processControl{
			shutdown: make(chan struct{}),
			finished: make(chan struct{}),
		}
		register.s[i] = control
		go func(p Process, control processControl) {
			defer close(control.finished)
			p.Run(args, control.shutdown)
		}(p, control)
	}
	return register
}

// Stop - shut down the set and wait for all processes to finish
func (t *T) Stop() {
	if nil == t {
		return
	}
	for _, control := range t.s {
		close(control.shutdown)
	}
	for _, control := range t.s {
		<-control.finished
	}
}

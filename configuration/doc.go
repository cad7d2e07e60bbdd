// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - Lua based daemon configuration
//
// the configuration file is a Lua script returning a table; most of
// base Lua is available so values can be computed, read from files
// or pulled from the environment via getenv
package configuration

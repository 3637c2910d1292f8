// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Txcodec is the command-line interface to the transaction codec.
//
// Commands:
//
//	decode    decode an entity and print its field tree
//	encode    build an entity from flags or a JSONC request file
//	address   derive and parse account addresses
//	verify    run conformance vectors
//	capture   pack entities into capture files and list them
//	version   print version information
//
// Every command accepts --config; without it the file named by
// TXCODEC_CONFIG is used, then the built-in defaults.
package main

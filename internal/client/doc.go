// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the diary command-line application.
//
// It wires the configuration, the device database, the server adapter and
// the key manager into client services, and exposes them as a cobra command
// tree. Every command is one short process: the diary key survives between
// commands only when the holder asked to remember it.
package client

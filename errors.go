// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/lz5

package lz5

import "errors"

// Package errors. Use errors.New for static messages, fmt.Errorf when values are needed.
var (
	ErrTruncated      = errors.New("compressed stream ends mid-instruction")
	ErrInvalidOffset  = errors.New("repeat source outside of decoded output")
	ErrOutputTooLarge = errors.New("decoded output exceeds limit")
	ErrNilReader      = errors.New("reader is nil")
)

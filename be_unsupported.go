//go:build !(amd64 || arm64 || 386 || arm || riscv64 || loong64 || mipsle || mips64le || ppc64le || wasm)

package main

// The oto backend hands float32 samples to a FormatFloat32LE context by
// reinterpreting their memory, which assumes little-endian byte order.
var _ = "Quark VDP requires a little-endian architecture" + 1

// Package terminal provides the render surfaces the rain is painted on.
//
// Features:
//   - Native backend emitting direct ANSI sequences (no terminfo)
//   - True color (24-bit) and 256-color palette support
//   - Per-frame command buffer committed as one synchronized update (DEC mode 2026)
//   - Raw stdin input parsing with escape sequence handling
//   - SIGWINCH resize detection
//   - Clean terminal restoration on exit/panic
//   - tcell-backed alternative implementing the same Terminal interface
//
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal

// @focus: #sys { term }
// Package terminal owns the controlling terminal for one raw-mode session.
//
// Features:
//   - Raw mode entry with the original attributes captured once and restored exactly
//   - Single active session per process
//   - Byte chunk decoding into keys and X10 mouse reports (xterm-256color)
//   - Emergency reset for panic paths
//
// No terminfo lookup is performed; sequences target xterm-compatible terminals.
package terminal

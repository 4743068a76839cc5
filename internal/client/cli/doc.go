// Package cli provides the interactive clipstream command-line client.
//
// It wires configuration, the server API client, the upload batch, and a
// local history store into an interactive REPL. Typical flow: log in, add
// video files to the batch, run the upload, retry what failed.
//
// Key features:
//   - Register / Login / Logout against the backend
//   - Add local video files to a bounded batch (validated on selection)
//   - Upload the batch sequentially with per-file progress
//   - Retry failed transfers, inspect past uploads
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli

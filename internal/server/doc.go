// SPDX-License-Identifier: EPL-2.0

// Package server exposes WAV conversion over HTTP.
//
//	GET  /health   {"status":"ok"}
//	GET  /formats  {"formats":["aif","aiff",...]}
//	POST /convert  body is the input file, response is audio/wav
//
// POST /convert takes the query parameters name (selects the decoder by
// extension, falls back to the Content-Type), format (pcm16 or float32)
// and mono (bool).
package server

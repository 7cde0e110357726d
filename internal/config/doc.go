// SPDX-License-Identifier: EPL-2.0

// Package config loads pcmwav settings from flags, PCMWAV_* environment
// variables and an optional pcmwav.{yaml,toml,json} file, in that order of
// precedence, on top of DefaultConfig.
package config

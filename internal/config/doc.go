// Package config provides configuration structures and utilities for scamguard.
// It defines the scan options set from CLI flags, the host settings that
// decide notification and blocking, and the .scamguard YAML file that seeds
// the domain lists and extends the detection rules.
package config

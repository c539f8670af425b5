// Package confloader loads configuration with koanf.
//
// Sources, highest priority first:
//
//  1. Overrides (command-line flags)
//  2. Environment variables (HOARD_SECTION_KEY)
//  3. YAML configuration file
//  4. Values already present in the target struct
//
// Watcher reports changes to a configuration file via fsnotify so callers
// can reload the settings that are safe to change at runtime.
package confloader

// Package config handles application configuration loading and management.
//
// Configuration is stored in ~/.cmdsys/config.json and controls console colors,
// the minimum log level, and how many commands may run at once.
package config

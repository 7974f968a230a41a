// Package app wires the command registry, the executor and the console logger into
// one application context.
//
// An App is constructed once at startup and passed explicitly to whatever needs to
// register or run commands. It owns the only registry in the process.
package app

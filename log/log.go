package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// DiagnosticLog receives failures of the logging layer itself, such as a console
// write that could not be completed. It discards everything until Initialize is called.
// It is not synchronized: reassign it only before any Logger is in use.
var DiagnosticLog = log.New(io.Discard, "", 0)

var logFileName = filepath.Join(os.TempDir(), "cmdsys.log")

var globalLogFile *os.File

// Initialize should be called once at the beginning of the program, before any
// Logger writes, to enable the diagnostic file. defer Close() after calling this
// function, and only once every Logger has stopped writing.
func Initialize() {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		// Fallback to stderr
		DiagnosticLog = log.New(os.Stderr, "DIAG: ", log.Ldate|log.Ltime|log.Lshortfile)
		fmt.Fprintf(os.Stderr, "Warning: using stderr for diagnostics: %v\n", err)
		return
	}

	DiagnosticLog = log.New(f, "DIAG: ", log.Ldate|log.Ltime|log.Lshortfile)
	globalLogFile = f
}

// Close flushes the diagnostic file, if one was opened.
func Close() {
	if globalLogFile == nil {
		return
	}
	_ = globalLogFile.Close()
	globalLogFile = nil
	DiagnosticLog = log.New(io.Discard, "", 0)
}

// FileName returns the path of the diagnostic file.
func FileName() string {
	return logFileName
}

// Package logger provides the process-wide leveled loggers.
// Handlers receive their own prefixed *log.Logger instances created here so
// log lines identify the emitting component.
package logger

import (
	"log"
	"os"

	"github.com/fatih/color"
)

var (
	// Info - logger for usual messages
	Info *log.Logger
	// Warn - logger for recoverable oddities
	Warn *log.Logger
	// Error - logger for server error messages
	Error *log.Logger
)

func init() {
	Info = log.New(os.Stdout,
		color.GreenString("[INFO] "),
		log.Ldate|log.Ltime)
	Warn = log.New(os.Stdout,
		color.YellowString("[WARN] "),
		log.Ldate|log.Ltime)
	Error = log.New(os.Stderr,
		color.RedString("[ERROR] "),
		log.Ldate|log.Ltime)
}

// NewInfo - creates a component-scoped info logger, e.g. NewInfo("restapi.post")
func NewInfo(component string) *log.Logger {
	return log.New(os.Stdout, color.GreenString("[INFO] ")+"["+component+"] ", log.Ldate|log.Ltime)
}

// NewError - creates a component-scoped error logger
func NewError(component string) *log.Logger {
	return log.New(os.Stderr, color.RedString("[ERROR] ")+"["+component+"] ", log.Ldate|log.Ltime)
}

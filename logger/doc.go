// Package logger provides structured logging for the client wrapper
// using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields. There is no global
// logger: construct one and pass it explicitly.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.New(cfg).WithComponent("processor")
//	log.Debug("run started", logger.Fields(logger.FieldRunID, id))
package logger

package main

import (
	"log"
	"os"
)

// simlog is a minimal leveled wrapper around stdlib log, styled on
// config.c's LOGW/LOG/LOGD macros: a tag prefix and a level marker,
// everything to stderr.
var simlog = log.New(os.Stderr, "", log.LstdFlags)

func logInfo(tag, format string, args ...interface{}) {
	simlog.Printf("["+tag+"] "+format, args...)
}

func logWarn(tag, format string, args ...interface{}) {
	simlog.Printf("["+tag+"] WARN: "+format, args...)
}

func logError(tag, format string, args ...interface{}) {
	simlog.Printf("["+tag+"] ERROR: "+format, args...)
}

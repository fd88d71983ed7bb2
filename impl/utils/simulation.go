package utils

import (
	"log"
	"os"
	"path/filepath"
	"time"
)

func OpenLogFile(logFile string) *os.File {
	dir, _ := filepath.Split(logFile)
	if dir != "" {
		e := os.MkdirAll(dir, os.ModePerm)
		if e != nil {
			log.Printf("Could not create parent directories for %s, error: %v", logFile, e)
		}
	}

	f, e := os.Create(logFile)
	if e != nil {
		log.Printf("Could not open file %s to write logs into, error: %v", logFile, e)
		return os.Stdout
	}

	return f
}

func ExitWithError(logger *log.Logger, message string) {
	logger.Println(message)
	os.Exit(1)
}

func GetNow() int64 {
	return time.Now().UnixNano()
}

package util

import (
	"log"
	"time"
)

// Trace logs how long the surrounding scope took:
//
//	defer util.Trace("segment catalog")()
func Trace(name string) func() {
	start := time.Now()
	return func() {
		log.Printf("%s took %v", name, time.Since(start))
	}
}

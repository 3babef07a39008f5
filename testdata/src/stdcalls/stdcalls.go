// Package stdcalls covers calls into the standard library.
package stdcalls

import (
	"fmt"
	"log"
	"strconv"
)

// goodPrint is not reported: panics inside fmt are not sinks.
func goodPrint() {
	fmt.Println("hello")
}

func goodItoa() string {
	return strconv.Itoa(42)
}

func badFatal() { // want badFatal:`reaches\(log.Fatal\)` `possible panic spot found in "stdcalls.badFatal"`
	fmt.Println("stopping")
	log.Fatal("stop")
}

package main

import (
	"os"
	"strconv"

	"example.com/graphmod/db"
)

var dsn string

func main() {
	conn := db.MustOpen(dsn)
	defer db.Close(conn)
	serve(len(os.Args))
	stop()
}

func serve(n int) {
	if n > 3 {
		os.Exit(2)
	}
}

func stop() {
	os.Exit(0)
}

//panicreach:silence
func debugOnly() {
	panic("debug")
}

// helper calls into strconv, whose internal panics are not sinks.
func helper() string {
	return strconv.Itoa(42)
}

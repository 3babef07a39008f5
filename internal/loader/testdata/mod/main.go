package main

import (
	"log"

	"example.com/mod/util"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	util.Must(nil)
	return nil
}

//panicreach:silence
func quiet() {
	panic("expected")
}

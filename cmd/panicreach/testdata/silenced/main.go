package main

import "log"

func main() {
	setup()
}

//panicreach:silence
func setup() {
	log.Fatal("setup failed")
}

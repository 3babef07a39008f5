// Package dep is imported by facts.
package dep

import (
	"log"
	"os"
)

func Must(err error) { // want Must:`reaches\(panic\)` `possible panic spot found in "facts/dep.Must"`
	if err != nil {
		panic(err)
	}
}

type Config struct{}

func (Config) Load() { // want Load:`reaches\(log.Fatal\)` `possible panic spot found in "facts/dep.Config.Load"`
	log.Fatal("no config")
}

//panicreach:silence
func Check(ok bool) { // want Check:`reaches\(os.Exit, panic\)`
	if !ok {
		Must(nil)
		exit()
	}
}

func exit() { // want exit:`reaches\(os.Exit\)` `possible panic spot found in "facts/dep.exit"`
	os.Exit(1)
}

func Safe() {}

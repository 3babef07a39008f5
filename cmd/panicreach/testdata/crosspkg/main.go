package main

import (
	"errors"

	"example.com/crosspkg/must"
)

func main() {
	load()
}

func load() {
	must.Do(errors.New("boom"))
}

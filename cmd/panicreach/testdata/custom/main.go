package main

import "errors"

func main() {
	_ = run()
}

func run() error {
	abort("stopping")
	return errors.New("unreachable")
}

func abort(msg string) {
	_ = msg
}

// Package direct covers functions calling a sink themselves.
package direct

import (
	"fmt"
	"log"
	"os"
)

func badPanic() { // want `possible panic spot found in "direct.badPanic"`
	panic("boom")
}

func badFatal(err error) { // want `possible panic spot found in "direct.badFatal"`
	log.Fatal(err)
}

func badFatalf(name string) { // want `possible panic spot found in "direct.badFatalf"`
	log.Fatalf("unknown %s", name)
}

func badPanicln() { // want `possible panic spot found in "direct.badPanicln"`
	log.Panicln("boom")
}

func badExit(code int) { // want `possible panic spot found in "direct.badExit"`
	fmt.Println("exiting")
	os.Exit(code)
}

// badTwice has two witnesses.
func badTwice(ok bool) { // want `possible panic spot found in "direct.badTwice"`
	if !ok {
		panic("first")
	}
	os.Exit(1)
}

type Server struct {
	logger *log.Logger
}

func (s *Server) Start() { // want `possible panic spot found in "direct.Server.Start"`
	s.logger.Fatalf("listen: %v", os.ErrClosed)
}

func (s Server) Name() string {
	return "server"
}

func goodNoSink() int {
	return 1
}

func goodPrint() {
	fmt.Println("no failure here")
}

func goodRecoverOnly() {
	_ = recover()
}

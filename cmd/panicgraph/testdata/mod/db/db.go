// Package db opens connections.
package db

import "log"

type Conn struct {
	DSN string
}

func MustOpen(dsn string) *Conn {
	if dsn == "" {
		log.Fatal("empty DSN")
	}
	return &Conn{DSN: dsn}
}

func Close(c *Conn) {
	if c == nil {
		panic("nil conn") //panicreach:ignore
	}
}

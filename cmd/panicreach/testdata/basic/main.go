package main

import (
	"fmt"
	"os"
	"strconv"
)

func main() {
	fmt.Println(parse(os.Args[1:]))
}

func parse(args []string) int {
	if len(args) == 0 {
		panic("no arguments")
	}
	return mustAtoi(args[0])
}

func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return n
}

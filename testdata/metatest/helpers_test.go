package metatest

import (
	"os"
	"strconv"
	"strings"
)

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\n"), nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

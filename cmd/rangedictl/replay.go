package main

import (
	"bufio"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidScriptLine is returned by parseScript for a line that isn't
// "mark <begin> <end> <value>" or a blank/comment line.
var ErrInvalidScriptLine = errors.New("rangedictl: invalid script line")

var markLinePattern = regexp.MustCompile(`^mark\s+(-?[0-9]+)\s+(-?[0-9]+)\s+(\S+)$`)

type markCommand struct {
	begin, end int64
	value      string
}

// parseScript reads one "mark <begin> <end> <value>" command per line.
// Blank lines and lines starting with "#" are skipped.
func parseScript(s *bufio.Scanner) ([]markCommand, error) {
	var cmds []markCommand
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := markLinePattern.FindStringSubmatch(line)
		if parts == nil {
			return nil, ErrInvalidScriptLine
		}

		begin, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return nil, ErrInvalidScriptLine
		}
		end, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return nil, ErrInvalidScriptLine
		}

		cmds = append(cmds, markCommand{begin: begin, end: end, value: parts[3]})
	}
	return cmds, s.Err()
}

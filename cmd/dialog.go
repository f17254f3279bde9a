package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Dialog is the confirmation capability consumed by destructive commands.
type Dialog interface {
	Confirm(title, text string) bool
}

type stdinDialog struct{}

func (stdinDialog) Confirm(title, text string) bool {
	fmt.Printf("%s\n%s [y/N]: ", title, text)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "y")
}

var defaultDialog Dialog = stdinDialog{}

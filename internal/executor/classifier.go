package executor

import (
	"regexp"
	"strings"
)

// Commands handed to --execute run exactly as the model wrote them, so
// the only guard is a warning when the reply matches a pattern known to
// destroy data or escalate privileges. Execution itself never blocks.

var destructivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`rm\s+(-[rf]*\s+)?/`),       // rm -rf / or variations
	regexp.MustCompile(`rm\s+-rf\s+[~$]`),          // rm -rf with home or variable
	regexp.MustCompile(`\bsudo\b`),                 // Privilege escalation
	regexp.MustCompile(`dd\s+if=`),                 // Raw disk writes
	regexp.MustCompile(`mkfs`),                     // Format filesystem
	regexp.MustCompile(`:\(\)\{`),                  // Fork bomb
	regexp.MustCompile(`curl.*\|\s*(sh|bash|zsh)`), // Pipe download to shell
	regexp.MustCompile(`wget.*\|\s*(sh|bash|zsh)`), // Pipe download to shell
	regexp.MustCompile(`>\s*/dev/sd`),              // Write to disk device
	regexp.MustCompile(`>\s*/etc/`),                // Write to /etc
	regexp.MustCompile(`chmod.*777`),               // Overly permissive chmod
	regexp.MustCompile(`git\s+push\s+.*--force`),   // History rewrite on a remote
}

// LooksDestructive reports whether a shell command matches a pattern
// known to destroy data or escalate privileges
func LooksDestructive(cmd string) bool {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return false
	}

	for _, pattern := range destructivePatterns {
		if pattern.MatchString(cmd) {
			return true
		}
	}

	return false
}

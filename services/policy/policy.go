// Package policy decides whether a model-requested action is safe to run.
// Containment is a static command-name table plus relative-path checks; this
// is not a sandbox and makes no attempt to contain a determined adversary.
package policy

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

type Outcome int

const (
	Allow Outcome = iota
	Deny
)

type rule struct {
	outcome Outcome
	reason  string
}

// commandTable is the full command policy. Any leading token not present here
// is rejected (default-deny).
var commandTable = map[string]rule{
	// benign file and text utilities
	"mkdir": {outcome: Allow},
	"touch": {outcome: Allow},
	"echo":  {outcome: Allow},
	"ls":    {outcome: Allow},
	"cat":   {outcome: Allow},
	"cp":    {outcome: Allow},
	"mv":    {outcome: Allow},
	"rm":    {outcome: Allow},
	"find":  {outcome: Allow},
	"grep":  {outcome: Allow},
	"head":  {outcome: Allow},
	"tail":  {outcome: Allow},
	"wc":    {outcome: Allow},
	"sort":  {outcome: Allow},
	"pwd":   {outcome: Allow},

	// privilege escalation
	"sudo": {outcome: Deny, reason: "privilege escalation"},
	"su":   {outcome: Deny, reason: "privilege escalation"},
	"doas": {outcome: Deny, reason: "privilege escalation"},

	// network access
	"curl":   {outcome: Deny, reason: "network access"},
	"wget":   {outcome: Deny, reason: "network access"},
	"nc":     {outcome: Deny, reason: "network access"},
	"netcat": {outcome: Deny, reason: "network access"},
	"telnet": {outcome: Deny, reason: "network access"},
	"ssh":    {outcome: Deny, reason: "remote access"},
	"scp":    {outcome: Deny, reason: "remote access"},
	"ftp":    {outcome: Deny, reason: "network access"},

	// process and service control
	"systemctl": {outcome: Deny, reason: "service control"},
	"service":   {outcome: Deny, reason: "service control"},
	"kill":      {outcome: Deny, reason: "process control"},
	"killall":   {outcome: Deny, reason: "process control"},
	"pkill":     {outcome: Deny, reason: "process control"},
	"reboot":    {outcome: Deny, reason: "system control"},
	"shutdown":  {outcome: Deny, reason: "system control"},

	// destructive disk operations
	"mkfs":   {outcome: Deny, reason: "disk formatting"},
	"fdisk":  {outcome: Deny, reason: "disk partitioning"},
	"dd":     {outcome: Deny, reason: "raw disk access"},
	"format": {outcome: Deny, reason: "disk formatting"},

	// scheduling
	"crontab": {outcome: Deny, reason: "task scheduling"},
	"at":      {outcome: Deny, reason: "task scheduling"},

	// permission changes
	"chmod": {outcome: Deny, reason: "permission changes"},
	"chown": {outcome: Deny, reason: "ownership changes"},
}

// ValidateCommand checks the leading token of a raw command string against
// the policy table. Unknown commands are rejected.
func ValidateCommand(command string) error {
	trimmed := strings.TrimSpace(command)
	if trimmed == "" {
		return fmt.Errorf("command is empty")
	}

	token := strings.Fields(trimmed)[0]

	if r, ok := commandTable[token]; ok {
		if r.outcome == Deny {
			return fmt.Errorf("command %q is blocked: %s", token, r.reason)
		}
		return nil
	}

	// The plain text-output command is always safe regardless of arguments.
	if strings.HasPrefix(trimmed, "echo ") {
		return nil
	}

	return fmt.Errorf("command %q is not in the allowed command list", token)
}

// ValidatePath rejects absolute paths and any path that still contains a
// parent-directory segment after normalization. This is the sole mechanism
// keeping tool calls inside a project directory, so it must run before every
// filesystem interaction.
func ValidatePath(p string) error {
	if p == "" {
		return fmt.Errorf("path is empty")
	}

	slashed := filepath.ToSlash(p)
	if strings.HasPrefix(slashed, "/") || strings.HasPrefix(p, `\`) || filepath.IsAbs(p) {
		return fmt.Errorf("absolute paths are not allowed: %s", p)
	}

	cleaned := path.Clean(slashed)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("path escapes the project directory: %s", p)
	}

	return nil
}

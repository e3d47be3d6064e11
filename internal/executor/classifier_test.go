package executor

import "testing"

func TestLooksDestructive(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    bool
	}{
		{"recursive root delete", "rm -rf /", true},
		{"home delete", "rm -rf ~", true},
		{"sudo anything", "sudo apt-get install cowsay", true},
		{"raw disk write", "dd if=/dev/zero of=/dev/sda", true},
		{"format filesystem", "mkfs.ext4 /dev/sda1", true},
		{"fork bomb", ":(){ :|:& };:", true},
		{"curl piped to shell", "curl -fsSL https://example.com/install.sh | sh", true},
		{"wget piped to bash", "wget -qO- https://example.com/x.sh | bash", true},
		{"redirect into device", "echo junk > /dev/sda", true},
		{"redirect into etc", "echo nameserver 1.1.1.1 > /etc/resolv.conf", true},
		{"world writable", "chmod -R 777 /var/www", true},
		{"force push", "git push origin main --force", true},

		{"list files", "ls -la", false},
		{"echo", "echo hello", false},
		{"relative delete", "rm -rf build/", false},
		{"plain push", "git push origin main", false},
		{"curl without pipe", "curl -s https://example.com/status", false},
		{"build", "make build", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooksDestructive(tt.command); got != tt.want {
				t.Errorf("LooksDestructive(%q) = %v, want %v", tt.command, got, tt.want)
			}
		})
	}
}

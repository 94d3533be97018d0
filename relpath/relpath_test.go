package relpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     string
	}{
		{"sibling folder", "/root/folder/A.md", "/root/other/B.md", "../other/B.md"},
		{"same folder", "/root/folder/A.md", "/root/folder/B.md", "B.md"},
		{"identical", "/root/folder/A.md", "/root/folder/A.md", "A.md"},
		{"child folder", "/root/A.md", "/root/sub/deep/B.md", "sub/deep/B.md"},
		{"parent folder", "/root/a/b/A.md", "/root/B.md", "../../B.md"},
		{"unclean input", "/root/./a//A.md", "/root/a/../b/B.md", "../b/B.md"},
		{"relative input", "notes/A.md", "assets/img.png", "../assets/img.png"},
		{"root files", "/A.md", "/B.md", "B.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(tt.from, tt.to))
		})
	}
}

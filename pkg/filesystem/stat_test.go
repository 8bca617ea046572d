package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypePredicates(t *testing.T) {
	predicates := map[string]func(Stat) bool{
		"regular": IsRegular,
		"dir":     IsDir,
		"symlink": IsSymlink,
		"block":   IsBlockDevice,
		"char":    IsCharDevice,
		"device":  IsDevice,
		"fifo":    IsFIFO,
		"door":    IsDoor,
		"socket":  IsSocket,
	}

	tests := []struct {
		name string
		mode uint32
		want []string
	}{
		{"regular file", 0x81A4, []string{"regular"}},
		{"directory", 0x41ED, []string{"dir"}},
		{"symlink", 0xA1FF, []string{"symlink"}},
		{"block device", 0x61B0, []string{"block", "device"}},
		{"char device", 0x21B6, []string{"char", "device"}},
		{"fifo", 0x11A4, []string{"fifo"}},
		{"door", 0xD16D, []string{"door"}},
		{"socket", 0xC1ED, []string{"socket"}},
		{"unknown", 0x01A4, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, name := range []string{
				"regular", "dir", "symlink", "block", "char",
				"device", "fifo", "door", "socket",
			} {
				if predicates[name](Stat{Mode: tt.mode}) {
					got = append(got, name)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLstat_Missing(t *testing.T) {
	_, err := Lstat(t.TempDir() + "/missing")
	assert.Error(t, err)
}

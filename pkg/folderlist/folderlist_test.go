package folderlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "folders.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
		wantErr error
	}{
		{
			name:    "skips_comments_and_blanks",
			content: "#comment\n\nD:\\Music\\Jazz\nD:\\Music\\Rock\n",
			want:    []string{`D:\Music\Jazz`, `D:\Music\Rock`},
		},
		{
			name:    "preserves_embedded_whitespace",
			content: "C:\\Users\\Public\\My  Documents\\tax stuff\n",
			want:    []string{`C:\Users\Public\My  Documents\tax stuff`},
		},
		{
			name:    "preserves_unicode",
			content: "D:\\Musik\\Klavierstücke\n",
			want:    []string{`D:\Musik\Klavierstücke`},
		},
		{
			name:    "handles_crlf_line_endings",
			content: "D:\\Data\r\n# skip\r\nE:\\More Data\r\n",
			want:    []string{`D:\Data`, `E:\More Data`},
		},
		{
			name:    "whitespace_only_line_is_blank",
			content: "   \t \nD:\\Data\n",
			want:    []string{`D:\Data`},
		},
		{
			name:    "comment_after_leading_spaces",
			content: "   # indented comment\nD:\\Data\n",
			want:    []string{`D:\Data`},
		},
		{
			name:    "only_comments_yields_error",
			content: "# one\n# two\n",
			wantErr: ErrNoEntries,
		},
		{
			name:    "empty_file_yields_error",
			content: "",
			wantErr: ErrNoEntries,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := Read(writeList(t, tt.content))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, entries, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want, entries[i].SourcePath, "entry %d should be preserved verbatim", i)
			}
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestMapDestination(t *testing.T) {
	tests := []struct {
		name   string
		source string
		root   string
		want   string
	}{
		{
			name:   "volume_rooted_source",
			source: `D:\Music\Jazz`,
			root:   `Z:\mirror`,
			want:   `Z:\mirror\Music\Jazz`,
		},
		{
			name:   "drive_letter_is_stripped",
			source: `E:\Music\Jazz`,
			root:   `Z:\mirror`,
			want:   `Z:\mirror\Music\Jazz`,
		},
		{
			name:   "bare_drive_root_destination",
			source: `D:\Photos`,
			root:   `Y:`,
			want:   `Y:\Photos`,
		},
		{
			name:   "leading_backslash_stripped",
			source: `\shared\docs`,
			root:   `Z:\mirror`,
			want:   `Z:\mirror\shared\docs`,
		},
		{
			name:   "relative_source_joined_verbatim",
			source: `docs\archive`,
			root:   `Z:\mirror`,
			want:   `Z:\mirror\docs\archive`,
		},
		{
			name:   "whitespace_survives_mapping",
			source: `D:\My  Documents\tax stuff`,
			root:   `Z:\mirror`,
			want:   `Z:\mirror\My  Documents\tax stuff`,
		},
		{
			name:   "trailing_separator_on_root",
			source: `D:\Music`,
			root:   `Z:\mirror\`,
			want:   `Z:\mirror\Music`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapDestination(tt.source, tt.root))
		})
	}
}

package imagestore_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sportstore/pkg/imagestore"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"boots.png", "boots.png"},
		{"my boots.png", "my_boots.png"},
		{"../../etc/passwd", "passwd"},
		{`..\..\boots.png`, "boots.png"},
		{"weird?name!.png", "weird_name_.png"},
		{"átlétika.png", "tl_tika.png"},
		{"UPPER_case-1.JPG", "UPPER_case-1.JPG"},
		{"...", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, imagestore.Sanitize(tc.in), "input %q", tc.in)
	}
}

func TestStoreSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := imagestore.New(filepath.Join(dir, "img"))
	assert.NoError(t, err)

	err = store.Save("boots.png", strings.NewReader("png-bytes"))
	assert.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "img", "boots.png"))
	assert.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	// Saving the same name overwrites
	err = store.Save("boots.png", strings.NewReader("new-bytes"))
	assert.NoError(t, err)
	data, _ = os.ReadFile(filepath.Join(dir, "img", "boots.png"))
	assert.Equal(t, "new-bytes", string(data))

	err = store.Remove("boots.png")
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "img", "boots.png"))
	assert.True(t, os.IsNotExist(err))

	// Removing a file that is already gone is not an error
	err = store.Remove("boots.png")
	assert.NoError(t, err)
}

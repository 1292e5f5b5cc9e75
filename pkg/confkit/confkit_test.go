package confkit_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"agropazar-api/pkg/confkit"
)

func TestResolvePath(t *testing.T) {
	t.Setenv("CONF_DIR", "expanded")

	tests := []struct {
		name     string
		base     string
		file     string
		expected string
	}{
		{"absolute path wins", "/base/dir", "/etc/feed.yaml", "/etc/feed.yaml"},
		{"relative joins base", "/base/dir", "feed.yaml", "/base/dir/feed.yaml"},
		{"env var expanded", "/base/dir", "${CONF_DIR}/feed.yaml", "/base/dir/expanded/feed.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, confkit.ResolvePath(tt.base, tt.file))
		})
	}
}

func TestSection_Hydrate(t *testing.T) {
	t.Run("empty file is a no-op", func(t *testing.T) {
		section := &confkit.Section[string]{}
		err := section.Hydrate("/base", func(string) (*string, error) {
			t.Fatal("loader must not run without a file")
			return nil, nil
		})
		require.NoError(t, err)
		require.Nil(t, section.Value)
	})

	t.Run("hydration resolves and records the path", func(t *testing.T) {
		section := &confkit.Section[string]{File: "feed.yaml"}
		loaded := "loaded"
		err := section.Hydrate("/base", func(path string) (*string, error) {
			require.Equal(t, filepath.Join("/base", "feed.yaml"), path)
			return &loaded, nil
		})
		require.NoError(t, err)
		require.NotNil(t, section.Value)
		require.Equal(t, "loaded", *section.Value)
		require.Equal(t, filepath.Join("/base", "feed.yaml"), section.File)
	})

	t.Run("loader error leaves the section untouched", func(t *testing.T) {
		section := &confkit.Section[string]{File: "feed.yaml"}
		boom := errors.New("boom")
		err := section.Hydrate("/base", func(string) (*string, error) {
			return nil, boom
		})
		require.ErrorIs(t, err, boom)
		require.Nil(t, section.Value)
		require.Equal(t, "feed.yaml", section.File)
	})
}

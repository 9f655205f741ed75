package kefir_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xalexb/kefir"
	"github.com/0xalexb/kefir/config"
	tomlcodec "github.com/0xalexb/kefir/config/codec/toml"
	yamlcodec "github.com/0xalexb/kefir/config/codec/yaml"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EmptyNamespace(t *testing.T) {
	t.Parallel()

	cfg, err := kefir.New("")

	require.ErrorIs(t, err, kefir.ErrMissingNamespace)
	assert.Nil(t, cfg)
	assert.EqualError(t, err, "you must supply a namespace for your configuration files")
}

func TestNew_ReadsConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("user: bob\n"), 0o600)
	require.NoError(t, err)

	cfg, err := kefir.New("test", kefir.WithDir(dir))
	require.NoError(t, err)

	value, found, err := cfg.Get(config.Name("user"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "bob", value)
}

func TestNew_WritesConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := kefir.New("test", kefir.WithDir(dir))
	require.NoError(t, err)

	require.NoError(t, cfg.Persist())

	_, err = os.Stat(filepath.Join(dir, "config.yml"))
	require.NoError(t, err)
}

func TestNew_NoIO(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()

	cfg, err := kefir.New("test", kefir.WithDir("/custom/path"), kefir.WithFs(fsys))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/custom/path", "config.yml"), cfg.Path())

	exists, err := afero.DirExists(fsys, "/custom/path")
	require.NoError(t, err)
	assert.False(t, exists, "New should not touch the filesystem")
}

func TestNew_UsesResolver(t *testing.T) {
	t.Parallel()

	var requested string

	cfg, err := kefir.New("my-app",
		kefir.WithFs(afero.NewMemMapFs()),
		kefir.WithResolver(func(namespace string) (string, error) {
			requested = namespace

			return "/resolved/" + namespace, nil
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, "my-app", requested)
	assert.Equal(t, filepath.Join("/resolved/my-app", "config.yml"), cfg.Path())
}

func TestNew_ResolverError(t *testing.T) {
	t.Parallel()

	resolveErr := errors.New("no home")

	cfg, err := kefir.New("my-app", kefir.WithResolver(func(string) (string, error) {
		return "", resolveErr
	}))

	require.ErrorIs(t, err, resolveErr)
	assert.Nil(t, cfg)
}

func TestNew_DirOverridesResolver(t *testing.T) {
	t.Parallel()

	cfg, err := kefir.New("my-app",
		kefir.WithDir("/custom/path"),
		kefir.WithResolver(func(string) (string, error) {
			t.Error("resolver should not be called when a directory is given")

			return "", nil
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/custom/path", "config.yml"), cfg.Path())
}

func TestNew_XDGConfigHome(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	cfg, err := kefir.New("test")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(xdg, "test", "config.yml"), cfg.Path())
}

func TestNew_ConfigName(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		configName string
		expected   string
	}{
		{
			name:       "custom name",
			configName: "custom_config_name.yml",
			expected:   filepath.Join("/custom/path", "custom_config_name.yml"),
		},
		{
			name:       "nested name",
			configName: filepath.Join("profiles", "work.yml"),
			expected:   filepath.Join("/custom/path", "profiles", "work.yml"),
		},
		{
			name:       "absolute name",
			configName: "/etc/app/config.yml",
			expected:   "/etc/app/config.yml",
		},
		{
			name:       "empty name falls back to default",
			configName: "",
			expected:   filepath.Join("/custom/path", "config.yml"),
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := kefir.New("test",
				kefir.WithDir("/custom/path"),
				kefir.WithConfigName(testCase.configName),
			)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, cfg.Path())
		})
	}
}

func TestNew_RelativeDirIsAbsolute(t *testing.T) {
	t.Parallel()

	cfg, err := kefir.New("test", kefir.WithDir("relative"), kefir.WithFs(afero.NewMemMapFs()))
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(cfg.Path()))
	assert.Equal(t, "config.yml", filepath.Base(cfg.Path()))
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()

	err := afero.WriteFile(fsys, "/app/config.yml", []byte("a: 1\nb: 2\n"), 0o600)
	require.NoError(t, err)

	cfg, err := kefir.New("app",
		kefir.WithDir("/app"),
		kefir.WithFs(fsys),
		kefir.WithDefaults(map[string]any{"a": 9}),
	)
	require.NoError(t, err)

	tree, err := cfg.Map()
	require.NoError(t, err)
	assert.Len(t, tree, 2)
	assert.EqualValues(t, 9, tree["a"])
	assert.EqualValues(t, 2, tree["b"])
}

func TestNew_TOMLByExtension(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()

	err := afero.WriteFile(fsys, "/app/config.toml", []byte("[server]\nhost = \"localhost\"\n"), 0o600)
	require.NoError(t, err)

	cfg, err := kefir.New("app", kefir.WithDir("/app"), kefir.WithConfigName("config.toml"), kefir.WithFs(fsys))
	require.NoError(t, err)

	value, found, err := cfg.Get(config.Name("server"), config.Name("host"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "localhost", value)
}

func TestNew_WithCodecOverridesExtension(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()

	err := afero.WriteFile(fsys, "/app/settings.conf", []byte("user: bob\n"), 0o600)
	require.NoError(t, err)

	cfg, err := kefir.New("app",
		kefir.WithDir("/app"),
		kefir.WithConfigName("settings.conf"),
		kefir.WithFs(fsys),
		kefir.WithCodec(yamlcodec.NewCodec()),
	)
	require.NoError(t, err)

	value, _, err := cfg.Get(config.Name("user"))
	require.NoError(t, err)
	assert.Equal(t, "bob", value)
}

func TestNew_MalformedFile(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()

	err := afero.WriteFile(fsys, "/app/config.yml", []byte("invalid: yaml: content: [\n"), 0o600)
	require.NoError(t, err)

	cfg, err := kefir.New("app", kefir.WithDir("/app"), kefir.WithFs(fsys))
	require.NoError(t, err)

	_, _, err = cfg.Get(config.Name("user"))

	var parseErr *config.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "/app/config.yml", parseErr.Path)
}

func TestNew_PersistRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := kefir.New("app", kefir.WithDir(dir))
	require.NoError(t, err)

	_, err = cfg.Merge(map[string]any{
		"secret": "dont tell",
		"users":  []any{map[string]any{"name": "bob"}, map[string]any{"name": "jane"}},
	})
	require.NoError(t, err)

	_, err = cfg.Set(config.Path{config.Name("users"), config.Index(1), config.Name("admin")}, true)
	require.NoError(t, err)

	require.NoError(t, cfg.Persist())

	reloaded, err := kefir.New("app", kefir.WithDir(dir))
	require.NoError(t, err)

	expected, err := cfg.Map()
	require.NoError(t, err)

	actual, err := reloaded.Map()
	require.NoError(t, err)

	assert.Equal(t, expected, actual)
}

func TestNew_PersistRoundTrip_Scalars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		configName string
	}{
		{name: "yaml", configName: "config.yml"},
		{name: "toml", configName: "config.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fsys := afero.NewMemMapFs()
			opts := []kefir.Option{kefir.WithDir("/app"), kefir.WithConfigName(tt.configName), kefir.WithFs(fsys)}

			cfg, err := kefir.New("app", opts...)
			require.NoError(t, err)

			_, err = cfg.Set(config.Names("window", "width"), 1024)
			require.NoError(t, err)

			_, err = cfg.Merge(map[string]any{
				"offset":  -3,
				"ratio":   0.75,
				"retries": uint8(5),
				"enabled": true,
				"ports":   []int{80, 443},
			})
			require.NoError(t, err)

			require.NoError(t, cfg.Persist())

			reloaded, err := kefir.New("app", opts...)
			require.NoError(t, err)

			expected, err := cfg.Map()
			require.NoError(t, err)

			actual, err := reloaded.Map()
			require.NoError(t, err)

			assert.Equal(t, expected, actual)

			width, found, err := reloaded.Get(config.Name("window"), config.Name("width"))
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, int64(1024), width)
		})
	}
}

func TestNew_TOMLPersistNil(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "top-level nil",
			setup: func(t *testing.T, cfg *config.Config) {
				t.Helper()

				_, err := cfg.Set(config.Names("token"), nil)
				require.NoError(t, err)
			},
		},
		{
			name: "sequence padded past the end",
			setup: func(t *testing.T, cfg *config.Config) {
				t.Helper()

				_, err := cfg.Merge(map[string]any{"keep": "a", "list": []any{}})
				require.NoError(t, err)

				_, err = cfg.Set(config.Path{config.Name("list"), config.Index(1)}, "x")
				require.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fsys := afero.NewMemMapFs()

			cfg, err := kefir.New("app", kefir.WithDir("/app"), kefir.WithConfigName("config.toml"), kefir.WithFs(fsys))
			require.NoError(t, err)

			tt.setup(t, cfg)

			err = cfg.Persist()
			require.ErrorIs(t, err, tomlcodec.ErrNilValue)

			exists, err := afero.Exists(fsys, "/app/config.toml")
			require.NoError(t, err)
			assert.False(t, exists, "nothing should be written")
		})
	}
}

func TestNew_YAMLAliasesShareNode(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()

	err := afero.WriteFile(fsys, "/app/config.yml", []byte("base: &base\n  host: a\nprod: *base\n"), 0o600)
	require.NoError(t, err)

	cfg, err := kefir.New("app", kefir.WithDir("/app"), kefir.WithFs(fsys))
	require.NoError(t, err)

	_, err = cfg.Set(config.Names("prod", "host"), "b")
	require.NoError(t, err)

	value, found, err := cfg.Get(config.Name("base"), config.Name("host"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "b", value)
}

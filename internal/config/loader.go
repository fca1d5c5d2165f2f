package config

import (
	"io/fs"
	"path"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrRootConfigNotFound = errors.New("root configuration file not found")

// Loader allows to load configuration files from a file system.
type Loader struct {
	// configRootPath is the directory holding the root configuration file,
	// typically the current working directory.
	configRootPath fs.FS

	// configName is a name of the configuration file.
	configName string

	// configType is a type of the configuration file.
	// Together with configName it forms a configFile.
	configType string

	logger *zap.Logger
}

type LoaderOption func(*Loader)

func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

func NewLoader(configName, configType string, configRootPath fs.FS, opts ...LoaderOption) *Loader {
	if configName == "" {
		panic("config name is not set")
	}

	l := &Loader{
		configRootPath: configRootPath,
		configName:     configName,
		configType:     configType,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.logger == nil {
		l.logger = zap.NewNop()
	}

	return l
}

func (l *Loader) configFullName() string {
	if l.configType == "" {
		return l.configName
	}
	return l.configName + "." + l.configType
}

func (l *Loader) RootConfig() ([]byte, error) {
	data, err := fs.ReadFile(l.configRootPath, l.configFullName())
	if err != nil {
		return nil, ErrRootConfigNotFound
	}
	return data, nil
}

// FindConfigChain returns the contents of the root configuration file
// followed by the configuration files found in every directory leading
// to name. Closer files come last so they take precedence in ParseYAML.
func (l *Loader) FindConfigChain(name string) ([][]byte, error) {
	paths, err := l.findConfigFilesOnPath(name)
	if err != nil {
		return nil, err
	}
	return l.readFiles(paths...)
}

// Load returns the configuration for a source file at name.
// Without any configuration file the defaults are returned.
func (l *Loader) Load(name string) (*Config, error) {
	chain, err := l.FindConfigChain(name)
	if err != nil {
		return nil, err
	}
	return ParseYAML(chain...)
}

func (l *Loader) findConfigFilesOnPath(name string) (result []string, _ error) {
	dir, err := l.parsePath(name)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("finding config files on path", zap.String("dir", dir))

	configFullName := l.configFullName()

	_, err = fs.Stat(l.configRootPath, configFullName)
	if err == nil {
		result = append(result, configFullName)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.WithStack(err)
	}

	if dir == "." {
		return result, nil
	}

	curDir := ""
	for _, fragment := range strings.Split(dir, "/") {
		curDir = path.Join(curDir, fragment)

		configPath := path.Join(curDir, configFullName)
		_, err := fs.Stat(l.configRootPath, configPath)
		if err == nil {
			result = append(result, configPath)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.WithStack(err)
		}
	}

	l.logger.Debug("found config files", zap.String("dir", dir), zap.Strings("files", result))

	return result, nil
}

// parsePath returns the directory to search. name must be relative
// to the config root; a file resolves to its parent directory.
func (l *Loader) parsePath(name string) (string, error) {
	name = path.Clean(strings.TrimPrefix(name, "./"))
	if name == "" || name == "." {
		return ".", nil
	}
	if !fs.ValidPath(name) {
		// Paths outside of the config root only get the root configuration.
		return ".", nil
	}

	info, err := fs.Stat(l.configRootPath, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path.Dir(name), nil
		}
		return "", errors.Wrapf(err, "failed to get the path info for %q", name)
	}

	if info.IsDir() {
		return name, nil
	}
	return path.Dir(name), nil
}

func (l *Loader) readFiles(paths ...string) (result [][]byte, _ error) {
	for _, p := range paths {
		data, err := fs.ReadFile(l.configRootPath, p)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		result = append(result, data)
	}
	return result, nil
}

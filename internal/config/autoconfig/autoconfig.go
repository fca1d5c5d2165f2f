// autoconfig provides a way to create various instances from the [config.Config] like
// [docx.Exporter], [save.Saver], [zap.Logger].
//
// For example, to export blocks, you can write:
//
//	autoconfig.NewBuilder().Invoke(func(e *docx.Exporter, s *save.Saver) error {
//	    ...
//	})
//
// Treat it as a dependency injection mechanism.
package autoconfig

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/stateful/buatdocx/internal/config"
	"github.com/stateful/buatdocx/internal/log"
	"github.com/stateful/buatdocx/internal/save"
	"github.com/stateful/buatdocx/pkg/document/docx"
)

// SourcePath is the path of the source document, relative to the
// config root. Configuration files found on its way take precedence
// over the root configuration.
type SourcePath string

type Builder struct {
	container *dig.Container
}

func NewBuilder() *Builder {
	b := &Builder{container: dig.New()}

	mustProvide(b.container.Provide(getConfigLoader))
	mustProvide(b.container.Provide(getSourcePath))
	mustProvide(b.container.Provide(getConfig))
	mustProvide(b.container.Provide(getLogger))
	mustProvide(b.container.Provide(getExporter))
	mustProvide(b.container.Provide(getSaver))

	return b
}

// Decorate replaces a provided instance. It is how command line
// flags override the configuration:
//
//	b.Decorate(func(c *config.Config) *config.Config { ... })
func (b *Builder) Decorate(decorator interface{}, opts ...dig.DecorateOption) error {
	return dig.RootCause(b.container.Decorate(decorator, opts...))
}

// Invoke is used to invoke the function with the given dependencies.
// The package will automatically figure out how to instantiate them
// using the available configuration.
func (b *Builder) Invoke(function interface{}, opts ...dig.InvokeOption) error {
	return dig.RootCause(b.container.Invoke(function, opts...))
}

func mustProvide(err error) {
	if err != nil {
		panic("failed to provide: " + err.Error())
	}
}

func getConfigLoader() (*config.Loader, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return config.NewLoader("buatdocx", "yaml", os.DirFS(cwd)), nil
}

func getSourcePath() SourcePath {
	return ""
}

func getConfig(loader *config.Loader, source SourcePath) (*config.Config, error) {
	cfg, err := loader.Load(string(source))
	return cfg, errors.WithMessage(err, "failed to load config")
}

func getLogger(c *config.Config) (*zap.Logger, error) {
	if c == nil || !c.Log.Enabled {
		return zap.NewNop(), nil
	}

	logger, err := log.New(c.Log.Verbose, c.Log.Path)
	if err != nil {
		return nil, err
	}
	log.Set(logger)

	return logger, nil
}

func getExporter(c *config.Config, logger *zap.Logger) *docx.Exporter {
	return docx.NewExporter(
		docx.WithProperties(c.Properties()),
		docx.WithTextSize(c.Export.TextSize),
		docx.WithThematicBreak(c.Export.ThematicBreak),
		docx.WithLogger(logger),
	)
}

func getSaver(c *config.Config, logger *zap.Logger) *save.Saver {
	return save.New(nil, c.Export.OutputDir, save.WithLogger(logger))
}

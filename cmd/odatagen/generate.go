package main

import (
	"archive/zip"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/genusP/pailingual-odata-model-generator/pkg/config"
	"github.com/genusP/pailingual-odata-model-generator/pkg/edm"
	"github.com/genusP/pailingual-odata-model-generator/pkg/model"
)

var (
	genPackage     string
	genOutput      string
	genImports     []string
	genInclude     []string
	genExclude     []string
	genContextName string
	genContextBase string
	genNoPrelude   bool
	genVerbose     bool
)

func init() {
	generateCmd.Flags().StringVar(&genPackage, "package", "", "package name for the generated file")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "output file path")
	generateCmd.Flags().StringArrayVar(&genImports, "import", nil, "raw import statement appended to the generated file (repeatable)")
	generateCmd.Flags().StringArrayVar(&genInclude, "include", nil, "include pattern, literal or /regex/ (repeatable)")
	generateCmd.Flags().StringArrayVar(&genExclude, "exclude", nil, "exclude pattern, literal or /regex/ (repeatable)")
	generateCmd.Flags().StringVar(&genContextName, "context-name", "", "override the generated api-context type name")
	generateCmd.Flags().StringVar(&genContextBase, "context-base", "", "override the api-context base type")
	generateCmd.Flags().BoolVar(&genNoPrelude, "no-prelude", false, "skip writing the odata.go support file")
	generateCmd.Flags().BoolVar(&genVerbose, "verbose", false, "show detailed generation output")
}

var generateCmd = &cobra.Command{
	Use:   "generate [metadata ...]",
	Short: "Generate the client model from CSDL metadata",
	Long:  "Parse one or more metadata sources (.xml files, .zip archives, or http(s) URLs) and generate the typed client model",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(".")
		if err != nil {
			return err
		}
		applyFlags(cfg)

		sources := args
		if len(sources) == 0 {
			sources = cfg.Sources
		}
		if len(sources) == 0 {
			return fmt.Errorf("no metadata source specified")
		}

		logger := zap.NewNop()
		if genVerbose {
			logger, err = zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
		}

		parser := edm.NewParser()
		defer parser.Close() //nolint:errcheck
		for _, source := range sources {
			if err := addSource(parser, source); err != nil {
				return err
			}
		}
		doc, err := parser.Parse()
		if err != nil {
			return fmt.Errorf("parsing metadata: %w", err)
		}

		include, err := model.ParsePatterns(cfg.Include)
		if err != nil {
			return err
		}
		exclude, err := model.ParsePatterns(cfg.Exclude)
		if err != nil {
			return err
		}

		m, err := model.Build(cmd.Context(), doc, model.Options{
			Imports:        cfg.Imports,
			Include:        include,
			Exclude:        exclude,
			APIContextName: cfg.APIContextName,
			APIContextBase: cfg.APIContextBase,
			Logger:         logger,
		})
		if err != nil {
			return err
		}

		source, err := model.Render(m, cfg.Package)
		if err != nil {
			return fmt.Errorf("rendering model: %w", err)
		}
		if err := os.WriteFile(cfg.Output, source, 0o644); err != nil {
			return err
		}

		if !genNoPrelude {
			prelude, err := model.Prelude(cfg.Package)
			if err != nil {
				return err
			}
			preludePath := filepath.Join(filepath.Dir(cfg.Output), model.PreludeFilename)
			if err := os.WriteFile(preludePath, prelude, 0o644); err != nil {
				return err
			}
		}

		fmt.Printf("Generated %s (%d declarations)\n", cfg.Output, len(m.Declarations()))
		return nil
	},
}

func applyFlags(cfg *config.Config) {
	if genPackage != "" {
		cfg.Package = genPackage
	}
	if genOutput != "" {
		cfg.Output = genOutput
	}
	if len(genImports) > 0 {
		cfg.Imports = append(cfg.Imports, genImports...)
	}
	if len(genInclude) > 0 {
		cfg.Include = append(cfg.Include, genInclude...)
	}
	if len(genExclude) > 0 {
		cfg.Exclude = append(cfg.Exclude, genExclude...)
	}
	if genContextName != "" {
		cfg.APIContextName = genContextName
	}
	if genContextBase != "" {
		cfg.APIContextBase = genContextBase
	}
}

func addSource(parser *edm.Parser, source string) error {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return addURL(parser, source)
	}
	switch filepath.Ext(source) {
	case ".xml":
		file, err := os.Open(source)
		if err != nil {
			return fmt.Errorf("opening metadata file: %w", err)
		}
		parser.AddFile(filepath.Base(source), file)
		return nil
	case ".zip":
		return addZip(parser, source)
	default:
		return fmt.Errorf("unknown source type: %s", source)
	}
}

func addURL(parser *edm.Parser, url string) error {
	resp, err := http.Get(url) //nolint:gosec // URL comes from the operator
	if err != nil {
		return fmt.Errorf("fetching metadata: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close() //nolint:errcheck
		return fmt.Errorf("fetching metadata: %s returned %s", url, resp.Status)
	}
	parser.AddFile(url, resp.Body)
	return nil
}

func addZip(parser *edm.Parser, path string) error {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	for _, f := range archive.File {
		if filepath.Ext(f.Name) != ".xml" {
			continue
		}
		file, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening %s in archive: %w", f.Name, err)
		}
		parser.AddFile(filepath.Base(f.Name), file)
	}
	return nil
}

package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"

	"newtype-generator/internal/capability"
	"newtype-generator/internal/common"
	"newtype-generator/internal/diagnostic"
	"newtype-generator/internal/guard"
	"newtype-generator/internal/model"
)

// Config holds configuration for code generation.
type Config struct {
	// OutputDir is the directory where generated files are written. Also
	// used for the unformatted-debug sidecar on formatting failures.
	OutputDir string
	// PackageName overrides the definition file's package when set.
	PackageName string
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		OutputDir: "./generated",
	}
}

// Generator assembles Go source artifacts from wrapper attribute models.
// Generation is a pure function of its inputs: no cross-wrapper cache,
// no global registry.
type Generator struct {
	config   Config
	features model.Features
}

// NewGenerator creates a new Generator with the given configuration and
// feature set.
func NewGenerator(config Config, features model.Features) *Generator {
	return &Generator{config: config, features: features}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g. "score.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate produces one artifact per wrapper. Wrappers are independent:
// a misconfigured wrapper contributes diagnostics and no file, and its
// siblings are unaffected. Wrappers whose names map to the same output
// filename are a configuration error: the later one is rejected instead
// of silently overwriting the earlier artifact.
func (g *Generator) Generate(wrappers []model.Wrapper) ([]GeneratedFile, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}

	var files []GeneratedFile

	claimed := map[string]string{} // filename -> wrapper that produced it

	for i := range wrappers {
		w := &wrappers[i]

		file, wrapperDiags := g.generateWrapper(w)
		diags.Merge(wrapperDiags)

		if wrapperDiags.HasErrors() || file == nil {
			continue
		}

		if prev, ok := claimed[file.Filename]; ok {
			diags.AddError("duplicate_artifact",
				fmt.Sprintf("%q emits %s, already produced by %q", w.Name, file.Filename, prev),
				w.Name, "name", w.Loc)

			continue
		}

		claimed[file.Filename] = w.Name

		files = append(files, *file)
	}

	return files, diags
}

// generateWrapper runs the full pipeline for a single wrapper: guard
// classification, capability resolution, assembly, formatting. There is
// no partial output: any error means no artifact for this wrapper.
func (g *Generator) generateWrapper(w *model.Wrapper) (*GeneratedFile, *diagnostic.Diagnostics) {
	grd, diags := guard.Classify(w)
	if diags.HasErrors() {
		return nil, diags
	}

	resolved, resolveDiags := capability.Resolve(w, grd, g.features)

	diags.Merge(resolveDiags)
	if diags.HasErrors() {
		return nil, diags
	}

	data, err := g.buildTemplateData(w, grd, resolved)
	if err != nil {
		diags.AddError("assembly_failed", err.Error(), w.Name, "", w.Loc)
		return nil, diags
	}

	var buf bytes.Buffer
	if err := newtypeTemplate.Execute(&buf, data); err != nil {
		diags.AddError("assembly_failed", fmt.Sprintf("executing template: %v", err), w.Name, "", w.Loc)
		return nil, diags
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: keep the unformatted code around to aid debugging.
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, data.Filename, buf.Bytes())
		}

		diags.AddError("format_failed", fmt.Sprintf("formatting code: %v", err), w.Name, "", w.Loc)

		return nil, diags
	}

	return &GeneratedFile{
		Filename: data.Filename,
		Content:  formatted,
	}, diags
}

// templateData holds everything the newtype file template needs. All
// blocks arrive pre-rendered; the file template only arranges them in
// the fixed artifact order.
type templateData struct {
	PackageName string
	Filename    string
	Imports     []string
	Doc         []string
	StructNote  string
	TypeName    string
	InnerType   string
	Constructor string
	Unchecked   string
	Extractor   string
	Blocks      []string
	ErrorType   string
}

func (g *Generator) buildTemplateData(w *model.Wrapper, grd guard.Guard, resolved capability.Resolved) (*templateData, error) {
	ctx := newBlockCtx(w, grd)

	data := &templateData{
		PackageName: g.packageName(w),
		Filename:    common.SnakeCase(w.Name) + ".go",
		TypeName:    w.Name,
		InnerType:   ctx.InnerType,
		StructNote:  structNote(w.Name, resolved.Transparent),
	}

	if w.Doc != "" {
		data.Doc = strings.Split(strings.TrimRight(w.Doc, "\n"), "\n")
	}

	constructor, err := renderConstructor(ctx, grd)
	if err != nil {
		return nil, err
	}

	data.Constructor = constructor

	if w.NewUnchecked {
		unchecked, err := renderFragment(uncheckedTemplate, ctx)
		if err != nil {
			return nil, err
		}

		data.Unchecked = unchecked
	}

	extractor, err := renderFragment(extractorTemplate, ctx)
	if err != nil {
		return nil, err
	}

	data.Extractor = extractor

	for _, c := range resolved.Irregular {
		block, err := renderCapability(c, ctx)
		if err != nil {
			return nil, fmt.Errorf("assembling capability %q: %w", c, err)
		}

		data.Blocks = append(data.Blocks, block)
	}

	if grd.HasValidation() {
		errorType, err := renderErrorType(w.Name, grd.Validators)
		if err != nil {
			return nil, err
		}

		data.ErrorType = errorType
	}

	data.Imports = collectImports(grd, resolved)

	return data, nil
}

func (g *Generator) packageName(w *model.Wrapper) string {
	if g.config.PackageName != "" {
		return g.config.PackageName
	}

	if w.Package != "" {
		return w.Package
	}

	return "newtypes"
}

// structNote renders the transparent-capability annotation attached to
// the type definition. Transparent capabilities emit no bodies; the Go
// language provides them structurally, so the artifact documents them.
func structNote(typeName string, transparent []model.Capability) string {
	if len(transparent) == 0 {
		return ""
	}

	phrases := make([]string, 0, len(transparent))

	for _, c := range transparent {
		switch c {
		case model.CapEq:
			phrases = append(phrases, "comparable with ==")
		case model.CapHash:
			phrases = append(phrases, "usable as a map key")
		case model.CapClone:
			phrases = append(phrases, "freely copyable")
		case model.CapDebug:
			phrases = append(phrases, "printable with %v")
		}
	}

	return typeName + " is " + strings.Join(phrases, ", ") + "."
}

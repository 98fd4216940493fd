package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/petal-labs/runware/core"
	"github.com/petal-labs/runware/runware"
)

// imageFlags are the generation settings shared by the image commands.
type imageFlags struct {
	prompt   string
	negative string
	model    string
	width    int
	height   int
	steps    int
	cfgScale float64
	results  int
	format   string
	timeout  time.Duration
}

func (f *imageFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.prompt, "prompt", "p", "", "positive prompt")
	fs.StringVar(&f.negative, "negative", "", "negative prompt")
	fs.StringVarP(&f.model, "model", "m", "", "model AIR identifier (e.g. runware:100@1)")
	fs.IntVar(&f.width, "width", 0, "image width in pixels")
	fs.IntVar(&f.height, "height", 0, "image height in pixels")
	fs.IntVar(&f.steps, "steps", 0, "inference steps")
	fs.Float64Var(&f.cfgScale, "cfg-scale", 0, "classifier-free guidance scale")
	fs.IntVarP(&f.results, "results", "n", 0, "number of images to generate")
	fs.StringVarP(&f.format, "format", "f", "", "output format: PNG, JPG or WEBP")
	fs.DurationVar(&f.timeout, "timeout", 0, "request timeout (e.g. 60s); 0 waits indefinitely")
}

// promptFrom returns --prompt, or the positional argument when the flag was
// not given.
func (f *imageFlags) promptFrom(fs *pflag.FlagSet, args []string) (string, bool) {
	if fs.Changed("prompt") {
		return f.prompt, true
	}
	if len(args) > 0 {
		return strings.Join(args, " "), true
	}
	return "", false
}

func (f *imageFlags) context(parent context.Context) (context.Context, context.CancelFunc) {
	if f.timeout > 0 {
		return context.WithTimeout(parent, f.timeout)
	}
	return context.WithCancel(parent)
}

// commonSetters is the setter surface shared by the image builders.
type commonSetters[B any] interface {
	PositivePrompt(string) B
	NegativePrompt(string) B
	Model(string) B
	Width(int) B
	Height(int) B
	Steps(int) B
	CFGScale(float64) B
	NumberResults(int) B
	OutputFormat(core.OutputFormat) B
}

// applyCommon calls the setter of every flag that was given, falling back to
// the configured defaults. Untouched settings keep the SDK defaults.
func applyCommon[B commonSetters[B]](a *App, b B, fs *pflag.FlagSet, f *imageFlags, args []string) {
	d := a.cfg.Defaults

	if prompt, ok := f.promptFrom(fs, args); ok {
		b.PositivePrompt(prompt)
	}
	if fs.Changed("negative") {
		b.NegativePrompt(f.negative)
	}
	if fs.Changed("model") {
		b.Model(f.model)
	} else if d.Model != "" {
		b.Model(d.Model)
	}
	if fs.Changed("width") {
		b.Width(f.width)
	} else if d.Width > 0 {
		b.Width(d.Width)
	}
	if fs.Changed("height") {
		b.Height(f.height)
	} else if d.Height > 0 {
		b.Height(d.Height)
	}
	if fs.Changed("steps") {
		b.Steps(f.steps)
	}
	if fs.Changed("cfg-scale") {
		b.CFGScale(f.cfgScale)
	}
	if fs.Changed("results") {
		b.NumberResults(f.results)
	}

	format := d.OutputFormat
	if fs.Changed("format") {
		format = f.format
	}
	if format != "" {
		b.OutputFormat(a.outputFormat(format))
	}
}

// outputFormat resolves a format name, warning when it falls back to PNG.
func (a *App) outputFormat(name string) core.OutputFormat {
	if f, ok := core.LookupOutputFormat(name); ok {
		return f
	}
	a.logger.Warn("unknown output format, using PNG", zap.String("format", name))
	return core.OutputFormatPNG
}

func (a *App) newImageCommand() *cobra.Command {
	var (
		flags  imageFlags
		params []string
	)

	cmd := &cobra.Command{
		Use:   "image [prompt]",
		Short: "Generate images from a text prompt",
		Long: `Generate images with the imageInference task.

Only the flags you pass are sent; everything else keeps the API defaults or the
values under "defaults:" in the config file. Extra task parameters can be given
with --param key=value and are coerced like the library's parameter map.

Examples:
  runware image "a lighthouse at dusk"
  runware image -p "a red fox" --width 1024 --height 768 -f webp
  runware image -p "a cat" --param CFGScale=7.5 --param steps=30 --json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.imageParams(cmd.Flags(), &flags, params, args)
			if err != nil {
				return a.handleError(err)
			}

			c, err := a.openContainer()
			if err != nil {
				return a.handleError(err)
			}

			ctx, cancel := flags.context(cmd.Context())
			defer cancel()

			records, err := c.Runware().ImageInferenceMap(ctx, p)
			if err != nil {
				return a.handleError(err)
			}
			return a.printRecords(records)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringArrayVar(&params, "param", nil, "raw task parameter as key=value (repeatable)")

	return cmd
}

// imageParams builds the parameter map for the runware binding from config
// defaults, explicitly set flags and --param entries, in that order.
func (a *App) imageParams(fs *pflag.FlagSet, f *imageFlags, raw []string, args []string) (map[string]any, error) {
	p := make(map[string]any)

	d := a.cfg.Defaults
	if d.Model != "" {
		p[runware.ParamModel] = d.Model
	}
	if d.Width > 0 {
		p[runware.ParamWidth] = d.Width
	}
	if d.Height > 0 {
		p[runware.ParamHeight] = d.Height
	}
	if d.OutputFormat != "" {
		p[runware.ParamOutputFormat] = d.OutputFormat
	}

	if prompt, ok := f.promptFrom(fs, args); ok {
		p[runware.ParamPositivePrompt] = prompt
	}
	set := func(flag, key string, v any) {
		if fs.Changed(flag) {
			p[key] = v
		}
	}
	set("negative", runware.ParamNegativePrompt, f.negative)
	set("model", runware.ParamModel, f.model)
	set("width", runware.ParamWidth, f.width)
	set("height", runware.ParamHeight, f.height)
	set("steps", runware.ParamSteps, f.steps)
	set("cfg-scale", runware.ParamCFGScale, f.cfgScale)
	set("results", runware.ParamNumberResults, f.results)
	set("format", runware.ParamOutputFormat, f.format)

	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, exitWithCode(ExitValidation, fmt.Errorf("invalid --param %q: want key=value", kv))
		}
		p[key] = value
	}

	if v, ok := p[runware.ParamOutputFormat]; ok {
		a.outputFormat(fmt.Sprint(v))
	}

	a.logger.Debug("image parameters", zap.Strings("keys", sortedKeys(p)))
	return p, nil
}

// printRecords writes one image URL per line, or the records as JSON.
func (a *App) printRecords(records []core.Record) error {
	if a.jsonOutput {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	for _, rec := range records {
		switch {
		case rec.ImageURL() != "":
			fmt.Fprintln(a.stdout, rec.ImageURL())
		case rec.ImageUUID() != "":
			fmt.Fprintln(a.stdout, rec.ImageUUID())
		default:
			line, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, string(line))
		}
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

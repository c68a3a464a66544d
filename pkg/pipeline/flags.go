package pipeline

import(
	"context"
	"log"

	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"

	"github.com/abworrall/arclamp/pkg/spectro"
	"github.com/abworrall/arclamp/pkg/store"
)

// Flags are the command line options every tool shares.
type Flags struct {
	Verbosity  int
	ConfigFile string
	Open       bool
	FiberCount int
}

func (f *Flags)Register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.Verbosity, "verbosity", "v", 0, "how verbose to get")
	cmd.Flags().StringVar(&f.ConfigFile, "config", "", "YAML config file (local path, file:// or gs://)")
	cmd.Flags().BoolVar(&f.Open, "open", false, "open the diagnostic plot in the desktop viewer")
}

// RegisterFibers adds --fibers, for the tools that normalize by fiber count.
func (f *Flags)RegisterFibers(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.FiberCount, "fibers", spectro.DefaultFiberCount, "fibers in the bundle (overrides the config file)")
}

// Config loads the config file, if any, and applies the flags that were set
// on the command line on top.
func (f Flags)Config(cmd *cobra.Command) (Config, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c := NewConfig()
	if f.ConfigFile != "" {
		var err error
		if c, err = LoadConfig(ctx, f.ConfigFile); err != nil {
			return c, err
		}
		log.Printf("Loaded base configuration from %s\n", f.ConfigFile)
	}

	if cmd.Flags().Changed("verbosity") {
		c.Verbosity = f.Verbosity
	}
	if cmd.Flags().Changed("fibers") {
		c.FiberCount = f.FiberCount
	}
	if err := c.Finalize(); err != nil {
		return c, err
	}

	if c.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", c.AsYaml())
	}
	return c, nil
}

// MaybeOpen shows a written plot, if asked to and it's on local disk.
func (f Flags)MaybeOpen(loc string) {
	if !f.Open || loc == "" {
		return
	}
	l, err := store.Parse(loc)
	if err != nil || !l.IsLocal() {
		log.Printf("--open: can't open '%s' locally\n", loc)
		return
	}
	if err := open.Run(l.Path); err != nil {
		log.Printf("--open '%s': %v\n", l.Path, err)
	}
}

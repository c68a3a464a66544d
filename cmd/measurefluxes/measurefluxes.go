package main

import(
	"log"

	"github.com/spf13/cobra"

	"github.com/abworrall/arclamp/pkg/pipeline"
)

func newCommand() *cobra.Command {
	var flags pipeline.Flags

	root := &cobra.Command{
		Use:   "measurefluxes [flags] <calibrated_1d> <output_csv> <line_list_csv> <output_plot>",
		Short: "Measure arc line fluxes in a wavelength calibrated spectrum",
		Long: `measurefluxes sums the counts strictly inside each line_start/line_end
window of the line list, and divides by the exposure time and the number of
fibers. The output CSV has columns pixel,Wavelength,Flux, one row per line,
in line list order.`,
		Args:          cobra.ExactArgs(4),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.Config(cmd)
			if err != nil {
				return err
			}
			req := pipeline.FluxRequest{Input: args[0], Table: args[1], LineList: args[2], Plot: args[3]}
			if _, err := pipeline.MeasureFluxes(cmd.Context(), cfg, req); err != nil {
				return err
			}
			flags.MaybeOpen(req.Plot)
			return nil
		},
	}

	flags.Register(root)
	flags.RegisterFibers(root)

	return root
}

func main() {
	log.Printf("measurefluxes starting\n")
	if err := newCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

package main

import(
	"log"

	"github.com/spf13/cobra"

	"github.com/abworrall/arclamp/pkg/pipeline"
)

func newCommand() *cobra.Command {
	var flags pipeline.Flags
	var req pipeline.CalibrateRequest

	root := &cobra.Command{
		Use:   "wavecal [flags] <input_1d> <output_1d>",
		Short: "Attach the Blue or Red wavelength solution to a 1D spectrum",
		Long: `wavecal copies a fixed linear wavelength solution, chosen by the
spectrum's CCD header card, into the FITS header (CRPIX1/CDELT1/CRVAL1).
The counts are not changed. Spectra from any arm other than Blue or Red
are rejected.`,
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.Config(cmd)
			if err != nil {
				return err
			}
			req.Input, req.Output = args[0], args[1]
			if _, err := pipeline.Calibrate(cmd.Context(), cfg, req); err != nil {
				return err
			}
			flags.MaybeOpen(req.Plot)
			return nil
		},
	}

	flags.Register(root)
	root.Flags().StringVar(&req.Plot, "plot", "", "also plot counts against wavelength")

	return root
}

func main() {
	log.Printf("wavecal starting\n")
	if err := newCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

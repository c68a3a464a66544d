package main

import(
	"log"

	"github.com/spf13/cobra"

	"github.com/abworrall/arclamp/pkg/pipeline"
)

func newCommand() *cobra.Command {
	var flags pipeline.Flags
	var req pipeline.Sum1DRequest

	root := &cobra.Command{
		Use:   "spec1d [flags] <image> <dark> <output_1d> <output_plot>",
		Short: "Sum a dark-subtracted arc lamp frame along the slit into a 1D spectrum",
		Long: `spec1d subtracts the dark frame from the arc lamp image and sums each
detector column, writing a 1D FITS spectrum and a counts plot.

The image filename must look like <brand>_<lamp>_<ccd>_..._<N>s_<id>.fits;
those fields are recorded in the output header.

Examples:
  spec1d Photron_ThAr_Red_60s_001.fits dark.fits ThAr_red_1d.fits ThAr_red_1d.png
  spec1d --preview frame.png gs://bucket/Photron_ThAr_Blue_30s_7.fits gs://bucket/dark.fits 1d.fits 1d.png`,
		Args:          cobra.ExactArgs(4),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.Config(cmd)
			if err != nil {
				return err
			}
			req.Image, req.Dark, req.Output, req.Plot = args[0], args[1], args[2], args[3]
			if _, err := pipeline.Sum1D(cmd.Context(), cfg, req); err != nil {
				return err
			}
			flags.MaybeOpen(req.Plot)
			return nil
		},
	}

	flags.Register(root)
	root.Flags().StringVar(&req.Preview, "preview", "", "also write a grayscale PNG of the dark-subtracted frame")
	root.Flags().StringVar(&req.HDR, "hdr", "", "also write the dark-subtracted frame as a Radiance .hdr file")
	root.Flags().StringVar(&req.Histogram, "histogram", "", "also plot a histogram of dark-subtracted pixel values")

	return root
}

func main() {
	log.Printf("spec1d starting\n")
	if err := newCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

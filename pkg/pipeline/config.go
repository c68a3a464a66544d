package pipeline

import(
	"context"
	"fmt"
	"log"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/arclamp/pkg/qc"
	"github.com/abworrall/arclamp/pkg/spectro"
	"github.com/abworrall/arclamp/pkg/store"
)

/* Example config file ...

verbosity: 1
fibercount: 61
calibration:
  blue:
    refpixel: 2048
    step: 0.5470085470085
    refvalue: 4799.726495726
  red:
    refpixel: 2048
    step: 0.5185891473977
    refvalue: 6781.932617188
plot:
  width: 6.4
  height: 4.8
gcscredentials: /home/me/sa.json

*/

// PlotOptions is the rendered size of the diagnostic plots, in inches.
type PlotOptions struct {
	Width  float64
	Height float64
}

type Config struct {
	Verbosity      int

	FiberCount     int                       // Fibers in the IFU bundle; fluxes are per fiber
	Calibration    spectro.CalibrationTable
	Plot           PlotOptions

	GCSCredentials string                    // Service account JSON, for gs:// locations
}

func NewConfig() Config {
	return Config{
		FiberCount:  spectro.DefaultFiberCount,
		Calibration: spectro.DefaultCalibrationTable(),
		Plot:        PlotOptions{Width: 6.4, Height: 4.8},
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("%w: %v", spectro.ErrInvalidConfig, err)
	}
	return c, nil
}

// LoadConfig overlays the YAML file onto the defaults.
func LoadConfig(ctx context.Context, file string) (Config, error) {
	b, err := store.ReadAll(ctx, file, "")
	if err != nil {
		return Config{}, err
	}
	c, err := newConfigFromYaml(b)
	if err != nil {
		return Config{}, fmt.Errorf("config '%s': %w", file, err)
	}
	return c, nil
}

// Finalize checks the config is usable, once flags have been applied.
func (c Config)Finalize() error {
	if c.FiberCount <= 0 {
		return fmt.Errorf("%w: fiber count %d", spectro.ErrInvalidConfig, c.FiberCount)
	}
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		return fmt.Errorf("%w: plot size %gx%g", spectro.ErrInvalidConfig, c.Plot.Width, c.Plot.Height)
	}
	return c.Calibration.Validate()
}

func (c Config)PlotSize() qc.Size { return qc.SizeInInches(c.Plot.Width, c.Plot.Height) }

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

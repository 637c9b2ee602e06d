package config

import (
	"fmt"

	"github.com/imgprep/subsample/internal/dataset"
	"github.com/imgprep/subsample/internal/sampler"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Settings are the resolved parameters of a run.
type Settings struct {
	DatasetRoot string
	Fraction    float64
	Seed        int64
	SourceDir   string
	DestDir     string
}

// Current reads Settings from Viper after Load and any flag bindings.
func Current() (Settings, error) {
	fraction, err := cast.ToFloat64E(viper.Get(KeyFraction))
	if err != nil {
		return Settings{}, fmt.Errorf("reading %s: %w", KeyFraction, err)
	}
	seed, err := cast.ToInt64E(viper.Get(KeySeed))
	if err != nil {
		return Settings{}, fmt.Errorf("reading %s: %w", KeySeed, err)
	}

	s := Settings{
		DatasetRoot: viper.GetString(KeyDatasetRoot),
		Fraction:    fraction,
		Seed:        seed,
		SourceDir:   viper.GetString(KeySourceDir),
		DestDir:     viper.GetString(KeyDestDir),
	}
	return s, s.Validate()
}

// Layout returns the dataset layout described by s.
func (s Settings) Layout() dataset.Layout {
	return dataset.Layout{Root: s.DatasetRoot, Source: s.SourceDir, Dest: s.DestDir}
}

// Validate checks the fraction and the layout names.
func (s Settings) Validate() error {
	if err := sampler.ValidateFraction(s.Fraction); err != nil {
		return err
	}
	if err := s.Layout().Validate(); err != nil {
		return err
	}
	return nil
}

package ufr

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// fileParams is the YAML schema for a parameter vintage. The UFR is given as
// published (annually compounded), with an optional rounding policy.
type fileParams struct {
	Vintage             string          `yaml:"vintage" validate:"required"`
	FirstSmoothingPoint float64         `yaml:"first_smoothing_point" validate:"gt=0"`
	Alpha               float64         `yaml:"alpha" validate:"gt=0"`
	UFRAnnual           float64         `yaml:"ufr_annual" validate:"required"`
	UFRDecimals         *int32          `yaml:"ufr_decimals"`
	LLFRWeights         []HorizonWeight `yaml:"llfr_weights" validate:"required,min=1,dive"`
	Omega               float64         `yaml:"omega" validate:"gt=0"`
	HistoryLength       int             `yaml:"history_length" validate:"gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadParams reads a parameter vintage from a YAML file.
func LoadParams(path string) (Params, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("load params: %w", err)
	}
	return parseParams(raw)
}

func parseParams(raw []byte) (Params, error) {
	var fp fileParams
	if err := yaml.Unmarshal(raw, &fp); err != nil {
		return Params{}, fmt.Errorf("parse params: %w", err)
	}
	if err := validate.Struct(fp); err != nil {
		return Params{}, fmt.Errorf("validate params: %w", err)
	}
	rounding := NoRounding
	if fp.UFRDecimals != nil {
		rounding = RoundTo(*fp.UFRDecimals)
	}
	return NewParams(fp.Vintage, fp.FirstSmoothingPoint, fp.Alpha, fp.UFRAnnual,
		rounding, fp.LLFRWeights, fp.Omega, fp.HistoryLength)
}

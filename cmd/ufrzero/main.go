// Command ufrzero builds the regulatory UFR-extrapolated zero curve for a
// valuation date under a chosen vintage and prints the zero grid as JSON.
package main

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/meenmo/ftklib/curve"
	"github.com/meenmo/ftklib/marketdata"
	"github.com/meenmo/ftklib/term"
	"github.com/meenmo/ftklib/ufr"
	"github.com/meenmo/ftklib/utils"
)

// Output defines the JSON output schema.
type Output struct {
	ValuationDate string              `json:"valuation_date"`
	Vintage       string              `json:"vintage"`
	LLFR          float64             `json:"llfr"`
	UFRContinuous float64             `json:"ufr_continuous"`
	Samples       []curve.SamplePoint `json:"samples"`
}

func main() {
	var (
		dir        = flag.String("dir", ".", "directory holding quotes_YYYYMMDD.csv files")
		dateStr    = flag.String("date", "", "valuation date (YYYYMMDD, required)")
		vintage    = flag.String("vintage", "2024", "UFR vintage: 2015|2024")
		paramsPath = flag.String("params", "", "YAML parameter file (overrides -vintage)")
		policyStr  = flag.String("policy", "linear-logdf", "interpolation policy")
		maxYears   = flag.Float64("max", 100, "last sampled maturity in years")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if *dateStr == "" {
		log.Fatal().Msg("-date is required")
	}
	date, err := utils.ParseCompactDate(*dateStr)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -date")
	}

	params, err := ufr.VintageParams(*vintage)
	if *paramsPath != "" {
		params, err = ufr.LoadParams(*paramsPath)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("loading UFR parameters")
	}
	policy, err := curve.ParsePolicy(*policyStr)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -policy")
	}

	valuationDate := marketdata.AdjustValuationDate(date)
	builder := curve.Builder{Policy: policy, Instrument: curve.InstrumentParSwap}

	// The historical-mean vintage averages the LLFR over the valuation date
	// and its preceding publication dates, each bootstrapped from its own
	// quote file. The first history entry is the valuation date itself and
	// doubles as the base curve.
	var base term.Structure
	var llfr float64
	if params.HistoryLength > 0 {
		history := make([]ufr.DatedQuotes, 0, params.HistoryLength)
		d := valuationDate
		for len(history) < params.HistoryLength {
			qs, err := marketdata.LoadQuotes(*dir, d)
			if err != nil {
				log.Fatal().Err(err).Msg("loading historical quotes")
			}
			history = append(history, ufr.DatedQuotes{Date: d, Quotes: qs})
			d = marketdata.PreviousBusinessDay(d)
		}
		curves, err := ufr.HistoricalCurves(valuationDate, history, builder)
		if err != nil {
			log.Fatal().Err(err).Msg("historical bootstrap failed")
		}
		base = curves[0]
		llfr, err = ufr.EstimateHistoricalLLFR(curves, params)
		if err != nil {
			log.Fatal().Err(err).Msg("LLFR estimation failed")
		}
	} else {
		var err error
		base, err = buildCurve(builder, *dir, valuationDate)
		if err != nil {
			log.Fatal().Err(err).Msg("bootstrap failed")
		}
		llfr, err = ufr.EstimateLLFR(base, params)
		if err != nil {
			log.Fatal().Err(err).Msg("LLFR estimation failed")
		}
	}
	log.Info().Str("vintage", params.Vintage).Float64("llfr", llfr).Msg("extrapolating")

	ext, err := ufr.Extrapolate(base, llfr, params)
	if err != nil {
		log.Fatal().Err(err).Msg("extrapolation failed")
	}

	var times []float64
	for t := 1.0; t <= *maxYears+1e-9; t += 1.0 {
		times = append(times, t)
	}
	samples, err := curve.Sample(ext, times, term.Continuous)
	if err != nil {
		log.Fatal().Err(err).Msg("sampling failed")
	}

	out := Output{
		ValuationDate: valuationDate.Format("2006-01-02"),
		Vintage:       params.Vintage,
		LLFR:          llfr,
		UFRContinuous: params.UltimateForwardRate,
		Samples:       samples,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal().Err(err).Msg("encoding output")
	}
}

func buildCurve(b curve.Builder, dir string, date time.Time) (term.Structure, error) {
	qs, err := marketdata.LoadQuotes(dir, date)
	if err != nil {
		return nil, err
	}
	return b.Build(date, qs)
}

// Command liabnpv values a liability schedule against a regulatory curve
// chain and emits the par-sensitivity vector aligned to the quote grid.
package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/rs/zerolog"

	"github.com/meenmo/ftklib/curve"
	"github.com/meenmo/ftklib/marketdata"
	"github.com/meenmo/ftklib/pricer"
	"github.com/meenmo/ftklib/term"
	"github.com/meenmo/ftklib/ufr"
	"github.com/meenmo/ftklib/utils"
)

// Output defines the JSON output schema.
type Output struct {
	ValuationDate string               `json:"valuation_date"`
	Vintage       string               `json:"vintage"`
	PresentValue  float64              `json:"present_value"`
	Sensitivities []pricer.Sensitivity `json:"sensitivities"`
}

func main() {
	var (
		dir       = flag.String("dir", ".", "directory holding quotes_YYYYMMDD.csv files")
		liabPath  = flag.String("liabilities", "", "liability schedule CSV (date,amount; required)")
		dateStr   = flag.String("date", "", "valuation date (YYYYMMDD, required)")
		vintage   = flag.String("vintage", "", "UFR vintage (2015|2024); empty prices on the market curve only")
		policyStr = flag.String("policy", "linear-logdf", "interpolation policy")
		bump      = flag.Float64("bump", 1e-4, "quote bump size (decimal, 1e-4 = 1bp)")
		scale     = flag.Float64("scale", 1e-4, "delta reporting scale (1e-4 reports per-bp)")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if *dateStr == "" || *liabPath == "" {
		log.Fatal().Msg("-date and -liabilities are required")
	}
	date, err := utils.ParseCompactDate(*dateStr)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -date")
	}
	policy, err := curve.ParsePolicy(*policyStr)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -policy")
	}

	valuationDate := marketdata.AdjustValuationDate(date)
	qs, err := marketdata.LoadQuotes(*dir, valuationDate)
	if err != nil {
		log.Fatal().Err(err).Msg("loading quotes")
	}
	f, err := os.Open(*liabPath)
	if err != nil {
		log.Fatal().Err(err).Msg("opening liabilities")
	}
	flows, err := marketdata.ReadLiabilities(f, valuationDate)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("reading liabilities")
	}
	log.Info().Int("flows", len(flows)).Int("quotes", qs.Len()).Msg("pricing")

	var params ufr.Params
	if *vintage != "" {
		params, err = ufr.VintageParams(*vintage)
		if err != nil {
			log.Fatal().Err(err).Msg("loading UFR parameters")
		}
	}

	builder := curve.Builder{Policy: policy, Instrument: curve.InstrumentParSwap}
	rebuild := func(q *curve.QuoteSet) (term.Structure, error) {
		base, err := builder.Build(valuationDate, q)
		if err != nil {
			return nil, err
		}
		if *vintage == "" {
			return base, nil
		}
		llfr, err := ufr.EstimateLLFR(base, params)
		if err != nil {
			return nil, err
		}
		return ufr.Extrapolate(base, llfr, params)
	}

	ts, err := rebuild(qs)
	if err != nil {
		log.Fatal().Err(err).Msg("building curve chain")
	}
	pv, err := pricer.PresentValue(ts, flows)
	if err != nil {
		log.Fatal().Err(err).Msg("pricing failed")
	}
	deltas, err := pricer.Sensitivities(qs, rebuild, flows, *bump, *scale)
	if err != nil {
		log.Fatal().Err(err).Msg("sensitivity run failed")
	}

	out := Output{
		ValuationDate: valuationDate.Format("2006-01-02"),
		Vintage:       *vintage,
		PresentValue:  pv,
		Sensitivities: deltas,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal().Err(err).Msg("encoding output")
	}
}

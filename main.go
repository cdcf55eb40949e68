package main

import (
	"fmt"
	"time"

	"github.com/meenmo/ftklib/curve"
	"github.com/meenmo/ftklib/pricer"
	"github.com/meenmo/ftklib/term"
	"github.com/meenmo/ftklib/ufr"
)

func main() {
	quotes := curve.NewQuoteSet()
	for _, q := range []struct {
		tenor string
		rate  float64
	}{
		{"1Y", 0.0225}, {"2Y", 0.0231}, {"3Y", 0.0238}, {"4Y", 0.0244},
		{"5Y", 0.0249}, {"7Y", 0.0257}, {"10Y", 0.0264}, {"15Y", 0.0268},
		{"20Y", 0.0266}, {"25Y", 0.0261}, {"30Y", 0.0256}, {"40Y", 0.0247},
		{"50Y", 0.0240},
	} {
		if err := quotes.Add(q.tenor, q.rate); err != nil {
			panic(err)
		}
	}

	valuationDate := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	builder := curve.Builder{Policy: curve.LinearLogDF, Instrument: curve.InstrumentParSwap}

	base, err := builder.Build(valuationDate, quotes)
	if err != nil {
		panic(err)
	}

	llfr, err := ufr.EstimateLLFR(base, ufr.Vintage2024)
	if err != nil {
		panic(err)
	}
	ext, err := ufr.Extrapolate(base, llfr, ufr.Vintage2024)
	if err != nil {
		panic(err)
	}

	liabilities := []pricer.Cashflow{
		{Time: 10, Amount: 25_000_000},
		{Time: 30, Amount: 40_000_000},
		{Time: 60, Amount: 35_000_000},
	}
	pv, err := pricer.PresentValue(ext, liabilities)
	if err != nil {
		panic(err)
	}

	z60, _ := ext.ZeroRate(60, term.Annual)
	fmt.Printf("LLFR: %.6f\n", llfr)
	fmt.Printf("60Y zero (annual): %.6f\n", z60)
	fmt.Printf("Liability PV: %.2f\n", pv)
}

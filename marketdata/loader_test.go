package marketdata_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/meenmo/ftklib/marketdata"
)

func TestReadQuotes(t *testing.T) {
	t.Parallel()

	const body = `tenor,rate
1Y,0.010
2Y,0.012
10Y,0.020
`
	qs, err := marketdata.ReadQuotes(strings.NewReader(body))
	if err != nil {
		t.Fatalf("ReadQuotes: %v", err)
	}
	if qs.Len() != 3 {
		t.Fatalf("len = %d, want 3", qs.Len())
	}
	if q := qs.At(1); q.Tenor != "2Y" || q.Years != 2 || q.Rate != 0.012 {
		t.Fatalf("quote = %+v", q)
	}
}

func TestReadQuotesNoHeader(t *testing.T) {
	t.Parallel()

	qs, err := marketdata.ReadQuotes(strings.NewReader("1Y,0.010\n5Y,0.015\n"))
	if err != nil {
		t.Fatalf("ReadQuotes: %v", err)
	}
	if qs.Len() != 2 || qs.At(0).Rate != 0.010 {
		t.Fatalf("quotes = %v / %v", qs.Tenors(), qs.Rates())
	}
}

func TestReadQuotesRejectsBadInput(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"bad rate":        "1Y,abc\n",
		"bad tenor":       "XX,0.01\n",
		"unordered":       "5Y,0.015\n1Y,0.010\n",
		"duplicate tenor": "5Y,0.015\n5Y,0.016\n",
		"wrong fields":    "1Y,0.01,extra\n",
	}
	for name, body := range cases {
		if _, err := marketdata.ReadQuotes(strings.NewReader(body)); err == nil {
			t.Fatalf("%s: want error", name)
		}
	}
}

func TestReadQuotesMalformedFirstRowIsNotAHeader(t *testing.T) {
	t.Parallel()

	// A first row with a valid tenor and an unparseable rate is a damaged
	// record. Treating it as a header would silently drop the 1Y pillar.
	if _, err := marketdata.ReadQuotes(strings.NewReader("1Y,abc\n5Y,0.015\n")); err == nil {
		t.Fatal("damaged first row must error, not vanish as a header")
	}
	// Same rule on date-keyed files.
	val := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	if _, err := marketdata.ReadLiabilities(strings.NewReader("2026-06-30,abc\n2027-06-30,100\n"), val); err == nil {
		t.Fatal("damaged first liability row must error")
	}
	if _, err := marketdata.ReadFixings(strings.NewReader("2025-06-27,abc\n2025-06-30,0.02\n")); err == nil {
		t.Fatal("damaged first fixing row must error")
	}
}

func TestLoadQuotesRollsWeekend(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// 2025-06-28 is a Saturday; Modified Following lands on Monday the 30th.
	path := filepath.Join(dir, "quotes_20250630.csv")
	if err := os.WriteFile(path, []byte("1Y,0.010\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	sat := time.Date(2025, 6, 28, 0, 0, 0, 0, time.UTC)
	qs, err := marketdata.LoadQuotes(dir, sat)
	if err != nil {
		t.Fatalf("LoadQuotes: %v", err)
	}
	if qs.Len() != 1 {
		t.Fatalf("len = %d", qs.Len())
	}

	if _, err := marketdata.LoadQuotes(dir, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Fatal("missing file must error")
	}
}

func TestQuoteFileName(t *testing.T) {
	t.Parallel()

	d := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	if got := marketdata.QuoteFileName(d); got != "quotes_20250630.csv" {
		t.Fatalf("QuoteFileName = %q", got)
	}
}

func TestPreviousBusinessDay(t *testing.T) {
	t.Parallel()

	mon := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	fri := time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC)
	if got := marketdata.PreviousBusinessDay(mon); !got.Equal(fri) {
		t.Fatalf("previous business day of Monday = %v, want Friday %v", got, fri)
	}
	// Stepping back from 2025-04-22 (Tuesday after Easter) must skip Easter
	// Monday and Good Friday boundaries one day at a time.
	tueAfterEaster := time.Date(2025, 4, 22, 0, 0, 0, 0, time.UTC)
	want := time.Date(2025, 4, 17, 0, 0, 0, 0, time.UTC) // Maundy Thursday
	if got := marketdata.PreviousBusinessDay(tueAfterEaster); !got.Equal(want) {
		t.Fatalf("previous business day over Easter = %v, want %v", got, want)
	}
}

func TestReadFixings(t *testing.T) {
	t.Parallel()

	const body = `date,rate
2025-06-27,0.0215
2025-06-30,0.0217
`
	fx, err := marketdata.ReadFixings(strings.NewReader(body))
	if err != nil {
		t.Fatalf("ReadFixings: %v", err)
	}
	if len(fx) != 2 || fx[1].Rate != 0.0217 {
		t.Fatalf("fixings = %+v", fx)
	}
	if !fx[0].Date.Equal(time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date = %v", fx[0].Date)
	}
}

func TestReadLiabilities(t *testing.T) {
	t.Parallel()

	val := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	const body = `date,amount
2026-06-30,1000
2030-06-30,-250.5
`
	flows, err := marketdata.ReadLiabilities(strings.NewReader(body), val)
	if err != nil {
		t.Fatalf("ReadLiabilities: %v", err)
	}
	if len(flows) != 2 {
		t.Fatalf("flows = %+v", flows)
	}
	if math.Abs(flows[0].Time-365.0/365.0) > 1e-12 {
		t.Fatalf("first flow at %v years, want 1", flows[0].Time)
	}
	if flows[1].Amount != -250.5 {
		t.Fatalf("amount = %v", flows[1].Amount)
	}
	// One leap day (Feb 2028) falls in the window, so the five years span
	// 1826 days.
	if math.Abs(flows[1].Time-1826.0/365.0) > 1e-12 {
		t.Fatalf("second flow at %v years, want %v", flows[1].Time, 1826.0/365.0)
	}

	if _, err := marketdata.ReadLiabilities(strings.NewReader("2025-06-30,100\n"), val); err == nil {
		t.Fatal("flow on the valuation date must be rejected")
	}
	if _, err := marketdata.ReadLiabilities(strings.NewReader("30/06/2026,100\n"), val); err == nil {
		t.Fatal("bad date format must be rejected")
	}
}

func TestReadReferenceZeros(t *testing.T) {
	t.Parallel()

	zs, err := marketdata.ReadReferenceZeros(strings.NewReader("tenor,rate\n20Y,0.022\n25Y,0.0221\n"))
	if err != nil {
		t.Fatalf("ReadReferenceZeros: %v", err)
	}
	if len(zs) != 2 || zs[0].Years != 20 || zs[1].Rate != 0.0221 {
		t.Fatalf("zeros = %+v", zs)
	}
}

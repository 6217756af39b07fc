package kyc

import "strconv"

// Totals holds the derived aggregates over the financial sections.
type Totals struct {
	TotalIncomes     float64 `json:"totalIncomes"`
	TotalAssets      float64 `json:"totalAssets"`
	TotalLiabilities float64 `json:"totalLiabilities"`
	TotalSources     float64 `json:"totalSources"`
	NetWorth         float64 `json:"netWorth"`
}

// parseAmount treats blank or non-numeric amounts as zero.
func parseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

func sumAmounts(amounts []string) float64 {
	var total float64
	for _, a := range amounts {
		total += parseAmount(a)
	}
	return total
}

// NetWorth sums only the strictly positive section totals. This is the
// product's literal contract: liabilities are added, not subtracted, and
// zero-valued sections are excluded.
func NetWorth(totalIncomes, totalAssets, totalLiabilities, totalSources float64) float64 {
	var net float64
	for _, total := range []float64{totalIncomes, totalAssets, totalLiabilities, totalSources} {
		if total > 0 {
			net += total
		}
	}
	return net
}

// Totals recomputes all derived aggregates from the current rows.
func (r *Record) Totals() Totals {
	incomes := make([]string, len(r.Incomes))
	for i, row := range r.Incomes {
		incomes[i] = row.Amount
	}
	assets := make([]string, len(r.Assets))
	for i, row := range r.Assets {
		assets[i] = row.Amount
	}
	liabilities := make([]string, len(r.Liabilities))
	for i, row := range r.Liabilities {
		liabilities[i] = row.Amount
	}
	sources := make([]string, len(r.Sources))
	for i, row := range r.Sources {
		sources[i] = row.Amount
	}

	t := Totals{
		TotalIncomes:     sumAmounts(incomes),
		TotalAssets:      sumAmounts(assets),
		TotalLiabilities: sumAmounts(liabilities),
		TotalSources:     sumAmounts(sources),
	}
	t.NetWorth = NetWorth(t.TotalIncomes, t.TotalAssets, t.TotalLiabilities, t.TotalSources)
	return t
}

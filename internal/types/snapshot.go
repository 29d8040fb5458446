package types

// Snapshot is a flat read-only view of a company's fundamental and descriptive
// attributes. It is populated by an external ingestion process; scanners only
// read it and enrich a copy of it on match.
type Snapshot struct {
	ID                int64  `json:"id"`
	Symbol            string `json:"symbol"`
	LongName          string `json:"longname"`
	Exchange          string `json:"exchange"`
	Sector            string `json:"sector"`
	Industry          string `json:"industry"`
	Country           string `json:"country"`
	RecommendationKey string `json:"recommendationkey"`
	IsActive          bool   `json:"isactive"`

	MarketCap    float64 `json:"marketcap"`
	CurrentPrice float64 `json:"currentprice"`

	// Valuation
	TrailingPE         *float64 `json:"trailingpe"`
	ForwardPE          *float64 `json:"forwardpe"`
	TrailingPegRatio   *float64 `json:"trailingpegratio"`
	PriceToSalesTTM    *float64 `json:"pricetosalestrailing12months"`
	PriceToBook        *float64 `json:"pricetobook"`
	EnterpriseToEbitda *float64 `json:"enterprisetoebitda"`
	BookValue          *float64 `json:"bookvalue"`

	// Profitability and growth. Ratios are stored as fractions (0.1 = 10%).
	ReturnOnEquity          *float64 `json:"returnonequity"`
	ReturnOnAssets          *float64 `json:"returnonassets"`
	ProfitMargins           *float64 `json:"profitmargins"`
	GrossMargins            *float64 `json:"grossmargins"`
	OperatingMargins        *float64 `json:"operatingmargins"`
	EarningsQuarterlyGrowth *float64 `json:"earningsquarterlygrowth"`
	RevenueGrowth           *float64 `json:"revenuegrowth"`
	EpsCagr3Year            *float64 `json:"eps_cagr_3year"`

	// Financial health
	DebtToEquity  *float64 `json:"debttoequity"`
	CurrentRatio  *float64 `json:"currentratio"`
	PayoutRatio   *float64 `json:"payoutratio"`
	DividendYield *float64 `json:"dividendyield"`

	// Technical (precomputed by the ingestion process)
	Beta                          *float64 `json:"beta"`
	PriceRelativeTo52WeekHigh     *float64 `json:"price_relative_to_52week_high"`
	RelativeStrengthPercentile252 *float64 `json:"relative_strength_percentile_252"`
	RelativeStrengthPercentile126 *float64 `json:"relative_strength_percentile_126"`
	RelativeStrengthPercentile63  *float64 `json:"relative_strength_percentile_63"`
	FiftyTwoWeekChange            *float64 `json:"_52weekchange"`
}

// snapshotColumnOrder is the canonical order of snapshot-derived columns in a
// result table. Scanner-added columns come after, sorted by name.
var snapshotColumnOrder = []string{
	"symbol", "longname", "exchange", "sector", "industry", "country",
	"recommendationkey", "marketcap", "currentprice",
	"trailingpe", "forwardpe", "trailingpegratio",
	"pricetosalestrailing12months", "pricetobook", "enterprisetoebitda",
	"bookvalue",
	"returnonequity", "returnonassets", "profitmargins", "grossmargins",
	"operatingmargins", "earningsquarterlygrowth", "revenuegrowth",
	"eps_cagr_3year",
	"debttoequity", "currentratio", "payoutratio", "dividendyield",
	"beta", "price_relative_to_52week_high",
	"relative_strength_percentile_252", "relative_strength_percentile_126",
	"relative_strength_percentile_63", "_52weekchange",
}

// Record flattens the snapshot into a result record. Internal bookkeeping
// fields (id, isactive) are intentionally left out, mirroring what the result
// table exposes to callers. Nil attributes are omitted.
func (s Snapshot) Record() Record {
	rec := Record{
		"symbol":            s.Symbol,
		"longname":          s.LongName,
		"exchange":          s.Exchange,
		"sector":            s.Sector,
		"industry":          s.Industry,
		"country":           s.Country,
		"recommendationkey": s.RecommendationKey,
		"marketcap":         s.MarketCap,
		"currentprice":      s.CurrentPrice,
	}

	optionals := map[string]*float64{
		"trailingpe":                       s.TrailingPE,
		"forwardpe":                        s.ForwardPE,
		"trailingpegratio":                 s.TrailingPegRatio,
		"pricetosalestrailing12months":     s.PriceToSalesTTM,
		"pricetobook":                      s.PriceToBook,
		"enterprisetoebitda":               s.EnterpriseToEbitda,
		"bookvalue":                        s.BookValue,
		"returnonequity":                   s.ReturnOnEquity,
		"returnonassets":                   s.ReturnOnAssets,
		"profitmargins":                    s.ProfitMargins,
		"grossmargins":                     s.GrossMargins,
		"operatingmargins":                 s.OperatingMargins,
		"earningsquarterlygrowth":          s.EarningsQuarterlyGrowth,
		"revenuegrowth":                    s.RevenueGrowth,
		"eps_cagr_3year":                   s.EpsCagr3Year,
		"debttoequity":                     s.DebtToEquity,
		"currentratio":                     s.CurrentRatio,
		"payoutratio":                      s.PayoutRatio,
		"dividendyield":                    s.DividendYield,
		"beta":                             s.Beta,
		"price_relative_to_52week_high":    s.PriceRelativeTo52WeekHigh,
		"relative_strength_percentile_252": s.RelativeStrengthPercentile252,
		"relative_strength_percentile_126": s.RelativeStrengthPercentile126,
		"relative_strength_percentile_63":  s.RelativeStrengthPercentile63,
		"_52weekchange":                    s.FiftyTwoWeekChange,
	}

	for name, value := range optionals {
		if value != nil {
			rec[name] = *value
		}
	}

	return rec
}

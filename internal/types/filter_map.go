package types

// FilterSource says where a filter attribute is evaluated.
type FilterSource string

const (
	// SourceDB filters are pushed into the candidate query.
	SourceDB FilterSource = "db"
	// SourceTech filters are computed from price history per company.
	SourceTech FilterSource = "tech"
)

// ValueKind describes how a filter's right-hand side is interpreted.
type ValueKind string

const (
	// KindNumeric compares the stored value against the user value as-is.
	KindNumeric ValueKind = "numeric"
	// KindPercentage attributes are stored as fractions (0.1 for 10%); the
	// user value is given in percent and divided by 100 before comparison.
	KindPercentage ValueKind = "percentage"
	// KindPercentageRaw attributes are stored already scaled to percent.
	KindPercentageRaw ValueKind = "percentage_raw"
	// KindCategory attributes are strings matched with == or in.
	KindCategory ValueKind = "category"
	// KindCrossover filters match a signal line crossing between the last
	// two bars rather than a scalar threshold.
	KindCrossover ValueKind = "crossover"
	// KindCrossoverValue filters accept both crossover and threshold ops.
	KindCrossoverValue ValueKind = "crossover_value"
)

// FilterInfo is the static metadata for one recognized filter name.
type FilterInfo struct {
	Source FilterSource
	Kind   ValueKind
	// Column is the company table column for db filters; empty for tech.
	Column string
	// ParamNames lists the indicator parameters a tech filter accepts.
	ParamNames []string
}

// FilterMap maps the filter names users may reference to their metadata.
// Names absent from this map are ignored by the filter engine, so a typo in
// a saved screen degrades to a broader result instead of an error.
var FilterMap = map[string]FilterInfo{
	// Descriptive
	"marketcap":         {Source: SourceDB, Kind: KindNumeric, Column: "marketcap"},
	"dividendyield":     {Source: SourceDB, Kind: KindPercentage, Column: "dividendyield"},
	"currentprice":      {Source: SourceDB, Kind: KindNumeric, Column: "currentprice"},
	"industry":          {Source: SourceDB, Kind: KindCategory, Column: "industry"},
	"sector":            {Source: SourceDB, Kind: KindCategory, Column: "sector"},
	"country":           {Source: SourceDB, Kind: KindCategory, Column: "country"},
	"recommendationkey": {Source: SourceDB, Kind: KindCategory, Column: "recommendationkey"},

	// Valuation
	"trailingpe":                   {Source: SourceDB, Kind: KindNumeric, Column: "trailingpe"},
	"forwardpe":                    {Source: SourceDB, Kind: KindNumeric, Column: "forwardpe"},
	"trailingpegratio":             {Source: SourceDB, Kind: KindNumeric, Column: "trailingpegratio"},
	"pricetosalestrailing12months": {Source: SourceDB, Kind: KindNumeric, Column: "pricetosalestrailing12months"},
	"pricetobook":                  {Source: SourceDB, Kind: KindNumeric, Column: "pricetobook"},
	"bookvalue":                    {Source: SourceDB, Kind: KindNumeric, Column: "bookvalue"},
	"enterprisetoebitda":           {Source: SourceDB, Kind: KindNumeric, Column: "enterprisetoebitda"},

	// Profitability and growth
	"returnonequity":          {Source: SourceDB, Kind: KindPercentage, Column: "returnonequity"},
	"returnonassets":          {Source: SourceDB, Kind: KindPercentage, Column: "returnonassets"},
	"profitmargins":           {Source: SourceDB, Kind: KindPercentage, Column: "profitmargins"},
	"grossmargins":            {Source: SourceDB, Kind: KindPercentage, Column: "grossmargins"},
	"operatingmargins":        {Source: SourceDB, Kind: KindPercentage, Column: "operatingmargins"},
	"earningsquarterlygrowth": {Source: SourceDB, Kind: KindPercentage, Column: "earningsquarterlygrowth"},
	"revenuegrowth":           {Source: SourceDB, Kind: KindPercentage, Column: "revenuegrowth"},
	"eps_cagr_3year":          {Source: SourceDB, Kind: KindPercentage, Column: "eps_cagr_3year"},

	// Financial health
	"debttoequity": {Source: SourceDB, Kind: KindNumeric, Column: "debttoequity"},
	"currentratio": {Source: SourceDB, Kind: KindNumeric, Column: "currentratio"},
	"payoutratio":  {Source: SourceDB, Kind: KindPercentage, Column: "payoutratio"},

	// Technical, precomputed by ingestion
	"beta":                             {Source: SourceDB, Kind: KindNumeric, Column: "beta"},
	"price_relative_to_52week_high":    {Source: SourceDB, Kind: KindPercentageRaw, Column: "price_relative_to_52week_high"},
	"relative_strength_percentile_252": {Source: SourceDB, Kind: KindNumeric, Column: "relative_strength_percentile_252"},
	"relative_strength_percentile_126": {Source: SourceDB, Kind: KindNumeric, Column: "relative_strength_percentile_126"},
	"relative_strength_percentile_63":  {Source: SourceDB, Kind: KindNumeric, Column: "relative_strength_percentile_63"},
	"_52weekchange":                    {Source: SourceDB, Kind: KindPercentage, Column: "_52weekchange"},

	// Technical, computed on the fly from price history
	"sma":    {Source: SourceTech, Kind: KindNumeric, ParamNames: []string{"period"}},
	"ema":    {Source: SourceTech, Kind: KindNumeric, ParamNames: []string{"period"}},
	"rsi":    {Source: SourceTech, Kind: KindNumeric, ParamNames: []string{"period"}},
	"adx":    {Source: SourceTech, Kind: KindNumeric, ParamNames: []string{"period"}},
	"macd":   {Source: SourceTech, Kind: KindCrossover, ParamNames: []string{"fastperiod", "slowperiod", "signalperiod"}},
	"stoch":  {Source: SourceTech, Kind: KindCrossoverValue, ParamNames: []string{"fastk_period", "slowk_period", "slowd_period"}},
	"bbands": {Source: SourceTech, Kind: KindCrossover, ParamNames: []string{"period", "nbdevup", "nbdevdn"}},
}

// SplitFilters partitions filter specs into database-evaluable and
// technical subsets. Malformed specs and unrecognized names are dropped.
func SplitFilters(filters []FilterSpec) (dbFilters, techFilters []FilterSpec) {
	for _, f := range filters {
		if f.Malformed() {
			continue
		}

		info, ok := FilterMap[f.Name]
		if !ok {
			continue
		}

		switch info.Source {
		case SourceDB:
			dbFilters = append(dbFilters, f)
		case SourceTech:
			techFilters = append(techFilters, f)
		}
	}

	return dbFilters, techFilters
}

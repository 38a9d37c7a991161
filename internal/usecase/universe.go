package usecase

// DefaultUniverse is the candidate pool screened when no custom universe is
// configured. Large-cap US names keep provider quotas predictable.
var DefaultUniverse = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA", "BRK.B", "JPM", "V",
	"JNJ", "WMT", "PG", "MA", "UNH", "HD", "DIS", "BAC", "ADBE", "CRM",
	"NFLX", "PYPL", "INTC", "CSCO", "PFE", "TMO", "ABT", "ABBV", "ACN", "MCD",
	"NKE", "MRK", "PEP", "KO", "COST", "AVGO", "TXN", "QCOM", "HON", "UPS",
	"AMD", "IBM", "ORCL", "NOW", "AMAT", "MU", "LRCX", "ADI", "MCHP", "FISV",
}

// trendingCount is how many universe leaders the trending endpoint reports.
const trendingCount = 10

package ai

import (
	"fmt"
	"sort"
	"strings"

	"StockAI/internal/domain/models"
)

// FallbackMessage is returned whenever the LLM provider is unavailable or
// answers with something unusable. Provider errors never reach the caller.
const FallbackMessage = "AI analysis temporarily unavailable. Please try again later."

// metricDescriptions seeds the explain-metric prompt with a vetted baseline so
// the model doesn't hallucinate definitions for well-known ratios.
var metricDescriptions = map[string]string{
	models.KeyPERatio:        "Price-to-Earnings ratio measures a company's current share price relative to its earnings per share. Lower values may indicate undervaluation.",
	models.KeyMarketCap:      "Market capitalization represents the total market value of a company's outstanding shares. It indicates company size.",
	models.KeyDividendYield:  "Dividend yield shows the annual dividend payment as a percentage of the stock price.",
	models.KeyEPS:            "Earnings Per Share indicates a company's profitability on a per-share basis.",
	models.KeyRevenueGrowth:  "Revenue growth shows how much a company's revenue has increased over time, indicating business momentum.",
	models.KeyProfitMargin:   "Profit margin measures what percentage of revenue becomes profit after all expenses.",
	models.KeyReturnOnEquity: "Return on Equity measures how efficiently a company uses shareholder equity to generate profits.",
	models.KeyRSI14:          "Relative Strength Index (14-day) measures momentum. Values above 70 may indicate overbought, below 30 may indicate oversold.",
}

func chatPrompt(context, userMessage string) string {
	if context == "" {
		context = "No specific stock context provided."
	}
	return fmt.Sprintf(`You are a helpful financial assistant. Use the following context to answer the user's question.

Context:
%s

User Question: %s

Provide a helpful, accurate, and concise response. If you're providing investment advice, include appropriate disclaimers.`, context, userMessage)
}

func explainMetricPrompt(metric string, value interface{}) string {
	base, ok := metricDescriptions[metric]
	if !ok {
		base = fmt.Sprintf("The %s metric is a financial measure used to evaluate stocks.", metric)
	}
	return fmt.Sprintf(`Explain what %s means for a stock. Current value: %v

%s

Provide a clear explanation in 2-3 sentences.`, metric, value, base)
}

func summarizePrompt(quote models.StockRecord, profile *models.ProfileRecord) string {
	sector, industry := "N/A", "N/A"
	if profile != nil {
		if profile.Sector != "" {
			sector = profile.Sector
		}
		if profile.Industry != "" {
			industry = profile.Industry
		}
	}
	return fmt.Sprintf(`Summarize this stock in a brief overview:

Symbol: %v
Name: %v
Price: $%v
Change: %v%%
Market Cap: %v
Sector: %s
Industry: %s

Provide a 2-3 sentence summary covering the business, recent performance, and key characteristics.`,
		orNA(quote[models.KeySymbol]), orNA(quote[models.KeyName]), orNA(quote[models.KeyPrice]),
		orNA(quote[models.KeyChangePercent]), orNA(quote[models.KeyMarketCap]), sector, industry)
}

func analyzeStockPrompt(quote models.StockRecord, profile *models.ProfileRecord) string {
	description := "N/A"
	if profile != nil && profile.Description != "" {
		description = profile.Description
	}
	return fmt.Sprintf(`Analyze this stock and provide insights:

%s

Description: %s

Provide analysis in JSON format with keys: outlook (bullish/bearish/neutral), key_strengths (array of 2-3 points), key_risks (array of 2-3 points), recommendation (buy/hold/sell)`,
		RecordContext(quote), description)
}

func sentimentPrompt(quote models.StockRecord) string {
	return fmt.Sprintf(`Analyze market sentiment for this stock:

%s

Return JSON with: overall_sentiment (bullish/bearish/neutral), momentum (strong/moderate/weak), and key_factors (array of 2-3 factors affecting sentiment)`,
		RecordContext(quote))
}

func fundamentalsPrompt(quote models.StockRecord) string {
	return fmt.Sprintf(`Analyze fundamentals for this stock:

%s

Return JSON with: valuation (undervalued/fair/overvalued), financial_health (strong/moderate/weak), growth_prospects (high/moderate/low)`,
		RecordContext(quote))
}

func reportPrompt(quote models.StockRecord, analysis *StockAnalysis) string {
	summary := "N/A"
	if analysis != nil {
		summary = fmt.Sprintf("outlook: %s, strengths: %s, risks: %s, recommendation: %s",
			analysis.Outlook,
			strings.Join(analysis.KeyStrengths, "; "),
			strings.Join(analysis.KeyRisks, "; "),
			analysis.Recommendation)
	}
	return fmt.Sprintf(`Generate a professional stock analysis report for %v (%v)

Current Price: $%v
Market Cap: %v
PE Ratio: %v
52-Week Range: $%v - $%v

AI Analysis Summary:
%s

Generate a comprehensive report with sections: Executive Summary, Financial Overview, AI Insights, and Outlook.`,
		orNA(quote[models.KeySymbol]), orNA(quote[models.KeyName]), orNA(quote[models.KeyPrice]),
		orNA(quote[models.KeyMarketCap]), orNA(quote[models.KeyPERatio]),
		orNA(quote[models.KeyLow52W]), orNA(quote[models.KeyHigh52W]), summary)
}

func interpretQueryPrompt(query string) string {
	return fmt.Sprintf(`Interpret this natural language stock screener query and convert to filters:

Query: %q

Return JSON with:
- filters: object with appropriate filter conditions (min/max values where applicable)
- explanation: brief description of what the query means

Example format:
{"filters": {"market_cap": {"min": 1000000000}, "pe_ratio": {"max": 20}}, "explanation": "Large cap stocks with P/E under 20"}`, query)
}

// RecordContext renders a record as deterministic "key: value" lines for
// prompt context. Keys are sorted so identical records yield identical prompts.
func RecordContext(record models.StockRecord) string {
	keys := make([]string, 0, len(record))
	for k, v := range record {
		if v == nil {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, record[k]))
	}
	return strings.Join(lines, "\n")
}

func orNA(v interface{}) interface{} {
	if v == nil {
		return "N/A"
	}
	return v
}

package sources

var googleSeeds = []seed{
	{
		headline: "Wheat Prices Surge 8% on Export Ban Fears from Major Supplier",
		summary:  "Wheat futures jumped 8% after rumors of potential export restrictions from Russia. Traders are repositioning ahead of official announcement.",
		url:      "https://example.com/wheat-prices",
		country:  "Global",
		tickers:  []string{"WHEAT"},
		tags:     []string{"agriculture", "grains"},
	},
	{
		headline: "India Rice Export Deal: 500,000 Tonnes to Middle East at Premium Prices",
		summary:  "Major export contract signed as Indian suppliers secure $15 premium per tonne. Market expects similar deals, pushing prices higher.",
		url:      "https://example.com/rice-exports",
		country:  "India",
		tickers:  []string{"RICE"},
		tags:     []string{"agriculture", "grains"},
	},
	{
		headline: "Drought Warning: Corn Production Forecast Cut by 12% in US Midwest",
		summary:  "USDA revises crop estimates downward as severe drought continues affecting yield. Corn futures up 6% in overnight trading.",
		url:      "https://example.com/corn-drought",
		country:  "USA",
		tickers:  []string{"CORN"},
		tags:     []string{"weather", "agriculture"},
	},
	{
		headline: "China Increases Soybean Import Quota by 2 Million Tonnes Amid Supply Shortage",
		summary:  "Government expands import quotas to meet domestic demand, benefiting US and Brazil exporters. Prices expected to firm up.",
		url:      "https://example.com/soybean-import",
		country:  "China",
		tickers:  []string{"SOYBEAN"},
		tags:     []string{"agriculture", "trade"},
	},
	{
		headline: "Black Sea Grain Corridor Reopens: Wheat Prices Drop 4% on Supply Relief",
		summary:  "Ukraine and Russia reach temporary agreement allowing grain shipments to resume. Traders expect 3-4 million tonnes in next quarter.",
		url:      "https://example.com/grain-corridor",
		country:  "Ukraine",
		tickers:  []string{"WHEAT"},
		tags:     []string{"agriculture", "geopolitics"},
	},
}

var perplexitySeeds = []seed{
	{
		headline: "Soybean Exports Reach Record High This Quarter",
		summary:  "Soybean exports have reached unprecedented levels.",
		country:  "Brazil",
		tickers:  []string{"SOYBEAN"},
		tags:     []string{"agriculture", "grains"},
	},
	{
		headline: "Cotton Prices Stabilize After Volatile Week",
		summary:  "Cotton commodity prices have stabilized following market volatility.",
		country:  "India",
		tickers:  []string{"COTTON"},
		tags:     []string{"agriculture"},
	},
	{
		headline: "Gold Reaches New Peak Amid Economic Uncertainty",
		summary:  "Gold prices have surged to new highs as investors seek safe havens.",
		country:  "Global",
		tickers:  []string{"GOLD"},
		tags:     []string{"metals"},
	},
}

var baiduSeeds = []seed{
	{
		headline: "China's Agricultural Output Exceeds Expectations",
		summary:  "China's agricultural sector reports higher than expected output.",
		url:      "https://news.baidu.com/example1",
		country:  "China",
		tickers:  []string{"RICE", "WHEAT"},
		tags:     []string{"agriculture", "grains"},
	},
	{
		headline: "Copper Demand Surges in Asian Markets",
		summary:  "Asian markets show increased demand for copper.",
		url:      "https://news.baidu.com/example2",
		country:  "China",
		tickers:  []string{"COPPER"},
		tags:     []string{"metals"},
	},
	{
		headline: "Weather Patterns Affect Rice Production in Southeast Asia",
		summary:  "Unusual weather patterns are impacting rice production.",
		url:      "https://news.baidu.com/example3",
		country:  "China",
		tickers:  []string{"RICE"},
		tags:     []string{"weather", "agriculture", "grains"},
	},
	{
		headline: "Natural Gas Prices Rise Amid Winter Demand",
		summary:  "Natural gas prices increase as winter approaches.",
		url:      "https://news.baidu.com/example4",
		country:  "China",
		tickers:  []string{"NATGAS"},
		tags:     []string{"energy"},
	},
}

var zeeBusinessSeeds = []seed{
	{
		headline: "Gold Prices Today: Yellow Metal Rises on Festive Demand",
		summary:  "Gold prices increased today driven by strong festive season demand.",
		url:      "https://www.zeebiz.com/commodities/gold-prices-today",
		country:  "India",
		tickers:  []string{"GOLD"},
		tags:     []string{"metals"},
	},
	{
		headline: "Crude Oil Prices Surge Amid Global Supply Concerns",
		summary:  "Crude oil prices jumped 3% as supply concerns intensify.",
		url:      "https://www.zeebiz.com/commodities/crude-oil-prices",
		country:  "India",
		tickers:  []string{"CRUDE"},
		tags:     []string{"energy"},
	},
	{
		headline: "Silver Outlook: Experts Predict Rally in Coming Weeks",
		summary:  "Market experts forecast a potential rally in silver prices.",
		url:      "https://www.zeebiz.com/commodities/silver-outlook",
		country:  "India",
		tickers:  []string{"SILVER"},
		tags:     []string{"metals"},
	},
	{
		headline: "Cotton Exports Hit Record High This Season",
		summary:  "India's cotton exports reached unprecedented levels this season.",
		url:      "https://www.zeebiz.com/commodities/cotton-exports",
		country:  "India",
		tickers:  []string{"COTTON"},
		tags:     []string{"agriculture"},
	},
}

var agroPortalSeeds = []seed{
	{
		headline: "New Irrigation Technology Boosts Crop Yields by 30%",
		summary:  "Revolutionary irrigation system shows promising results in field trials.",
		url:      "https://agrinews.com/example1",
		country:  "USA",
		tickers:  []string{"WHEAT", "CORN"},
		tags:     []string{"agriculture", "grains"},
	},
	{
		headline: "Organic Farming Practices Gain Momentum Globally",
		summary:  "Farmers worldwide are increasingly adopting organic farming methods.",
		url:      "https://farmprogress.com/example2",
		country:  "Global",
		tickers:  []string{"SOYBEAN"},
		tags:     []string{"agriculture"},
	},
	{
		headline: "Drought Conditions Threaten Major Agricultural Regions",
		summary:  "Severe drought conditions are affecting key agricultural areas.",
		url:      "https://croplife.com/example3",
		country:  "USA",
		tickers:  []string{"WHEAT", "CORN", "SOYBEAN"},
		tags:     []string{"weather", "agriculture", "grains"},
	},
	{
		headline: "Livestock Prices Stabilize After Market Volatility",
		summary:  "Cattle and livestock prices show signs of stabilization.",
		url:      "https://agfunder.com/example4",
		country:  "Australia",
		tags:     []string{"livestock", "agriculture"},
	},
	{
		headline: "Rice Production Forecast Revised Upward for 2025",
		summary:  "Global rice production estimates have been revised higher.",
		url:      "https://agrinews.com/example5",
		country:  "India",
		tickers:  []string{"RICE"},
		tags:     []string{"agriculture", "grains"},
	},
	{
		headline: "Climate Change Impact on Dairy Industry Analyzed",
		summary:  "New study examines how climate change affects dairy production.",
		url:      "https://farmprogress.com/example6",
		country:  "Global",
		tags:     []string{"dairy", "weather", "agriculture"},
	},
}

var finnhubSeeds = []seed{
	{
		headline: "Oil Prices Climb as Producers Extend Output Cuts",
		summary:  "Crude benchmarks rose after major producers agreed to keep supply curbs in place.",
		url:      "https://finnhub.io/example1",
		country:  "Global",
		tickers:  []string{"CRUDE"},
		tags:     []string{"energy"},
	},
	{
		headline: "Gold Holds Near Record as Dollar Weakens",
		summary:  "Bullion demand stayed firm while the dollar slipped against major currencies.",
		url:      "https://finnhub.io/example2",
		country:  "Global",
		tickers:  []string{"GOLD"},
		tags:     []string{"metals"},
	},
}

// Package seed holds the premade learning module catalog used to bootstrap a
// fresh installation.
package seed

import "finlearn/internal/domain"

// PremadeModules returns the built-in catalog. IDs and timestamps are assigned
// by the seeder; titles act as the natural key for idempotent upserts.
func PremadeModules() []*domain.LearningModule {
	return []*domain.LearningModule{
		{
			Title:         "Introduction to Investing",
			Description:   "Learn the fundamentals of investing and how to get started with your first investment.",
			Topic:         "investing-basics",
			Difficulty:    domain.DifficultyBeginner,
			EstimatedTime: "20 minutes",
			Content: domain.ModuleContent{
				Objectives: []string{
					"Understand what investing means and why it's important",
					"Learn about different types of investments",
					"Know how to start investing with small amounts",
					"Understand the concept of risk vs return",
				},
				Sections: []domain.ContentSection{
					{
						Section: "What is Investing?",
						Text:    "Investing is the act of putting money into financial schemes, shares, property, or a commercial venture with the expectation of achieving a profit. Unlike saving, which preserves your money, investing aims to grow your wealth over time through compound interest and capital appreciation.",
						Examples: []string{
							"Buying stocks of companies you believe will grow",
							"Investing in real estate properties",
							"Putting money into retirement accounts like 401(k)s",
						},
					},
					{
						Section: "Types of Investments",
						Text:    "There are several main types of investments: stocks (ownership in companies), bonds (loans to governments or corporations), mutual funds (collections of stocks and bonds), ETFs (exchange-traded funds), and real estate. Each has different risk levels and potential returns.",
						Examples: []string{
							"Stocks: Apple, Microsoft, Tesla shares",
							"Bonds: US Treasury bonds, corporate bonds",
							"Mutual Funds: S&P 500 index funds",
						},
					},
				},
				KeyTakeaways: []string{
					"Start investing early to benefit from compound interest",
					"Diversify your investments to reduce risk",
					"Only invest money you can afford to lose",
					"Consider your risk tolerance and investment timeline",
				},
				PracticeQuestions: []domain.PracticeQuestion{
					{
						Question: "What is the main difference between saving and investing?",
						Options: []string{
							"Saving preserves money, investing aims to grow it",
							"There is no difference",
							"Saving is riskier than investing",
							"Investing is only for rich people",
						},
						CorrectAnswer: 0,
						Explanation:   "Saving preserves your money in safe accounts, while investing aims to grow your wealth over time through various financial instruments.",
					},
				},
				Resources: []string{
					"Investopedia: Introduction to Investing",
					"SEC: Investor.gov - Getting Started",
				},
			},
		},
		{
			Title:         "Understanding Stocks",
			Description:   "Dive deep into how stocks work, what affects their prices, and how to analyze them.",
			Topic:         "stocks",
			Difficulty:    domain.DifficultyIntermediate,
			EstimatedTime: "25 minutes",
			Content: domain.ModuleContent{
				Objectives: []string{
					"Understand how stocks represent ownership in companies",
					"Learn what factors influence stock prices",
					"Know how to read basic financial statements",
					"Understand different stock analysis methods",
				},
				Sections: []domain.ContentSection{
					{
						Section: "What Are Stocks?",
						Text:    "Stocks represent ownership shares in a company. When you buy a stock, you become a partial owner of that company. Stock prices fluctuate based on supply and demand, company performance, market conditions, and investor sentiment.",
						Examples: []string{
							"Buying 100 shares of Apple makes you a partial owner",
							"Stock prices change throughout the trading day",
							"Companies can pay dividends to shareholders",
						},
					},
					{
						Section: "Stock Analysis",
						Text:    "There are two main approaches to stock analysis: fundamental analysis (examining company financials, management, and industry) and technical analysis (studying price charts and patterns). Both methods help investors make informed decisions.",
						Examples: []string{
							"Fundamental: Analyzing P/E ratios, revenue growth",
							"Technical: Looking at moving averages, support/resistance levels",
						},
					},
				},
				KeyTakeaways: []string{
					"Stocks represent ownership in companies",
					"Stock prices are influenced by many factors",
					"Both fundamental and technical analysis have value",
					"Diversification reduces individual stock risk",
				},
				PracticeQuestions: []domain.PracticeQuestion{
					{
						Question: "What does it mean when you own 100 shares of a company?",
						Options: []string{
							"You own 100% of the company",
							"You are a partial owner of the company",
							"You owe the company money",
							"You have a 100-year contract with the company",
						},
						CorrectAnswer: 1,
						Explanation:   "Owning shares means you have partial ownership in the company proportional to the number of shares you own.",
					},
				},
				Resources: []string{
					"Yahoo Finance: Stock Research Tools",
					"Morningstar: Stock Analysis Reports",
				},
			},
		},
		{
			Title:         "Portfolio Diversification",
			Description:   "Learn how to spread risk across different investments to protect your portfolio.",
			Topic:         "portfolio-management",
			Difficulty:    domain.DifficultyIntermediate,
			EstimatedTime: "30 minutes",
			Content: domain.ModuleContent{
				Objectives: []string{
					"Understand the concept of diversification",
					"Learn how to build a diversified portfolio",
					"Know the benefits and limitations of diversification",
					"Understand asset allocation strategies",
				},
				Sections: []domain.ContentSection{
					{
						Section: "What is Diversification?",
						Text:    "Diversification is the practice of spreading your investments across different asset classes, industries, and geographic regions to reduce risk. The idea is that if one investment performs poorly, others may perform well, balancing out your overall returns.",
						Examples: []string{
							"Investing in both stocks and bonds",
							"Holding stocks from different industries",
							"Including international investments",
						},
					},
					{
						Section: "Asset Allocation",
						Text:    "Asset allocation is the process of deciding how to distribute your investments among different asset classes. Common strategies include the 60/40 rule (60% stocks, 40% bonds) or age-based allocation (100 - your age = percentage in stocks).",
						Examples: []string{
							"Conservative: 30% stocks, 70% bonds",
							"Moderate: 60% stocks, 40% bonds",
							"Aggressive: 80% stocks, 20% bonds",
						},
					},
				},
				KeyTakeaways: []string{
					"Don't put all your eggs in one basket",
					"Diversification reduces unsystematic risk",
					"Asset allocation should match your risk tolerance",
					"Rebalance your portfolio periodically",
				},
				PracticeQuestions: []domain.PracticeQuestion{
					{
						Question: "What is the main benefit of portfolio diversification?",
						Options: []string{
							"It guarantees higher returns",
							"It reduces risk by spreading investments",
							"It eliminates all investment risk",
							"It makes investing easier",
						},
						CorrectAnswer: 1,
						Explanation:   "Diversification reduces risk by spreading investments across different assets, but it doesn't guarantee higher returns or eliminate all risk.",
					},
				},
				Resources: []string{
					"Vanguard: Portfolio Diversification Guide",
					"Bogleheads: Asset Allocation",
				},
			},
		},
		{
			Title:         "Cryptocurrency Fundamentals",
			Description:   "Understand blockchain technology and how digital currencies work.",
			Topic:         "crypto",
			Difficulty:    domain.DifficultyBeginner,
			EstimatedTime: "25 minutes",
			Content: domain.ModuleContent{
				Objectives: []string{
					"Understand what cryptocurrency is",
					"Learn about blockchain technology",
					"Know the risks and benefits of crypto investing",
					"Understand how to safely store cryptocurrencies",
				},
				Sections: []domain.ContentSection{
					{
						Section: "What is Cryptocurrency?",
						Text:    "Cryptocurrency is digital or virtual currency that uses cryptography for security and operates on decentralized networks based on blockchain technology. Unlike traditional currencies, cryptocurrencies are not controlled by any central authority.",
						Examples: []string{
							"Bitcoin - the first and most well-known cryptocurrency",
							"Ethereum - a platform for smart contracts",
							"Litecoin - often called 'digital silver'",
						},
					},
					{
						Section: "Blockchain Technology",
						Text:    "Blockchain is a distributed ledger technology that maintains a continuously growing list of records (blocks) that are linked and secured using cryptography. It's the underlying technology that makes cryptocurrencies possible.",
						Examples: []string{
							"Each block contains transaction data",
							"Blocks are connected in a chain",
							"The ledger is maintained by a network of computers",
						},
					},
				},
				KeyTakeaways: []string{
					"Cryptocurrency is highly volatile and risky",
					"Only invest what you can afford to lose",
					"Use secure wallets to store your crypto",
					"Do thorough research before investing",
				},
				PracticeQuestions: []domain.PracticeQuestion{
					{
						Question: "What makes cryptocurrency different from traditional money?",
						Options: []string{
							"It's always worth more",
							"It's controlled by central banks",
							"It's decentralized and not controlled by any authority",
							"It's only used online",
						},
						CorrectAnswer: 2,
						Explanation:   "Cryptocurrency is decentralized, meaning it's not controlled by any central authority like a government or bank.",
					},
				},
				Resources: []string{
					"Coinbase Learn: Cryptocurrency Basics",
					"Binance Academy: Blockchain Education",
				},
			},
		},
		{
			Title:         "Advanced Trading Strategies",
			Description:   "Master sophisticated trading techniques used by professional investors.",
			Topic:         "trading",
			Difficulty:    domain.DifficultyAdvanced,
			EstimatedTime: "40 minutes",
			Content: domain.ModuleContent{
				Objectives: []string{
					"Understand advanced trading strategies",
					"Learn about options and derivatives",
					"Know how to manage trading risks",
					"Understand market timing and technical indicators",
				},
				Sections: []domain.ContentSection{
					{
						Section: "Options Trading",
						Text:    "Options are financial derivatives that give you the right, but not the obligation, to buy or sell an asset at a specific price within a certain time frame. They can be used for hedging, speculation, or generating income.",
						Examples: []string{
							"Call options - right to buy at strike price",
							"Put options - right to sell at strike price",
							"Covered calls - selling calls on owned stock",
						},
					},
					{
						Section: "Risk Management",
						Text:    "Advanced traders use sophisticated risk management techniques including position sizing, stop-loss orders, portfolio hedging, and correlation analysis to protect their capital and manage downside risk.",
						Examples: []string{
							"Never risk more than 2% of portfolio on one trade",
							"Use stop-loss orders to limit losses",
							"Hedge positions with inverse ETFs or options",
						},
					},
				},
				KeyTakeaways: []string{
					"Advanced strategies require significant knowledge",
					"Risk management is crucial for success",
					"Options can amplify both gains and losses",
					"Professional trading requires discipline and education",
				},
				PracticeQuestions: []domain.PracticeQuestion{
					{
						Question: "What is the main advantage of using options for hedging?",
						Options: []string{
							"Options always make money",
							"Options provide leverage and flexibility",
							"Options are risk-free",
							"Options are easier than stocks",
						},
						CorrectAnswer: 1,
						Explanation:   "Options provide leverage and flexibility for hedging strategies, allowing traders to protect positions with limited capital.",
					},
				},
				Resources: []string{
					"CBOE: Options Education",
					"TastyTrade: Advanced Trading Strategies",
				},
			},
		},
	}
}

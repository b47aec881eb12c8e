package models

// Analytics response contract. Every field is always present: an empty
// dataset produces zero-valued scalars and empty (never null) arrays.

type PropertyTypeDistribution struct {
	PropertyType string  `json:"property_type"`
	Count        int     `json:"count"`
	TotalValue   float64 `json:"total_value"`
	AvgValue     float64 `json:"avg_value"`
}

type LocationDistribution struct {
	City  string `json:"city"`
	State string `json:"state"`
	Count int    `json:"count"`
}

type PropertyAnalytics struct {
	TotalProperties          int                        `json:"total_properties"`
	TotalValue               float64                    `json:"total_value"`
	AvgBedrooms              float64                    `json:"avg_bedrooms"`
	AvgBathrooms             float64                    `json:"avg_bathrooms"`
	AvgSquareFeet            float64                    `json:"avg_square_feet"`
	AvgLotSize               float64                    `json:"avg_lot_size"`
	MinSquareFeet            float64                    `json:"min_square_feet"`
	MaxSquareFeet            float64                    `json:"max_square_feet"`
	PropertyTypeDistribution []PropertyTypeDistribution `json:"property_type_distribution"`
	LocationDistribution     []LocationDistribution     `json:"location_distribution"`
}

type PriceBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

type MonthlySales struct {
	Month   string  `json:"month"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type AgentPerformance struct {
	AgentName    string  `json:"agent_name"`
	SalesCount   int     `json:"sales_count"`
	TotalRevenue float64 `json:"total_revenue"`
}

type PropertyTypePerformance struct {
	PropertyType string  `json:"property_type"`
	AvgPrice     float64 `json:"avg_price"`
	SalesCount   int     `json:"sales_count"`
}

type SalesAnalytics struct {
	TotalSales              int                       `json:"total_sales"`
	TotalRevenue            float64                   `json:"total_revenue"`
	AvgSalePrice            float64                   `json:"avg_sale_price"`
	PriceDistribution       []PriceBucket             `json:"price_distribution"`
	MonthlySales            []MonthlySales            `json:"monthly_sales"`
	TopAgents               []AgentPerformance        `json:"top_agents"`
	PropertyTypePerformance []PropertyTypePerformance `json:"property_type_performance"`
}

type RenovationTypeDistribution struct {
	RenovationType string  `json:"renovation_type"`
	Count          int     `json:"count"`
	AvgCost        float64 `json:"avg_cost"`
}

type StatusDistribution struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type MonthlyRenovations struct {
	Month     string  `json:"month"`
	Count     int     `json:"count"`
	TotalCost float64 `json:"total_cost"`
}

type PropertyTypeImpact struct {
	PropertyType     string  `json:"property_type"`
	RenovationCount  int     `json:"renovation_count"`
	AvgCost          float64 `json:"avg_cost"`
	AvgValueIncrease float64 `json:"avg_value_increase"`
}

type ContractorRanking struct {
	ContractorName  string  `json:"contractor_name"`
	RenovationCount int     `json:"renovation_count"`
	TotalCost       float64 `json:"total_cost"`
}

type RenovationAnalytics struct {
	TotalRenovations   int                          `json:"total_renovations"`
	TotalCost          float64                      `json:"total_cost"`
	AvgCost            float64                      `json:"avg_cost"`
	RenovationsByType  []RenovationTypeDistribution `json:"renovations_by_type"`
	StatusDistribution []StatusDistribution         `json:"status_distribution"`
	MonthlyRenovations []MonthlyRenovations         `json:"monthly_renovations"`
	PropertyTypeImpact []PropertyTypeImpact         `json:"property_type_impact"`
	TopContractors     []ContractorRanking          `json:"top_contractors"`
}

package analytics

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"estatedash/server/internal/models"
)

// TopRankingSize caps the top-agents and top-contractors rankings.
const TopRankingSize = 5

// AggregationError reports that a summary could not be computed. Aggregates
// are all-or-nothing: a partial response is never returned.
type AggregationError struct {
	Resource string
	Err      error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("failed to aggregate %s analytics: %v", e.Resource, e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}

// Service computes the per-resource aggregate summaries. Every summary is
// recomputed from the full dataset on each call.
type Service struct {
	db     *sql.DB
	logger *logrus.Logger
}

func NewService(db *sql.DB, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{db: db, logger: logger}
}

func (s *Service) GetPropertyAnalytics() (*models.PropertyAnalytics, error) {
	summary, err := s.propertyAnalytics()
	if err != nil {
		return nil, &AggregationError{Resource: "property", Err: err}
	}
	return summary, nil
}

func (s *Service) propertyAnalytics() (*models.PropertyAnalytics, error) {
	summary := &models.PropertyAnalytics{
		PropertyTypeDistribution: make([]models.PropertyTypeDistribution, 0),
		LocationDistribution:     make([]models.LocationDistribution, 0),
	}

	err := s.db.QueryRow(`
        SELECT
            COUNT(*),
            COALESCE(SUM(current_value), 0),
            COALESCE(AVG(bedrooms), 0),
            COALESCE(AVG(bathrooms), 0),
            COALESCE(AVG(square_feet), 0),
            COALESCE(AVG(lot_size), 0),
            COALESCE(MIN(square_feet), 0),
            COALESCE(MAX(square_feet), 0)
        FROM properties
    `).Scan(
		&summary.TotalProperties,
		&summary.TotalValue,
		&summary.AvgBedrooms,
		&summary.AvgBathrooms,
		&summary.AvgSquareFeet,
		&summary.AvgLotSize,
		&summary.MinSquareFeet,
		&summary.MaxSquareFeet,
	)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
        SELECT
            property_type,
            COUNT(*) as count,
            COALESCE(SUM(current_value), 0) as total_value,
            COALESCE(AVG(current_value), 0) as avg_value
        FROM properties
        GROUP BY property_type
        ORDER BY property_type
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.PropertyTypeDistribution
		if err := rows.Scan(&entry.PropertyType, &entry.Count, &entry.TotalValue, &entry.AvgValue); err != nil {
			return nil, err
		}
		summary.PropertyTypeDistribution = append(summary.PropertyTypeDistribution, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	locRows, err := s.db.Query(`
        SELECT city, state, COUNT(*) as count
        FROM properties
        GROUP BY city, state
        ORDER BY count DESC, city
    `)
	if err != nil {
		return nil, err
	}
	defer locRows.Close()

	for locRows.Next() {
		var entry models.LocationDistribution
		if err := locRows.Scan(&entry.City, &entry.State, &entry.Count); err != nil {
			return nil, err
		}
		summary.LocationDistribution = append(summary.LocationDistribution, entry)
	}
	if err := locRows.Err(); err != nil {
		return nil, err
	}

	return summary, nil
}

func (s *Service) GetSalesAnalytics() (*models.SalesAnalytics, error) {
	summary, err := s.salesAnalytics()
	if err != nil {
		return nil, &AggregationError{Resource: "sales", Err: err}
	}
	return summary, nil
}

func (s *Service) salesAnalytics() (*models.SalesAnalytics, error) {
	summary := &models.SalesAnalytics{
		PriceDistribution:       make([]models.PriceBucket, 0),
		MonthlySales:            make([]models.MonthlySales, 0),
		TopAgents:               make([]models.AgentPerformance, 0),
		PropertyTypePerformance: make([]models.PropertyTypePerformance, 0),
	}

	err := s.db.QueryRow(`
        SELECT
            COUNT(*),
            COALESCE(SUM(sale_price), 0),
            COALESCE(AVG(sale_price), 0)
        FROM sales
    `).Scan(&summary.TotalSales, &summary.TotalRevenue, &summary.AvgSalePrice)
	if err != nil {
		return nil, err
	}

	bucketRows, err := s.db.Query(`
        SELECT
            CASE
                WHEN sale_price < 200000 THEN 'Under $200K'
                WHEN sale_price < 400000 THEN '$200K-$400K'
                WHEN sale_price < 600000 THEN '$400K-$600K'
                WHEN sale_price < 800000 THEN '$600K-$800K'
                WHEN sale_price < 1000000 THEN '$800K-$1M'
                ELSE 'Over $1M'
            END as price_range,
            COUNT(*) as count
        FROM sales
        GROUP BY price_range
        ORDER BY MIN(sale_price)
    `)
	if err != nil {
		return nil, err
	}
	defer bucketRows.Close()

	for bucketRows.Next() {
		var bucket models.PriceBucket
		if err := bucketRows.Scan(&bucket.Range, &bucket.Count); err != nil {
			return nil, err
		}
		summary.PriceDistribution = append(summary.PriceDistribution, bucket)
	}
	if err := bucketRows.Err(); err != nil {
		return nil, err
	}

	monthRows, err := s.db.Query(`
        SELECT
            strftime('%Y-%m', sale_date) as month,
            COUNT(*) as count,
            COALESCE(SUM(sale_price), 0) as revenue
        FROM sales
        GROUP BY month
        ORDER BY month
    `)
	if err != nil {
		return nil, err
	}
	defer monthRows.Close()

	for monthRows.Next() {
		var entry models.MonthlySales
		if err := monthRows.Scan(&entry.Month, &entry.Count, &entry.Revenue); err != nil {
			return nil, err
		}
		summary.MonthlySales = append(summary.MonthlySales, entry)
	}
	if err := monthRows.Err(); err != nil {
		return nil, err
	}

	agentRows, err := s.db.Query(`
        SELECT
            agent_name,
            COUNT(*) as sales_count,
            COALESCE(SUM(sale_price), 0) as total_revenue
        FROM sales
        WHERE agent_name <> ''
        GROUP BY agent_name
        ORDER BY total_revenue DESC, agent_name
        LIMIT ?
    `, TopRankingSize)
	if err != nil {
		return nil, err
	}
	defer agentRows.Close()

	for agentRows.Next() {
		var agent models.AgentPerformance
		if err := agentRows.Scan(&agent.AgentName, &agent.SalesCount, &agent.TotalRevenue); err != nil {
			return nil, err
		}
		summary.TopAgents = append(summary.TopAgents, agent)
	}
	if err := agentRows.Err(); err != nil {
		return nil, err
	}

	typeRows, err := s.db.Query(`
        SELECT
            p.property_type,
            COALESCE(AVG(s.sale_price), 0) as avg_price,
            COUNT(*) as sales_count
        FROM sales s
        JOIN properties p ON p.id = s.property_id
        GROUP BY p.property_type
        ORDER BY p.property_type
    `)
	if err != nil {
		return nil, err
	}
	defer typeRows.Close()

	for typeRows.Next() {
		var perf models.PropertyTypePerformance
		if err := typeRows.Scan(&perf.PropertyType, &perf.AvgPrice, &perf.SalesCount); err != nil {
			return nil, err
		}
		summary.PropertyTypePerformance = append(summary.PropertyTypePerformance, perf)
	}
	if err := typeRows.Err(); err != nil {
		return nil, err
	}

	return summary, nil
}

func (s *Service) GetRenovationAnalytics() (*models.RenovationAnalytics, error) {
	summary, err := s.renovationAnalytics()
	if err != nil {
		return nil, &AggregationError{Resource: "renovation", Err: err}
	}
	return summary, nil
}

func (s *Service) renovationAnalytics() (*models.RenovationAnalytics, error) {
	summary := &models.RenovationAnalytics{
		RenovationsByType:  make([]models.RenovationTypeDistribution, 0),
		StatusDistribution: make([]models.StatusDistribution, 0),
		MonthlyRenovations: make([]models.MonthlyRenovations, 0),
		PropertyTypeImpact: make([]models.PropertyTypeImpact, 0),
		TopContractors:     make([]models.ContractorRanking, 0),
	}

	err := s.db.QueryRow(`
        SELECT
            COUNT(*),
            COALESCE(SUM(cost), 0),
            COALESCE(AVG(cost), 0)
        FROM renovations
    `).Scan(&summary.TotalRenovations, &summary.TotalCost, &summary.AvgCost)
	if err != nil {
		return nil, err
	}

	typeRows, err := s.db.Query(`
        SELECT
            renovation_type,
            COUNT(*) as count,
            COALESCE(AVG(cost), 0) as avg_cost
        FROM renovations
        GROUP BY renovation_type
        ORDER BY renovation_type
    `)
	if err != nil {
		return nil, err
	}
	defer typeRows.Close()

	for typeRows.Next() {
		var entry models.RenovationTypeDistribution
		if err := typeRows.Scan(&entry.RenovationType, &entry.Count, &entry.AvgCost); err != nil {
			return nil, err
		}
		summary.RenovationsByType = append(summary.RenovationsByType, entry)
	}
	if err := typeRows.Err(); err != nil {
		return nil, err
	}

	statusRows, err := s.db.Query(`
        SELECT status, COUNT(*) as count
        FROM renovations
        GROUP BY status
        ORDER BY status
    `)
	if err != nil {
		return nil, err
	}
	defer statusRows.Close()

	for statusRows.Next() {
		var entry models.StatusDistribution
		if err := statusRows.Scan(&entry.Status, &entry.Count); err != nil {
			return nil, err
		}
		summary.StatusDistribution = append(summary.StatusDistribution, entry)
	}
	if err := statusRows.Err(); err != nil {
		return nil, err
	}

	monthRows, err := s.db.Query(`
        SELECT
            strftime('%Y-%m', start_date) as month,
            COUNT(*) as count,
            COALESCE(SUM(cost), 0) as total_cost
        FROM renovations
        WHERE start_date IS NOT NULL
        GROUP BY month
        ORDER BY month
    `)
	if err != nil {
		return nil, err
	}
	defer monthRows.Close()

	for monthRows.Next() {
		var entry models.MonthlyRenovations
		if err := monthRows.Scan(&entry.Month, &entry.Count, &entry.TotalCost); err != nil {
			return nil, err
		}
		summary.MonthlyRenovations = append(summary.MonthlyRenovations, entry)
	}
	if err := monthRows.Err(); err != nil {
		return nil, err
	}

	impactRows, err := s.db.Query(`
        SELECT
            p.property_type,
            COUNT(*) as renovation_count,
            COALESCE(AVG(r.cost), 0) as avg_cost,
            COALESCE(AVG(r.estimated_value_increase), 0) as avg_value_increase
        FROM renovations r
        JOIN properties p ON p.id = r.property_id
        GROUP BY p.property_type
        ORDER BY p.property_type
    `)
	if err != nil {
		return nil, err
	}
	defer impactRows.Close()

	for impactRows.Next() {
		var entry models.PropertyTypeImpact
		if err := impactRows.Scan(&entry.PropertyType, &entry.RenovationCount, &entry.AvgCost, &entry.AvgValueIncrease); err != nil {
			return nil, err
		}
		summary.PropertyTypeImpact = append(summary.PropertyTypeImpact, entry)
	}
	if err := impactRows.Err(); err != nil {
		return nil, err
	}

	contractorRows, err := s.db.Query(`
        SELECT
            contractor_name,
            COUNT(*) as renovation_count,
            COALESCE(SUM(cost), 0) as total_cost
        FROM renovations
        WHERE contractor_name <> ''
        GROUP BY contractor_name
        ORDER BY total_cost DESC, contractor_name
        LIMIT ?
    `, TopRankingSize)
	if err != nil {
		return nil, err
	}
	defer contractorRows.Close()

	for contractorRows.Next() {
		var entry models.ContractorRanking
		if err := contractorRows.Scan(&entry.ContractorName, &entry.RenovationCount, &entry.TotalCost); err != nil {
			return nil, err
		}
		summary.TopContractors = append(summary.TopContractors, entry)
	}
	if err := contractorRows.Err(); err != nil {
		return nil, err
	}

	return summary, nil
}

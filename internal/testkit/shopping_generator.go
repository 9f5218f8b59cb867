package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ShoppingGeneratorConfig configures the synthetic orders table
type ShoppingGeneratorConfig struct {
	Rows          int       `json:"rows"`
	BatchSize     int       `json:"batch_size"`
	CustomerCount int       `json:"customer_count"`
	DiscountRate  float64   `json:"discount_rate"` // share of orders with a non-null discount
	ReturnRate    float64   `json:"return_rate"`
	StartDate     time.Time `json:"start_date"`
	Seed          int64     `json:"seed"`
}

// DefaultShoppingConfig returns sensible defaults for orders generation
func DefaultShoppingConfig() ShoppingGeneratorConfig {
	return ShoppingGeneratorConfig{
		Rows:          1000,
		BatchSize:     256,
		CustomerCount: 120,
		DiscountRate:  0.35,
		ReturnRate:    0.08,
		StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Seed:          42,
	}
}

// OrdersSchema mixes numeric, decimal, text, boolean and temporal columns
func OrdersSchema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "order_id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "customer", Type: arrow.BinaryTypes.String},
		{Name: "quantity", Type: arrow.PrimitiveTypes.Int32},
		{Name: "unit_price", Type: &arrow.Decimal128Type{Precision: 10, Scale: 2}},
		{Name: "discount", Type: arrow.PrimitiveTypes.Float32, Nullable: true},
		{Name: "total", Type: arrow.PrimitiveTypes.Float64},
		{Name: "returned", Type: arrow.FixedWidthTypes.Boolean},
		{Name: "placed_at", Type: arrow.FixedWidthTypes.Timestamp_s},
	}, nil)
}

// ShoppingDataGenerator generates a deterministic orders table
type ShoppingDataGenerator struct {
	config ShoppingGeneratorConfig
	rng    *rand.Rand
}

// NewShoppingDataGenerator creates a new orders generator
func NewShoppingDataGenerator(config ShoppingGeneratorConfig) *ShoppingDataGenerator {
	return &ShoppingDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GenerateTable builds the orders table in batches of BatchSize rows.
// The caller releases the table.
func (g *ShoppingDataGenerator) GenerateTable(mem memory.Allocator) (arrow.Table, error) {
	if g.config.Rows < 0 || g.config.BatchSize <= 0 || g.config.CustomerCount <= 0 {
		return nil, fmt.Errorf("invalid generator config: rows=%d batch=%d customers=%d",
			g.config.Rows, g.config.BatchSize, g.config.CustomerCount)
	}

	schema := OrdersSchema()
	var recs []arrow.Record
	defer func() {
		for _, rec := range recs {
			rec.Release()
		}
	}()

	if g.config.Rows == 0 {
		recs = append(recs, g.generateBatch(mem, schema, 0, 0))
	}
	for start := 0; start < g.config.Rows; start += g.config.BatchSize {
		n := min(g.config.BatchSize, g.config.Rows-start)
		recs = append(recs, g.generateBatch(mem, schema, start, n))
	}
	return array.NewTableFromRecords(schema, recs), nil
}

func (g *ShoppingDataGenerator) generateBatch(mem memory.Allocator, schema *arrow.Schema, offset, n int) arrow.Record {
	rb := array.NewRecordBuilder(mem, schema)
	defer rb.Release()

	orderIDs := rb.Field(0).(*array.Int64Builder)
	customers := rb.Field(1).(*array.StringBuilder)
	quantities := rb.Field(2).(*array.Int32Builder)
	prices := rb.Field(3).(*array.Decimal128Builder)
	discounts := rb.Field(4).(*array.Float32Builder)
	totals := rb.Field(5).(*array.Float64Builder)
	returned := rb.Field(6).(*array.BooleanBuilder)
	placedAt := rb.Field(7).(*array.TimestampBuilder)

	for i := 0; i < n; i++ {
		qty := int32(1 + g.rng.Intn(5))
		cents := int64(199 + g.rng.Intn(20000))
		subtotal := float64(qty) * float64(cents) / 100

		orderIDs.Append(int64(offset + i + 1))
		customers.Append(fmt.Sprintf("customer_%04d", 1+g.rng.Intn(g.config.CustomerCount)))
		quantities.Append(qty)
		prices.Append(decimal128.FromI64(cents))

		if g.rng.Float64() < g.config.DiscountRate {
			rate := float32(math.Round(g.rng.Float64()*30) / 100)
			discounts.Append(rate)
			subtotal *= 1 - float64(rate)
		} else {
			discounts.AppendNull()
		}
		totals.Append(math.Round(subtotal*100) / 100)
		returned.Append(g.rng.Float64() < g.config.ReturnRate)

		placed := g.config.StartDate.Add(time.Duration(g.rng.Intn(90*24*3600)) * time.Second)
		placedAt.Append(arrow.Timestamp(placed.Unix()))
	}
	return rb.NewRecord()
}

package m_product

import (
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/shopcat-service/internal/models/jsoncol"
)

// Model builds mutations for the products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut inserts a full product row. Timestamps use the commit time.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		data.ProductID,
		data.Title,
		data.Image,
		data.Images,
		&data.Price,
		data.Description,
		data.Brand,
		data.Model,
		data.Color,
		data.Category,
		data.Popular,
		&data.Discount,
		data.Stock,
		data.Sales,
		data.Status,
		data.Reviews,
		spanner.CommitTimestamp,
		spanner.CommitTimestamp,
	})
}

// UpdateMut writes the given columns of one product and bumps updated_at.
// It returns nil when there is nothing to write.
func (m *Model) UpdateMut(productID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	columns := make([]string, 0, len(updates)+2)
	values := make([]interface{}, 0, len(updates)+2)
	columns = append(columns, ProductID, UpdatedAt)
	values = append(values, productID, spanner.CommitTimestamp)

	for col, val := range updates {
		if col == ProductID || col == UpdatedAt {
			continue
		}
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}

// DeleteMut removes a product row.
func (m *Model) DeleteMut(productID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{productID})
}

// DecodeReviews reads the embedded review list of a row.
func DecodeReviews(data *Data) ([]ReviewDoc, error) {
	docs := []ReviewDoc{}
	if err := jsoncol.Decode(data.Reviews, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// EncodeReviews prepares a review list for the reviews column. A nil list is
// stored as an empty array.
func EncodeReviews(docs []ReviewDoc) spanner.NullJSON {
	if docs == nil {
		docs = []ReviewDoc{}
	}
	return jsoncol.Encode(docs)
}

package m_order

import (
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/shopcat-service/internal/models/jsoncol"
)

// Model builds mutations for the orders table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut inserts a full order row.
func (m *Model) InsertMut(data *Data, items []ItemDoc) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		data.OrderID,
		data.UserID,
		data.Username,
		data.Phone,
		data.Address,
		jsoncol.Encode(items),
		&data.TotalPrice,
		data.Status,
		spanner.CommitTimestamp,
		spanner.CommitTimestamp,
	})
}

// StatusMut changes the status of one order.
func (m *Model) StatusMut(orderID, status string) *spanner.Mutation {
	return spanner.Update(TableName,
		[]string{OrderID, Status, UpdatedAt},
		[]interface{}{orderID, status, spanner.CommitTimestamp},
	)
}

// DecodeItems reads the items of a row.
func DecodeItems(data *Data) ([]ItemDoc, error) {
	docs := []ItemDoc{}
	if err := jsoncol.Decode(data.Items, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

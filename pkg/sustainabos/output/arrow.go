package output

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/shopspring/decimal"

	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/models"
)

// TrackerSchema is the Arrow schema of an exported tracker. The owner
// column carries the resolved vessel of every row.
var TrackerSchema = arrow.NewSchema([]arrow.Field{
	{Name: "row", Type: arrow.PrimitiveTypes.Int64},
	{Name: "vessel", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "owner", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "spec", Type: arrow.BinaryTypes.String},
	{Name: "device", Type: arrow.BinaryTypes.String},
	{Name: "status", Type: arrow.BinaryTypes.String},
	{Name: "install_date", Type: arrow.FixedWidthTypes.Date32, Nullable: true},
	{Name: "fuel_savings", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	{Name: "maintenance_savings", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	{Name: "co2_savings", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
}, nil)

// WriteArrow writes the tracker rows to w as an Arrow IPC stream holding a
// single record batch.
func WriteArrow(w io.Writer, t *models.Table) error {
	pool := memory.NewGoAllocator()
	b := array.NewRecordBuilder(pool, TrackerSchema)
	defer b.Release()

	rowB := b.Field(0).(*array.Int64Builder)
	vesselB := b.Field(1).(*array.StringBuilder)
	ownerB := b.Field(2).(*array.StringBuilder)
	specB := b.Field(3).(*array.StringBuilder)
	deviceB := b.Field(4).(*array.StringBuilder)
	statusB := b.Field(5).(*array.StringBuilder)
	dateB := b.Field(6).(*array.Date32Builder)
	amountBs := []*array.Float64Builder{
		b.Field(7).(*array.Float64Builder),
		b.Field(8).(*array.Float64Builder),
		b.Field(9).(*array.Float64Builder),
	}

	for i := 0; i < t.Len(); i++ {
		rec := t.At(i)
		rowB.Append(int64(rec.Row))
		if rec.Vessel != nil {
			vesselB.Append(*rec.Vessel)
		} else {
			vesselB.AppendNull()
		}
		if owner, ok := t.Owner(i); ok {
			ownerB.Append(owner)
		} else {
			ownerB.AppendNull()
		}
		specB.Append(rec.Spec)
		deviceB.Append(rec.Device)
		statusB.Append(rec.Status)
		if rec.InstallDate != nil {
			dateB.Append(arrow.Date32FromTime(*rec.InstallDate))
		} else {
			dateB.AppendNull()
		}
		for j, amount := range []decimal.NullDecimal{rec.FuelSavings, rec.MaintenanceSavings, rec.CO2Savings} {
			if amount.Valid {
				amountBs[j].Append(amount.Decimal.InexactFloat64())
			} else {
				amountBs[j].AppendNull()
			}
		}
	}

	record := b.NewRecord()
	defer record.Release()

	writer := ipc.NewWriter(w, ipc.WithSchema(TrackerSchema), ipc.WithAllocator(pool))
	if err := writer.Write(record); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write arrow record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close arrow stream: %w", err)
	}
	return nil
}

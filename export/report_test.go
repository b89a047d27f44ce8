package export_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/shift-payroll/export"
	"github.com/warp/shift-payroll/rotation"
	"github.com/warp/shift-payroll/schedule"
)

func febConfig() schedule.Config {
	ref := schedule.MustDate("2024-01-31")
	return schedule.Config{
		Year:             2024,
		Month:            2,
		ReferenceOffDate: &ref,
		InitialShift:     schedule.ShiftMorning,
		HourlyRate:       decimal.NewFromInt(10),
		DiscountRate:     decimal.NewFromFloat(0.10),
	}
}

func TestWriteReport_ProducesPDF(t *testing.T) {
	cfg := febConfig()
	result := rotation.SixByTwo().Calculator().Calculate(cfg, nil, nil)
	require.NotEmpty(t, result.Days)

	var buf bytes.Buffer
	err := export.WriteReport(&buf, cfg, nil, result)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteReport_WithProfileAndEmptyResult(t *testing.T) {
	profile := &schedule.WorkerProfile{Category: "technician"}

	var buf bytes.Buffer
	err := export.WriteReport(&buf, febConfig(), profile, schedule.Result{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")),
		"a month with no computed days still renders the frame")
}

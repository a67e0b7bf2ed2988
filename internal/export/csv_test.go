package export

import (
	"bytes"
	"errors"
	"fmt"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
)

func TestWriteProducesHeaderAndRows(t *testing.T) {
	ds := &model.Dataset{
		Columns: []string{"id", "tracking_number", "amount", "total"},
		Rows: [][]string{
			{"1", "TRK-1", "10.00", "12.00"},
			{"2", "TRK, with comma", "5.00", "5.50"},
			{"3", "TRK-3", "1.00", "1.10"},
		},
	}

	var buf bytes.Buffer
	n, err := Write(&buf, ds)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, len(ds.Rows)+1)
	assert.Equal(t, "id,tracking_number,amount,total", lines[0])
	assert.Equal(t, `2,"TRK, with comma",5.00,5.50`, lines[2])
}

func TestWriteEmptyDatasetWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	n, err := Write(&buf, &model.Dataset{Columns: []string{"name", "price"}})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "name,price\n", buf.String())
}

func TestWriteRejectsMismatchedRow(t *testing.T) {
	ds := &model.Dataset{
		Columns: []string{"a", "b"},
		Rows:    [][]string{{"1", "2"}, {"only-one"}},
	}
	var buf bytes.Buffer
	n, err := Write(&buf, ds)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainErrors.ErrExportFailed))
	assert.Contains(t, err.Error(), "row 2")
	assert.Equal(t, 1, n)
}

func TestWriteNilDataset(t *testing.T) {
	_, err := Write(&bytes.Buffer{}, nil)
	assert.ErrorIs(t, err, domainErrors.ErrExportFailed)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, fmt.Errorf("broken pipe") }

func TestWriteReportsDestinationFailure(t *testing.T) {
	ds := &model.Dataset{Columns: []string{"a"}, Rows: [][]string{{"1"}}}
	_, err := Write(failingWriter{}, ds)
	assert.ErrorIs(t, err, domainErrors.ErrExportFailed)
}

func TestWriteFlushesLargeExports(t *testing.T) {
	rows := make([][]string, FlushEvery+5)
	for i := range rows {
		rows[i] = []string{strconv.Itoa(i)}
	}
	recorder := httptest.NewRecorder()

	n, err := Write(recorder, &model.Dataset{Columns: []string{"n"}, Rows: rows})
	require.NoError(t, err)
	assert.Equal(t, len(rows), n)
	assert.True(t, recorder.Flushed)

	lines := strings.Split(strings.TrimRight(recorder.Body.String(), "\n"), "\n")
	assert.Len(t, lines, len(rows)+1)
}

func TestSchemaHeaderDropsInternalColumns(t *testing.T) {
	columns := []string{"id", "name", "slug", "description", "price", "shipping_class_id", "created_at", "updated_at", "deleted_at", "sku"}
	assert.Equal(t, []string{"name", "description", "price", "sku"}, SchemaHeader(columns))
	assert.Empty(t, SchemaHeader(nil))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "orders.csv", Filename("orders"))

	random := Filename("")
	assert.True(t, strings.HasSuffix(random, ".csv"))
	assert.Len(t, random, 36+len(".csv"))
	assert.NotEqual(t, random, Filename(""))
}

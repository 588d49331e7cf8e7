package output

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chrisdamba/foodinsights/internal/cloudwriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
)

func readRevenueRows(t *testing.T, path string) []RevenueRow {
	t.Helper()
	fr, err := local.NewLocalFileReader(path)
	require.NoError(t, err)
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(RevenueRow), 4)
	require.NoError(t, err)
	defer pr.ReadStop()

	rows := make([]RevenueRow, int(pr.GetNumRows()))
	require.NoError(t, pr.Read(&rows))
	return rows
}

func TestParquetOutput_Local(t *testing.T) {
	dir := t.TempDir()
	exportTo(t, newParquetOutput(dir, "reports"))

	files, err := filepath.Glob(filepath.Join(dir, "reports", TopicRevenueSeries, hourPartition, "part-*.parquet"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	rows := readRevenueRows(t, files[0])
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-10-15", rows[0].Date)
	assert.Equal(t, 420.0, rows[0].Revenue)
	assert.Equal(t, int64(2), rows[1].Orders)

	for _, topic := range []string{TopicReports, TopicMenuItems} {
		files, err := filepath.Glob(filepath.Join(dir, "reports", topic, hourPartition, "part-*.parquet"))
		require.NoError(t, err)
		assert.Len(t, files, 1, topic)
	}
}

func TestParquetOutput_RejectsUnknownTopic(t *testing.T) {
	out := newParquetOutput(t.TempDir(), "reports")
	assert.Error(t, out.WriteMessage("orders", []byte(`{"timestamp":1}`)))
	assert.Error(t, out.WriteMessage(TopicReports, []byte(`{"role":"Admin"}`)))
	assert.NoError(t, out.Close())
}

type memoryObject struct {
	bytes.Buffer
	closed bool
}

func (m *memoryObject) Close() error {
	m.closed = true
	return nil
}

type memoryFactory struct {
	objects map[string]*memoryObject
}

func (f *memoryFactory) NewWriter(bucket, objectPath string) (cloudwriter.CloudWriter, error) {
	obj := &memoryObject{}
	f.objects[bucket+"/"+objectPath] = obj
	return obj, nil
}

func TestParquetOutput_Cloud(t *testing.T) {
	factory := &memoryFactory{objects: map[string]*memoryObject{}}
	exportTo(t, NewCloudParquetOutput("reports", "analytics-bucket", factory))

	require.Len(t, factory.objects, 3)
	for key, obj := range factory.objects {
		assert.True(t, strings.HasPrefix(key, "analytics-bucket/reports/"), key)
		assert.Contains(t, key, "/"+hourPartition+"/part-")
		assert.True(t, obj.closed)
		assert.True(t, bytes.HasPrefix(obj.Bytes(), []byte("PAR1")), "parquet magic")
	}
}

func TestCloudParquetFile_Seek(t *testing.T) {
	f := NewCloudParquetFile(&memoryObject{})

	n, err := f.Write([]byte("PAR1"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	pos, err := f.Seek(0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), pos)

	_, err = f.Seek(0, 2)
	assert.Error(t, err)
	_, err = f.Read(make([]byte, 1))
	assert.Error(t, err)
}

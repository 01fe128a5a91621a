package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonimelisma/dropbox-uploader/internal/upload"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"bytes", 11, "11 B"},
		{"kilobytes", 1536, "1.5 KB"},
		{"megabytes", 5242880, "5.0 MB"},
		{"gigabytes", 1610612736, "1.5 GB"},
		{"terabytes", 1099511627776, "1.0 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatSize(tt.bytes))
		})
	}
}

func TestPrintResult_Text(t *testing.T) {
	oldJSON := flagJSON

	t.Cleanup(func() { flagJSON = oldJSON })

	flagJSON = false

	var buf bytes.Buffer

	require.NoError(t, printResult(&buf, &upload.Result{ID: "id:1", Size: 11, Path: "/reports/report.txt"}))
	assert.Equal(t, "/reports/report.txt\t11 B\tid:1\n", buf.String())
}

func TestPrintResult_JSON(t *testing.T) {
	oldJSON := flagJSON

	t.Cleanup(func() { flagJSON = oldJSON })

	flagJSON = true

	var buf bytes.Buffer

	require.NoError(t, printResult(&buf, &upload.Result{ID: "id:1", Size: 11, Path: "/reports/report.txt", Rev: "01"}))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "id:1", got["id"])
	assert.Equal(t, float64(11), got["size"])
	assert.Equal(t, "/reports/report.txt", got["path"])
	assert.Equal(t, "01", got["rev"])
	assert.NotContains(t, got, "content_hash")
}

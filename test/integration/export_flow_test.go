//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportFlow(t *testing.T) {
	resetTables(t)

	resp, err := http.Post(testServerURL+"/api/weather/history", "application/json",
		bytes.NewBufferString(`{"location":"Kyiv, UA","temperature":21.5,"condition":"clouds"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	t.Run("json", func(t *testing.T) {
		resp, err := http.Get(testServerURL + "/api/export/json")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "attachment; filename=weather-data.json",
			resp.Header.Get("Content-Disposition"))

		var doc struct {
			TotalRecords int              `json:"totalRecords"`
			Data         []map[string]any `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
		assert.Equal(t, 1, doc.TotalRecords)
		require.Len(t, doc.Data, 1)
		assert.Equal(t, "Kyiv, UA", doc.Data[0]["location"])
	})

	t.Run("csv", func(t *testing.T) {
		resp, err := http.Get(testServerURL + "/api/export/csv")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		lines := strings.Split(string(raw), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t,
			"ID,Location,Date Searched,Temperature,Condition,Humidity,Wind Speed,Visibility,UV Index",
			lines[0])
		assert.Contains(t, lines[1], `"Kyiv, UA"`)
	})

	t.Run("xml", func(t *testing.T) {
		resp, err := http.Get(testServerURL + "/api/export/xml")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		body := string(raw)
		assert.Contains(t, body, `totalRecords="1"`)
		assert.Contains(t, body, "<![CDATA[Kyiv, UA]]>")
	})

	t.Run("unsupported format", func(t *testing.T) {
		resp, err := http.Get(testServerURL + "/api/export/pdf")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestExportFlow_NoData(t *testing.T) {
	resetTables(t)

	resp, err := http.Get(testServerURL + "/api/export/json")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "No data available for export", body["error"])
}

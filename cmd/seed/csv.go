package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var (
	jobColumns  = []string{"agent", "timestamp", "profit", "status", "lead"}
	roleColumns = []string{"agent", "team"}
)

var seedTimeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// newCSVReader decodifica ISO-8859-1 si se pide; el resto se asume UTF-8.
func newCSVReader(r io.Reader, latin1 bool) *csv.Reader {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	return cr
}

// readTable lee la cabecera y devuelve las filas como mapa columna → valor.
// Las columnas requeridas deben estar en la cabecera; el orden es libre.
func readTable(cr *csv.Reader, required []string) ([]map[string]string, error) {
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var rows []map[string]string
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row := make(map[string]string, len(required))
		for _, col := range required {
			if i := index[col]; i < len(rec) {
				row[col] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// jobDocuments convierte filas de jobs a documentos BSON. profit no numérico → error;
// timestamp no interpretable se guarda como string.
func jobDocuments(r io.Reader, latin1 bool) ([]interface{}, error) {
	rows, err := readTable(newCSVReader(r, latin1), jobColumns)
	if err != nil {
		return nil, err
	}
	docs := make([]interface{}, 0, len(rows))
	for i, row := range rows {
		profit := 0.0
		if raw := row["profit"]; raw != "" {
			profit, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid profit %q", i+2, raw)
			}
		}
		docs = append(docs, bson.D{
			{Key: "agent", Value: row["agent"]},
			{Key: "timestamp", Value: seedTimestamp(row["timestamp"])},
			{Key: "profit", Value: profit},
			{Key: "status", Value: strings.ToLower(row["status"])},
			{Key: "lead", Value: row["lead"]},
		})
	}
	return docs, nil
}

func roleDocuments(r io.Reader, latin1 bool) ([]interface{}, error) {
	rows, err := readTable(newCSVReader(r, latin1), roleColumns)
	if err != nil {
		return nil, err
	}
	docs := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, bson.D{
			{Key: "agent", Value: row["agent"]},
			{Key: "team", Value: row["team"]},
		})
	}
	return docs, nil
}

func seedTimestamp(raw string) interface{} {
	for _, layout := range seedTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	if raw == "" {
		return nil
	}
	return raw
}

package table

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/exports"
	"github.com/rocketlaunchr/dataframe-go/imports"
)

var ErrUnknownTimeFormat = errors.New("unknown time format")

// TimeLayouts are tried in order when parsing the ds column of a csv file.
var TimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime parses a timestamp with the first matching layout in TimeLayouts. Timestamps without a
// zone are read as UTC.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range TimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q, %w", s, ErrUnknownTimeFormat)
}

// LoadCSV reads a table with a header row. The ds column is parsed into timestamps and every other
// column is read as float64 where empty cells are null.
func LoadCSV(ctx context.Context, r io.ReadSeeker) (*dataframe.DataFrame, error) {
	headers, err := csv.NewReader(r).Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read csv header, %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	dictate := make(map[string]interface{}, len(headers))
	for _, h := range headers {
		if h == ColumnTime {
			dictate[h] = ""
			continue
		}
		dictate[h] = float64(0)
	}

	nilValue := ""
	df, err := imports.LoadFromCSV(ctx, r, imports.CSVLoadOptions{
		DictateDataType: dictate,
		NilValue:        &nilValue,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to load csv, %w", err)
	}

	idx, err := df.NameToColumn(ColumnTime)
	if err != nil {
		return nil, fmt.Errorf("%s, %w", ColumnTime, ErrColumnNotFound)
	}
	raw, ok := df.Series[idx].(*dataframe.SeriesString)
	if !ok {
		return nil, fmt.Errorf("%s has type %s, %w", ColumnTime, df.Series[idx].Type(), ErrNotTimeColumn)
	}
	ts := dataframe.NewSeriesTime(ColumnTime, &dataframe.SeriesInit{Capacity: raw.NRows()})
	for i := 0; i < raw.NRows(); i++ {
		v := raw.Value(i)
		if v == nil {
			ts.Values = append(ts.Values, nil)
			continue
		}
		t, err := ParseTime(v.(string))
		if err != nil {
			return nil, fmt.Errorf("row %d, %w", i, err)
		}
		ts.Values = append(ts.Values, &t)
	}
	df.Series[idx] = ts
	return df, nil
}

// WriteCSV writes the table with a header row. Timestamps are RFC3339 formatted and nulls are
// written as empty cells so the output can be read back with LoadCSV.
func WriteCSV(ctx context.Context, w io.Writer, df *dataframe.DataFrame) error {
	if df == nil {
		return ErrNilTable
	}
	series := make([]dataframe.Series, 0, len(df.Series))
	for _, s := range df.Series {
		ts, ok := s.(*dataframe.SeriesTime)
		if !ok {
			series = append(series, s)
			continue
		}
		ss := dataframe.NewSeriesString(ts.Name(), &dataframe.SeriesInit{Capacity: len(ts.Values)})
		for _, v := range ts.Values {
			if v == nil {
				ss.Append(nil)
				continue
			}
			ss.Append(v.Format(time.RFC3339Nano))
		}
		series = append(series, ss)
	}

	nullString := ""
	return exports.ExportToCSV(ctx, w, dataframe.NewDataFrame(series...), exports.CSVExportOptions{
		NullString: &nullString,
		Separator:  ',',
	})
}

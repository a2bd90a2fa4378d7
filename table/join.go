package table

import (
	"fmt"
	"time"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// JoinType selects which side of a join drives the output rows.
type JoinType int

const (
	// JoinLeft keeps every row of the left table in order.
	JoinLeft JoinType = iota
	// JoinRight keeps every row of the right table in order.
	JoinRight
)

func (j JoinType) String() string {
	switch j {
	case JoinLeft:
		return "left"
	case JoinRight:
		return "right"
	}
	return fmt.Sprintf("JoinType(%d)", int(j))
}

// Join merges two tables on the key column. The output has one row per row of the driving side
// and the key values are taken from that side. Columns are ordered key, left columns, right
// columns. A right column whose name already exists on the left is discarded so the left table
// always wins a name collision. Rows on the lookup side are matched on the first occurrence of
// their key and unmatched cells are null.
func Join(left, right *dataframe.DataFrame, key string, how JoinType) (*dataframe.DataFrame, error) {
	if left == nil || right == nil {
		return nil, ErrNilTable
	}
	leftKey, err := Column(left, key)
	if err != nil {
		return nil, fmt.Errorf("unable to find left join key, %w", err)
	}
	rightKey, err := Column(right, key)
	if err != nil {
		return nil, fmt.Errorf("unable to find right join key, %w", err)
	}

	var leftRows, rightRows []int
	switch how {
	case JoinLeft:
		leftRows = identityRows(left.NRows())
		rightRows = matchRows(leftKey, rightKey)
	case JoinRight:
		leftRows = matchRows(rightKey, leftKey)
		rightRows = identityRows(right.NRows())
	default:
		return nil, fmt.Errorf("unknown join type %s", how)
	}

	driveKey := leftKey
	if how == JoinRight {
		driveKey = rightKey
	}

	series := make([]dataframe.Series, 0, len(left.Series)+len(right.Series))
	series = append(series, driveKey.Copy())

	seen := map[string]struct{}{key: {}}
	for _, s := range left.Series {
		name := s.Name()
		if _, exists := seen[name]; exists {
			continue
		}
		seen[name] = struct{}{}
		series = append(series, take(s, leftRows))
	}
	for _, s := range right.Series {
		name := s.Name()
		if _, exists := seen[name]; exists {
			continue
		}
		seen[name] = struct{}{}
		series = append(series, take(s, rightRows))
	}
	return dataframe.NewDataFrame(series...), nil
}

func identityRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

// matchRows returns, for every row of drive, the first row of lookup sharing its key or -1.
func matchRows(drive, lookup dataframe.Series) []int {
	index := make(map[string]int, lookup.NRows())
	for i := 0; i < lookup.NRows(); i++ {
		k, ok := keyOf(lookup, i)
		if !ok {
			continue
		}
		if _, exists := index[k]; !exists {
			index[k] = i
		}
	}

	rows := make([]int, drive.NRows())
	for i := range rows {
		rows[i] = -1
		k, ok := keyOf(drive, i)
		if !ok {
			continue
		}
		if j, exists := index[k]; exists {
			rows[i] = j
		}
	}
	return rows
}

// keyOf renders a join key. Timestamps compare by instant regardless of location and null keys
// never match.
func keyOf(s dataframe.Series, row int) (string, bool) {
	if ts, ok := s.(*dataframe.SeriesTime); ok {
		v := ts.Values[row]
		if v == nil {
			return "", false
		}
		return v.UTC().Format(time.RFC3339Nano), true
	}
	v := s.Value(row)
	if v == nil {
		return "", false
	}
	return fmt.Sprintf("%v", v), true
}

func take(s dataframe.Series, rows []int) dataframe.Series {
	out := s.(dataframe.NewSerieser).NewSeries(s.Name(), &dataframe.SeriesInit{Capacity: len(rows)})
	for _, r := range rows {
		if r < 0 {
			out.Append(nil)
			continue
		}
		out.Append(s.Value(r))
	}
	return out
}

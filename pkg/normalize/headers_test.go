package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhaowt/limitup-export/pkg/model"
)

func TestStripDateSuffix(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"trailing dotted date", "涨停原因2024.03.15", "涨停原因"},
		{"no date", "涨停原因", "涨停原因"},
		{"date not at end", "2024.03.15涨停原因", "2024.03.15涨停原因"},
		{"dashed date left alone", "涨停原因2024-03-15", "涨停原因2024-03-15"},
		{"bare date header becomes empty", "2024.03.15", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripDateSuffix(tt.header))
		})
	}
}

func TestNormalizeHeaders(t *testing.T) {
	t.Run("renames all rows uniformly", func(t *testing.T) {
		rows := []model.Row{
			{"涨停原因2024.03.15": "A", "代码": "600000"},
			{"涨停原因2024.03.15": "B", "代码": "600001"},
		}
		columns := []string{"代码", "涨停原因2024.03.15"}

		newRows, newColumns := NormalizeHeaders(rows, columns)

		require.Len(t, newRows, 2)
		assert.Equal(t, []string{"代码", "涨停原因"}, newColumns)
		assert.Equal(t, "A", newRows[0].String("涨停原因"))
		assert.Equal(t, "B", newRows[1].String("涨停原因"))
		assert.NotContains(t, newRows[0], "涨停原因2024.03.15")
	})

	t.Run("distinct headers do not collide without date suffixes", func(t *testing.T) {
		rows := []model.Row{{"涨停原因": "A", "涨停原因类别": "B"}}
		columns := []string{"涨停原因", "涨停原因类别"}

		newRows, newColumns := NormalizeHeaders(rows, columns)

		assert.Equal(t, columns, newColumns)
		assert.Equal(t, "A", newRows[0].String("涨停原因"))
		assert.Equal(t, "B", newRows[0].String("涨停原因类别"))
	})

	t.Run("collision keeps later column value", func(t *testing.T) {
		// Two headers that normalize to the same name: the later column in
		// header order wins, matching mapping-assignment semantics.
		rows := []model.Row{{"涨停原因2024.03.14": "old", "涨停原因2024.03.15": "new"}}
		columns := []string{"涨停原因2024.03.14", "涨停原因2024.03.15"}

		newRows, newColumns := NormalizeHeaders(rows, columns)

		assert.Equal(t, []string{"涨停原因"}, newColumns)
		assert.Equal(t, "new", newRows[0].String("涨停原因"))
	})

	t.Run("empty dataset unchanged", func(t *testing.T) {
		newRows, newColumns := NormalizeHeaders(nil, []string{"a"})
		assert.Nil(t, newRows)
		assert.Equal(t, []string{"a"}, newColumns)
	})
}

package main

import (
	"fmt"
	"sort"
	"strings"
)

// buildPartialUpdate turns a column→value map into a parameterized UPDATE:
//
//	UPDATE users SET email=$1, username=$2 WHERE id=$3 RETURNING *
//
// Values come back in placeholder order, field values first and the key
// value last. Columns are emitted in sorted name order so the statement is
// deterministic. Table, column, and key names must be trusted identifiers;
// only values are parameterized.
//
// Precondition: fields must be non-empty. An empty map yields a malformed
// statement ("SET  WHERE"); callers validate bodies before reaching here.
func buildPartialUpdate(table string, fields map[string]any, key string, keyVal any) (string, []any) {
	cols := make([]string, 0, len(fields))
	for col := range fields {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	sets := make([]string, len(cols))
	values := make([]any, 0, len(cols)+1)
	for i, col := range cols {
		sets[i] = fmt.Sprintf("%s=$%d", col, i+1)
		values = append(values, fields[col])
	}
	values = append(values, keyVal)

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s=$%d RETURNING *",
		table, strings.Join(sets, ", "), key, len(cols)+1,
	)
	return query, values
}

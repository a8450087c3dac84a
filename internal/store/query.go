package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

const baseSubmissionsSelect = `SELECT id, first_name, last_name, email, asset_name,
	phone_number, imei, vin, unit_id, status, error_fields, created_at
FROM submissions`

const countSubmissionsSelect = "SELECT COUNT(*) FROM submissions"

// Page returns the effective limit and offset, clamped into their allowed
// range.
func (q *SubmissionQuery) Page() (limit, offset int) {
	limit = q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit, max(q.Offset, 0)
}

// ToSQL builds the data and count queries for q along with their
// positional parameters. Results are newest first.
func (q *SubmissionQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", paramIdx))
		args = append(args, string(*q.Status))
		paramIdx++
	}

	if q.IMEI != nil {
		conditions = append(conditions, fmt.Sprintf("imei = $%d", paramIdx))
		args = append(args, *q.IMEI)
		paramIdx++
	}

	if q.Email != nil {
		conditions = append(conditions, fmt.Sprintf("lower(email) = lower($%d)", paramIdx))
		args = append(args, *q.Email)
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	limit, offset := q.Page()

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY created_at DESC, id LIMIT %d OFFSET %d",
		baseSubmissionsSelect, whereClause, limit, offset,
	)
	countSQL = countSubmissionsSelect + whereClause

	return dataSQL, countSQL, args
}

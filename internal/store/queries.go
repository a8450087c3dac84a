package store

// SQL used by PostgresStore. Filtered listing queries are built by
// SubmissionQuery.ToSQL.

const (
	queryCreateSubmission = `
		INSERT INTO submissions (
			id, first_name, last_name, email, asset_name,
			phone_number, imei, vin, unit_id, status, error_fields
		) VALUES (
			@id, @first_name, @last_name, @email, @asset_name,
			@phone_number, @imei, @vin, @unit_id, @status, @error_fields
		)
		RETURNING created_at`

	queryGetSubmission = baseSubmissionsSelect + ` WHERE id = $1`

	queryCountSubmissionsByStatus = `
		SELECT status, COUNT(*) FROM submissions GROUP BY status`
)

package user

const (
	SelectUsers = `
		SELECT id, external_id, email, role, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
		LIMIT 50 OFFSET ( ($1 - 1) * 50 )
	`
	SelectUserByExternalID = `
		SELECT id, external_id, email, role, created_at, updated_at
		FROM users
		WHERE external_id = $1
	`
	CountUsers = `SELECT count(*) FROM users`
	// LinkIdentityByID mirrors the hosted session onto the local record.
	LinkIdentityByID = `
		UPDATE users
		SET external_id = $1,
		    email = $2,
		    updated_at = now()
		WHERE id = $3
		RETURNING
		  id, external_id, email, role, created_at, updated_at
	`
)
